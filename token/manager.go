package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/banditry/mask"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretSize = 32

var (
	// ErrUnknownKind is returned when a token names a kind that is not registered.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrNilKind is returned when issuing a zero mask or parsing against a nil kind.
	ErrNilKind = errors.New("nil kind")
)

// Config controls signing and verification of mask tokens.
type Config struct {
	// Secret is the HS256 key. At least 32 bytes.
	Secret []byte
	// Issuer is written on issue and required on parse when set.
	Issuer string
	// Audience is written on issue and required on parse when set.
	Audience string
	// TTL is the token lifetime. Must be positive.
	TTL time.Duration
	// Leeway tolerates clock skew on parse. At most two minutes.
	Leeway time.Duration
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	if len(c.Secret) < minSecretSize {
		return fmt.Errorf("token secret must be at least %d bytes", minSecretSize)
	}
	if c.TTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if c.Leeway < 0 || c.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	return nil
}

// Claims is the JWT payload of a mask token.
type Claims struct {
	Kind  string   `json:"knd"`
	Bits  uint64   `json:"msk"`
	Names []string `json:"bits,omitempty"`
	jwt.RegisteredClaims
}

// Mask resolves the claimed kind through the directory.
func (c *Claims) Mask() (mask.Mask, error) {
	k, ok := mask.Lookup(c.Kind)
	if !ok {
		return mask.Mask{}, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	return k.New(c.Bits), nil
}

// Manager issues and verifies mask tokens.
//
// Manager is safe for concurrent use.
type Manager struct {
	config Config
	now    func() time.Time
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Secret = append([]byte(nil), cfg.Secret...)

	return &Manager{config: cfg, now: time.Now}, nil
}

// Issue signs a token for subject carrying m.
func (j *Manager) Issue(subject string, m mask.Mask) (string, error) {
	if m.Kind() == nil {
		return "", ErrNilKind
	}

	now := j.now()
	claims := Claims{
		Kind:  m.Kind().Name(),
		Bits:  m.Uint64(),
		Names: m.Names(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    j.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.TTL)),
		},
	}
	if j.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{j.config.Audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.config.Secret)
}

// Parse verifies tokenStr and returns its claims.
func (j *Manager) Parse(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	}
	if j.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(j.config.Leeway))
	}
	if j.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(j.config.Issuer))
	}
	if j.config.Audience != "" {
		options = append(options, jwt.WithAudience(j.config.Audience))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return j.config.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// ParseMask verifies tokenStr and returns its mask as kind k. A token issued
// for another kind fails with mask.ErrKindMismatch.
func (j *Manager) ParseMask(tokenStr string, k *mask.Kind) (mask.Mask, error) {
	if k == nil {
		return mask.Mask{}, ErrNilKind
	}

	claims, err := j.Parse(tokenStr)
	if err != nil {
		return mask.Mask{}, err
	}
	if claims.Kind != k.Name() {
		return mask.Mask{}, fmt.Errorf("%w: token for %q, want %q", mask.ErrKindMismatch, claims.Kind, k.Name())
	}

	return k.New(claims.Bits), nil
}
