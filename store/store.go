package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/banditry/mask"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no record exists. It is joined with redis.Nil.
	ErrNotFound = errors.New("mask record not found")
	// ErrCorrupt is returned when a record is not a valid mask encoding.
	ErrCorrupt = errors.New("mask record corrupt")
	// ErrConflict is returned when Enable keeps losing optimistic transactions.
	ErrConflict = errors.New("mask record update conflict")
	// ErrRedisUnavailable wraps transport and server errors.
	ErrRedisUnavailable = errors.New("redis unavailable")
	// ErrNilKind is returned when an operation is given a nil kind or a zero mask.
	ErrNilKind = errors.New("nil kind")
	// ErrKindName is returned for kinds whose name contains ':'.
	ErrKindName = errors.New("kind name not storable")
)

// Store reads and writes mask integers in Redis.
//
// Store is safe for concurrent use.
type Store struct {
	redis   redis.UniversalClient
	cfg     Config
	log     *zap.Logger
	metrics *Metrics
}

// NewStore creates a Store over rdb.
func NewStore(rdb redis.UniversalClient, cfg Config) (*Store, error) {
	if rdb == nil {
		return nil, errors.New("nil redis client")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	return &Store{
		redis:   rdb,
		cfg:     cfg,
		log:     cfg.Logger.With(zap.String("prefix", cfg.Prefix)),
		metrics: NewMetrics(cfg.Metrics),
	}, nil
}

// MetricsSnapshot returns the store counters. It is empty unless
// Config.Metrics.Enabled is set.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

func (s *Store) unavailable(err error) error {
	s.metrics.Inc(MetricRedisError)
	return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
}

// key builds "prefix:kind:id". Prefix and kind are colon-free, so the first
// two colons split a key unambiguously whatever id holds.
func (s *Store) key(k *mask.Kind, id string) (string, error) {
	if k == nil {
		return "", ErrNilKind
	}
	if strings.Contains(k.Name(), ":") {
		return "", fmt.Errorf("%w: %q contains ':'", ErrKindName, k.Name())
	}
	return s.cfg.Prefix + ":" + k.Name() + ":" + id, nil
}

// Save writes m under its kind and id, replacing any existing record.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, id string, m mask.Mask) error {
	key, err := s.key(m.Kind(), id)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, key, mask.Encode(m), s.cfg.TTL).Err(); err != nil {
		return s.unavailable(err)
	}

	s.metrics.Inc(MetricSave)
	s.log.Debug("mask saved", zap.String("key", key), zap.Uint64("bits", m.Uint64()))
	return nil
}

// Load reads the record of kind k and id.
//
//	Performance: 1 Redis GET.
func (s *Store) Load(ctx context.Context, k *mask.Kind, id string) (mask.Mask, error) {
	key, err := s.key(k, id)
	if err != nil {
		return mask.Mask{}, err
	}

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.metrics.Inc(MetricLoadMiss)
			return mask.Mask{}, errors.Join(redis.Nil, ErrNotFound)
		}
		return mask.Mask{}, s.unavailable(err)
	}

	m, err := s.decode(k, key, data)
	if err != nil {
		return mask.Mask{}, err
	}

	s.metrics.Inc(MetricLoad)
	return m, nil
}

// Enable adds names to the record of kind k and id, creating it when absent,
// and returns the stored mask. The update is an optimistic WATCH/MULTI
// transaction retried up to Config.MaxRetries times before ErrConflict.
//
//	Performance: 1 GET + 1 SET per attempt.
func (s *Store) Enable(ctx context.Context, k *mask.Kind, id string, names ...string) (mask.Mask, error) {
	key, err := s.key(k, id)
	if err != nil {
		return mask.Mask{}, err
	}
	if _, err := k.FromNames(names...); err != nil {
		return mask.Mask{}, err
	}

	var out mask.Mask
	start := time.Now()

	update := func(tx *redis.Tx) error {
		m := k.New(0)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if m, err = s.decode(k, key, data); err != nil {
				return err
			}
		case !errors.Is(err, redis.Nil):
			return s.unavailable(err)
		}

		if err := m.Push(names...); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, mask.Encode(m), s.cfg.TTL)
			return nil
		})
		if err != nil {
			return err
		}

		out = m
		return nil
	}

	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		err := s.redis.Watch(ctx, update, key)
		if err == nil {
			s.metrics.Inc(MetricEnable)
			s.metrics.Observe(MetricEnableLatency, time.Since(start))
			s.log.Debug("mask bits enabled",
				zap.String("key", key),
				zap.Strings("names", names),
				zap.Uint64("bits", out.Uint64()),
			)
			return out, nil
		}
		switch {
		case errors.Is(err, redis.TxFailedErr):
		case errors.Is(err, ErrCorrupt), errors.Is(err, ErrRedisUnavailable), errors.Is(err, mask.ErrUndefinedBit):
			return mask.Mask{}, err
		default:
			return mask.Mask{}, s.unavailable(err)
		}
		s.metrics.Inc(MetricEnableRetry)
		s.log.Debug("mask update conflict, retrying", zap.String("key", key), zap.Int("attempt", attempt+1))
	}

	s.metrics.Inc(MetricEnableConflict)
	s.log.Warn("mask update gave up", zap.String("key", key), zap.Int("retries", s.cfg.MaxRetries))
	return mask.Mask{}, ErrConflict
}

// Delete removes the record of kind k and id. Deleting a missing record is
// not an error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, k *mask.Kind, id string) error {
	key, err := s.key(k, id)
	if err != nil {
		return err
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return s.unavailable(err)
	}

	s.metrics.Inc(MetricDelete)
	return nil
}

func (s *Store) decode(k *mask.Kind, key string, data []byte) (mask.Mask, error) {
	m, err := mask.Decode(k, data)
	if err != nil {
		s.metrics.Inc(MetricCorrupt)
		s.log.Warn("corrupt mask record", zap.String("key", key), zap.Int("size", len(data)), zap.Error(err))
		return mask.Mask{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return m, nil
}
