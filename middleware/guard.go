package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrEthical07/banditry/mask"
	"github.com/MrEthical07/banditry/token"
)

type maskContextKey struct{}

// MaskFromContext returns the mask injected by [Guard] or [Require].
func MaskFromContext(ctx context.Context) (mask.Mask, bool) {
	m, ok := ctx.Value(maskContextKey{}).(mask.Mask)
	return m, ok
}

// Guard rejects requests without a valid bearer token issued for kind k
// (401) and passes the token's mask to next through the request context.
func Guard(mgr *token.Manager, k *mask.Kind) func(http.Handler) http.Handler {
	return Require(mgr, k)
}

// Require behaves like [Guard] and additionally answers 403 unless every one
// of names is enabled in the token's mask. Names undefined on k also answer
// 403.
func Require(mgr *token.Manager, k *mask.Kind, names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if mgr == nil || k == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tok, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			m, err := mgr.ParseMask(tok, k)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if len(names) > 0 {
				allowed, err := m.Has(names...)
				if err != nil || !allowed {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
			}

			ctx := context.WithValue(r.Context(), maskContextKey{}, m)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	tok := value[len(bearer):]
	if tok == "" {
		return "", false
	}

	return tok, true
}
