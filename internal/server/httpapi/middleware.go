package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/akorchagin/authgate/internal/common"
	"github.com/akorchagin/authgate/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// bearerSecret extracts the raw secret from the Authorization header.
// A missing header or a non-Bearer scheme returns false; no store access has
// happened yet at that point.
func bearerSecret(r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		return "", false
	}
	secret, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || secret == "" {
		return "", false
	}
	return secret, true
}

// authenticate gates a route subtree on a valid bearer credential. On
// success the resolved user is attached to the request context; every
// failure mode produces the same 401.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret, ok := bearerSecret(r)
		if !ok {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		user, err := s.tokens.Resolve(r.Context(), secret)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the user attached by authenticate.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
