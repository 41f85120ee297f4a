package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"bookmap/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Authz gates every non-public route behind a valid HS256 JWT, for all
// methods alike. The validated subject is placed in the request context.
//
// Authz only establishes identity. Ownership of the touched bookstore
// entries is enforced in the handlers and use cases, not here.
func Authz(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		user, err := validateJWT(r.Header.Get("Authorization"), secret)
		if err != nil {
			RecordUnauthorizedAttempt(r.Method)
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser stores a user identity the way Authz does after validating a
// token. Exposed for handler tests.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the authenticated user (the token subject), or
// "" when the request was not authenticated.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(ctxUser).(string)
	return user
}

// validateJWT checks the Authorization header and returns the subject.
func validateJWT(authz string, secret []byte) (string, error) {
	tokenString, ok := strings.CutPrefix(authz, "Bearer ")
	if !ok {
		return "", errors.New("missing bearer token")
	}

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return "", errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid sub claim")
	}
	return sub, nil
}
