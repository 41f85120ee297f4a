package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-for-middleware"

func signedToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func protectedHandler(t *testing.T, gotUser *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthz_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUser string
	handler := Authz(protectedHandler(t, &gotUser))

	token := signedToken(t, jwt.MapClaims{
		"sub": "reader@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/bookstores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if gotUser != "reader@example.com" {
		t.Fatalf("user not propagated, got %q", gotUser)
	}
}

func TestAuthz_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUser string
	handler := Authz(protectedHandler(t, &gotUser))

	req := httptest.NewRequest(http.MethodPost, "/bookstores", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestAuthz_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUser string
	handler := Authz(protectedHandler(t, &gotUser))

	token := signedToken(t, jwt.MapClaims{
		"sub": "reader@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, jwt.SigningMethodHS256, testSecret)

	req := httptest.NewRequest(http.MethodDelete, "/bookstores/usr:b1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 for expired token, got %d", rec.Code)
	}
}

func TestAuthz_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUser string
	handler := Authz(protectedHandler(t, &gotUser))

	token := signedToken(t, jwt.MapClaims{
		"sub": "reader@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, "some-other-secret")

	req := httptest.NewRequest(http.MethodPost, "/bookstores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 for forged token, got %d", rec.Code)
	}
}

func TestAuthz_MissingSubClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUser string
	handler := Authz(protectedHandler(t, &gotUser))

	token := signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/bookstores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 for token without sub, got %d", rec.Code)
	}
}

func TestAuthz_PublicEndpointBypasses(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	called := false
	handler := Authz(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("public endpoint must bypass auth, called=%v code=%d", called, rec.Code)
	}
}

func TestUserFromContext_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user := UserFromContext(req.Context()); user != "" {
		t.Fatalf("want empty user, got %q", user)
	}
}
