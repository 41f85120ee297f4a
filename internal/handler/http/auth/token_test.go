package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authservice "bookmap/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

func newTokenService() *authservice.AuthService {
	provider := NewUserListProvider(12, weakPasswords)
	return authservice.NewAuthService(provider, PublicEndpoints)
}

func TestTokenHandler_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("AUTH_USERS", "reader@example.com:plenty-strong-passphrase")

	handler := TokenHandler(newTokenService())

	body := `{"email":"reader@example.com","password":"plenty-strong-passphrase"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// the token must carry the user's email as subject
	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("issued token invalid: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "reader@example.com" {
		t.Fatalf("want sub=reader@example.com, got %v", claims["sub"])
	}
}

func TestTokenHandler_InvalidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("AUTH_USERS", "reader@example.com:plenty-strong-passphrase")

	handler := TokenHandler(newTokenService())

	body := `{"email":"reader@example.com","password":"wrong-password-entirely"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestTokenHandler_MalformedBody(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	handler := TokenHandler(newTokenService())

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}
