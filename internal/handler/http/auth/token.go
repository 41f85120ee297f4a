package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"bookmap/internal/handler/http/requestid"
	authservice "bookmap/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the lifetime of an issued token.
const tokenTTL = 1 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenHandler exchanges valid credentials for an HS256 JWT. The subject
// claim is the user's email, which the bookstore endpoints treat as the
// owner identity of user entries.
func TokenHandler(authService *authservice.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		logger.Info("authentication attempt started")

		// finish records metrics and the failure log in one place.
		fail := func(reason string, status int, msg string) {
			logger.Warn("authentication failed",
				slog.String("reason", reason),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("failure")
			RecordAuthDuration(time.Since(start).Seconds())
			http.Error(w, msg, status)
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail("invalid_request", http.StatusBadRequest, "invalid request")
			return
		}

		creds := authservice.Credentials{Email: req.Email, Password: req.Password}
		if err := authService.ValidateCredentials(r.Context(), creds); err != nil {
			fail("invalid_credentials", http.StatusUnauthorized, "unauthorized")
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": req.Email,
			"exp": time.Now().Add(tokenTTL).Unix(),
		})
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("failure")
			RecordAuthDuration(time.Since(start).Seconds())
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("user_email", req.Email),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("success")
		RecordAuthDuration(time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response", slog.String("error", err.Error()))
		}
	}
}
