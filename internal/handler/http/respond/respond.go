// Package respond writes JSON responses and keeps internal error detail
// out of response bodies.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みのためエラー応答は返せない
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// safeFragments marks error messages that may be shown to callers.
// Validation wording matches entity.ValidationError and the handlers'
// own messages; anything else is treated as internal.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
}

// SafeError returns err to the caller only when its message is safe to
// expose. Everything else is logged (with secrets masked) and replaced by
// a generic message. Status codes of 500 and above never pass the message
// through.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	safe := code < 500 && containsSafeFragment(msg)

	if !safe {
		slog.Default().Error("internal server error",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.Any("error", SanitizeError(err)))
		msg = "internal server error"
	}
	JSON(w, code, map[string]string{"error": msg})
}

func containsSafeFragment(msg string) bool {
	lower := strings.ToLower(msg)
	for _, fragment := range safeFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
