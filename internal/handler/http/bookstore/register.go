package bookstore

import (
	"log/slog"
	"net/http"

	"bookmap/internal/handler/http/auth"
	bookUC "bookmap/internal/usecase/bookstore"
)

// Register registers the user-entry management HTTP handlers with the given
// mux. Every route is wrapped in the auth middleware: creating, editing, and
// listing one's own entries all require a valid token.
func Register(mux *http.ServeMux, svc *bookUC.Service, logger *slog.Logger) {
	mux.Handle("GET    /bookstores/mine", auth.Authz(MineHandler{
		Svc:    svc,
		Logger: logger,
	}))

	mux.Handle("POST   /bookstores", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("PUT    /bookstores/", auth.Authz(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /bookstores/", auth.Authz(DeleteHandler{Svc: svc}))
}
