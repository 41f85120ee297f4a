package directory

import (
	"log/slog"
	"net/http"

	"bookmap/internal/common/pagination"
	dirUC "bookmap/internal/usecase/directory"
)

// Register registers the public directory HTTP handlers with the given mux.
// Both routes are read-only and deliberately mounted without the auth
// middleware: browsing the directory requires no account.
func Register(mux *http.ServeMux, svc *dirUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /bookstores", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    /bookstores/search", SearchHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
