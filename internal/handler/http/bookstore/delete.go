package bookstore

import (
	"errors"
	"net/http"

	"bookmap/internal/handler/http/pathutil"
	"bookmap/internal/handler/http/respond"
	bookUC "bookmap/internal/usecase/bookstore"
)

type DeleteHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書店削除
// @Summary      書店削除
// @Description  ユーザー登録の書店を削除します。公共ディレクトリのレコードは削除できません。
// @Tags         bookstores
// @Security     BearerAuth
// @Param        id path string true "書店ID (usr: プレフィックス)"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - invalid ID or read-only directory record"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /bookstores/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/bookstores/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, bookUC.ErrNotUserEntry) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
