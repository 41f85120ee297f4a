package bookstore

import (
	"errors"
	"log/slog"
	"net/http"

	"bookmap/internal/handler/http/auth"
	"bookmap/internal/handler/http/requestid"
	"bookmap/internal/handler/http/respond"
	"bookmap/internal/observability/logging"
	bookUC "bookmap/internal/usecase/bookstore"
)

type MineHandler struct {
	Svc    *bookUC.Service
	Logger *slog.Logger
}

// ServeHTTP 自分の書店一覧取得
// @Summary      自分の書店一覧取得
// @Description  認証ユーザーが登録した書店の一覧を取得します。
// @Tags         bookstores
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DTO "登録済み書店一覧"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /bookstores/mine [get]
func (h MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := auth.UserFromContext(ctx)
	if user == "" {
		respond.SafeError(w, http.StatusUnauthorized,
			errors.New("authentication required"))
		return
	}

	base := h.Logger
	if base == nil {
		base = slog.Default()
	}
	logger := logging.WithRequestID(ctx, base)

	list, err := h.Svc.ListMine(ctx, user)
	if err != nil {
		logger.Error("Failed to list own bookstores",
			"error", err.Error(),
			"user", user,
			"request_id", requestid.FromContext(ctx))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, 0, len(list))
	for _, b := range list {
		out = append(out, FromEntity(b))
	}
	respond.JSON(w, http.StatusOK, out)
}
