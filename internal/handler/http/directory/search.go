package directory

import (
	"log/slog"
	"net/http"
	"time"

	"bookmap/internal/common/pagination"
	"bookmap/internal/handler/http/requestid"
	"bookmap/internal/handler/http/respond"
	"bookmap/internal/observability/logging"
	dirUC "bookmap/internal/usecase/directory"
)

type SearchHandler struct {
	Svc           *dirUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 書店検索
// @Summary      書店検索
// @Description  店名・住所・カテゴリにクエリ文字列を含む書店を検索します（大文字小文字を区別しません）。空のクエリは全件を返します。
// @Tags         bookstores
// @Produce      json
// @Param        q      query    string false "検索キーワード"
// @Param        page   query    int    false "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "検索結果"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /bookstores/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	query := r.URL.Query().Get("q")

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.Search(ctx, query, params)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "snapshot")
		pagination.RecordError("snapshot")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, FromEntity(item))
	}

	response := pagination.NewResponse(dtos, result.Pagination)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())

	logger.Info("Bookstore search completed",
		"query", query,
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
