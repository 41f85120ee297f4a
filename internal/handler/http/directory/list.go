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

type ListHandler struct {
	Svc           *dirUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 書店一覧取得
// @Summary      書店一覧取得（ページネーション対応）
// @Description  ユーザー登録の書店と公共ディレクトリの書店を統合した一覧を取得します。ユーザー登録分が先頭に並びます。
// @Tags         bookstores
// @Produce      json
// @Param        page   query    int  false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "ページネーション付き書店一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /bookstores [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	// Get request ID for logging
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	// Parse pagination parameters
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pagination.LogRequest(logger, reqID, "", params)

	// Get paginated data from service
	result, err := h.Svc.List(ctx, params)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "snapshot")
		pagination.RecordError("snapshot")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// Convert to DTOs
	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, FromEntity(item))
	}

	// Build paginated response
	response := pagination.NewResponse(dtos, result.Pagination)

	// Record metrics
	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	pagination.LogResponse(logger, reqID, params, len(dtos), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, response)
}
