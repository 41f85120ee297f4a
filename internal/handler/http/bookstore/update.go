package bookstore

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookmap/internal/handler/http/pathutil"
	"bookmap/internal/handler/http/respond"
	bookUC "bookmap/internal/usecase/bookstore"
)

type UpdateHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書店更新
// @Summary      書店更新
// @Description  ユーザー登録の書店を更新します。リクエストに含まれないフィールドは変更されません。
// @Tags         bookstores
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "書店ID (usr: プレフィックス)"
// @Param        bookstore body object true "更新する書店情報"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - invalid input or read-only directory record"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      404 {string} string "Not found - bookstore not found"
// @Router       /bookstores/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/bookstores/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Address     *string  `json:"address"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Category    *string  `json:"category"`
		Phone       *string  `json:"phone"`
		OpenTime    *string  `json:"open_time"`
		CloseTime   *string  `json:"close_time"`
		ClosedDays  *string  `json:"closed_days"`
		Description *string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.Svc.Update(r.Context(), bookUC.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		Phone:       req.Phone,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		ClosedDays:  req.ClosedDays,
		Description: req.Description,
	})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, bookUC.ErrBookstoreNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
