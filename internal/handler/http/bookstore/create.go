package bookstore

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookmap/internal/handler/http/auth"
	"bookmap/internal/handler/http/respond"
	bookUC "bookmap/internal/usecase/bookstore"
)

type CreateHandler struct{ Svc *bookUC.Service }

// ServeHTTP 書店登録
// @Summary      書店登録
// @Description  新しい書店を登録します。作成者はJWTのsubクレームから記録されます。
// @Tags         bookstores
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookstore body object true "書店情報"
// @Success      201 {object} object "作成された書店のID"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Router       /bookstores [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == "" {
		respond.SafeError(w, http.StatusUnauthorized,
			errors.New("authentication required"))
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Address     string   `json:"address"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Category    string   `json:"category"`
		Phone       string   `json:"phone"`
		OpenTime    string   `json:"open_time"`
		CloseTime   string   `json:"close_time"`
		ClosedDays  string   `json:"closed_days"`
		Description string   `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.Address == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("name, address are required"))
		return
	}

	id, err := h.Svc.Create(r.Context(), user, bookUC.CreateInput{
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
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{"id": id})
}
