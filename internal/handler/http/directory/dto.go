// Package directory provides HTTP handlers for the public bookstore
// directory endpoints. It includes handlers for listing and searching the
// aggregated directory of user entries and public API records.
package directory

import (
	"time"

	"bookmap/internal/domain/entity"
)

// DTO represents the JSON structure for bookstore data transfer.
type DTO struct {
	ID          string     `json:"id" example:"ext:130588"`
	Name        string     `json:"name" example:"동네책방"`
	Address     string     `json:"address" example:"서울특별시 마포구 양화로 100"`
	Latitude    float64    `json:"latitude" example:"37.5665"`
	Longitude   float64    `json:"longitude" example:"126.978"`
	Category    string     `json:"category" example:"독립서점"`
	Phone       string     `json:"phone,omitempty" example:"02-1234-5678"`
	OpenTime    string     `json:"open_time,omitempty" example:"10:00"`
	CloseTime   string     `json:"close_time,omitempty" example:"21:00"`
	ClosedDays  string     `json:"closed_days,omitempty" example:"매주 월요일"`
	Description string     `json:"description,omitempty"`
	UserAdded   bool       `json:"user_added"`
	CreatedAt   *time.Time `json:"created_at,omitempty" example:"2025-10-26T12:00:00Z"`
}

// FromEntity converts a domain bookstore into its transfer representation.
func FromEntity(b *entity.Bookstore) DTO {
	return DTO{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		Category:    b.Category,
		Phone:       b.Phone,
		OpenTime:    b.OpenTime,
		CloseTime:   b.CloseTime,
		ClosedDays:  b.ClosedDays,
		Description: b.Description,
		UserAdded:   b.UserAdded,
		CreatedAt:   b.CreatedAt,
	}
}
