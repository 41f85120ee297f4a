package pagination

// Metadata describes a page within the full result set.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Response is the JSON envelope for any paginated listing.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse pairs one page of items with its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{Data: data, Pagination: metadata}
}
