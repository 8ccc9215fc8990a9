package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 30
)

// Page is one slice of a newest-first listing. NextCursor is empty when HasMore is false.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// ClampPageSize applies the default for non-positive sizes and caps at MaxPageSize.
func ClampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}
