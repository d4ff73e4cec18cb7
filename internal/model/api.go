package model

// Paginated is the backend's pagination envelope for listing endpoints.
type Paginated[T any] struct {
	Data        []T  `json:"data"`
	CurrentPage int  `json:"current_page"`
	Total       int  `json:"total"`
	PerPage     int  `json:"per_page"`
	LastPage    int  `json:"last_page"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// Pagination defaults used by listing pages.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)
