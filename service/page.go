package service

// Page describes one slice of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Size       int `json:"size"`
}

func newPage[T any](items []T, total, page, size int) Page[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page[T]{
		Items:      items,
		TotalItems: total,
		TotalPages: pages,
		Page:       page,
		Size:       size,
	}
}
