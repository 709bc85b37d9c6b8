package adminview

import (
	"net/url"
	"strconv"
)

// PageSize is fixed; the dashboard has never made it configurable.
const PageSize = 20

// Page is one slice of a fully filtered and sorted collection.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
}

// Paginate slices items into 1-indexed pages of PageSize. Page k holds
// items [(k−1)·20, min(k·20, N)); out-of-range pages clamp into the valid
// range instead of erroring.
func Paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := min(start+PageSize, total)

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

func setIfPresent(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setPage(v url.Values, page int) {
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
}
