package inventory

// PaginatedResult is one page of a larger result set.
type PaginatedResult[T any] struct {
	Data            []T  `json:"data"`
	Page            int  `json:"page"`
	TotalPages      int  `json:"totalPages"`
	Total           int  `json:"total"`
	Limit           int  `json:"limit"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paginate slices out the requested page. A limit below 1 falls back to
// DefaultLimit and a page below 1 to the first page. Pages past the end yield
// an empty, non-nil Data slice, however large the page number.
func Paginate[T any](items []T, page, limit int) PaginatedResult[T] {
	if limit < 1 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}

	total := len(items)
	data := make([]T, 0)
	hasNext := false
	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/limit + 1
	}

	// Compare in pages, not offsets: (page-1)*limit may overflow.
	if total > 0 && page-1 <= (total-1)/limit {
		start := (page - 1) * limit
		end := start + min(limit, total-start)
		data = append(data, items[start:end]...)
		hasNext = end < total
	}

	return PaginatedResult[T]{
		Data:            data,
		Page:            page,
		TotalPages:      totalPages,
		Total:           total,
		Limit:           limit,
		HasNextPage:     hasNext,
		HasPreviousPage: page > 1,
	}
}
