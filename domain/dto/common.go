package dto

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// NormalizePage fills in defaults for a page request.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PageBounds returns the slice bounds of page within total items.
func PageBounds(total, page, limit int) (int, int) {
	if page < 1 || limit < 1 {
		return 0, 0
	}
	// compare before multiplying so huge pages cannot overflow
	if page-1 >= (total+limit-1)/limit {
		return total, total
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}
