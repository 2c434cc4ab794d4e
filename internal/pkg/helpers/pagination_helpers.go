package helpers

// NormalizePagination clamps page/perPage values to sane bounds.
func NormalizePagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// LastPage computes the last page number for a total row count.
func LastPage(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	return last
}

// Offset computes the SQL offset for a page.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}
