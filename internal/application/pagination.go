package application

// Page is one slice of a paginated result.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Per   int `json:"per"`
	Total int `json:"total"`
}

// ClampPage normalizes page/size input: page >= 1, size in [1, max], zero size means def.
func ClampPage(page, size, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size == 0 {
		size = def
	}
	if size < 1 {
		size = 1
	}
	if size > max {
		size = max
	}
	return page, size
}

func offset(page, size int) int { return (page - 1) * size }
