package model

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage giữ Offset() trong range của int
	MaxPage = math.MaxInt / MaxLimit
)

// Page - page/limit đã chuẩn hóa
type Page struct {
	Number int
	Limit  int
}

// NewPage: page < 1 hoặc limit < 1 → default, limit > MaxLimit → MaxLimit, page > MaxPage → MaxPage
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if number > MaxPage {
		number = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages = ceil(total/limit)
func (p Page) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
