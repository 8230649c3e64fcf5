package paginator

import "math"

// Adjust clamps the requested page and limit to usable values. Out of
// range requests fall back to the first page of DefaultLimit rows.
func (p *PaginateQuery) Adjust() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.Limit < 1 {
		p.Limit = DefaultLimit
	} else if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset is the row offset of the current page.
func (p *PaginateQuery) Offset() int64 {
	return int64(p.Page-1) * p.Limit
}

// TotalPages derives the page count from the total row count.
func (p Paginator) TotalPages() int {
	if p.Total == 0 || p.PerPage == 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.PerPage)))
}

// ToResponse flattens the paginator into the wire shape, deriving the
// page count and the next/previous flags.
func (p Paginator) ToResponse() PaginatorResponse {
	totalPages := p.TotalPages()
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		TotalPages:  totalPages,
		HasNext:     p.CurrentPage < totalPages,
		HasPrev:     p.CurrentPage > 1,
	}
}
