package console

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// Pagination is a client-side page window over Total items.
type Pagination struct {
	PageSize int
	Total    int
	page     int
}

func NewPagination(pageSize, total int) *Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pagination{PageSize: pageSize, Total: total, page: 1}
}

// TotalPages is ceil(Total / PageSize). Zero items means zero pages.
func (p *Pagination) TotalPages() int {
	if p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Clamp bounds page into [1, max(1, TotalPages)].
func (p *Pagination) Clamp(page int) int {
	last := p.TotalPages()
	if last < 1 {
		last = 1
	}
	switch {
	case page < 1:
		return 1
	case page > last:
		return last
	default:
		return page
	}
}

// Page is the current, always clamped, page number.
func (p *Pagination) Page() int {
	return p.Clamp(p.page)
}

// GoTo moves to page after clamping and returns the page landed on.
func (p *Pagination) GoTo(page int) int {
	p.page = p.Clamp(page)
	return p.page
}

func (p *Pagination) Next() int { return p.GoTo(p.Page() + 1) }
func (p *Pagination) Prev() int { return p.GoTo(p.Page() - 1) }

// Bounds returns the half-open index range of the current page.
func (p *Pagination) Bounds() (int, int) {
	start := (p.Page() - 1) * p.PageSize
	if start > p.Total {
		start = p.Total
	}
	end := start + p.PageSize
	if end > p.Total {
		end = p.Total
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	return start, end
}

// Slice returns the items on the current page of p.
func Slice[T any](items []T, p *Pagination) []T {
	if p.Total != len(items) {
		p.Total = len(items)
	}
	start, end := p.Bounds()
	return items[start:end]
}
