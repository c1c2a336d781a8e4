package paging

// DefaultPageSize is the comparison-result page size used by the game
const DefaultPageSize = 3

// Pager slices an ordered result list into fixed-size pages. Page numbers
// are 1-indexed; navigation clamps at both bounds and never errors. The
// ordering of entries is the search service's ranking and is preserved.
type Pager[T any] struct {
	entries  []T
	pageSize int
	page     int
}

// New creates a pager with the given page size. Sizes below 1 fall back
// to the default.
func New[T any](pageSize int) *Pager[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{pageSize: pageSize, page: 1}
}

// SetEntries replaces the underlying result list and resets to page 1
func (p *Pager[T]) SetEntries(entries []T) {
	p.entries = entries
	p.page = 1
}

// TotalPages returns ceil(len(entries) / pageSize), zero when empty
func (p *Pager[T]) TotalPages() int {
	return TotalPages(len(p.entries), p.pageSize)
}

// PageNumber returns the current 1-indexed page
func (p *Pager[T]) PageNumber() int {
	return p.page
}

// Page returns the entries of the current page
func (p *Pager[T]) Page() []T {
	return Slice(p.entries, p.pageSize, p.page)
}

// Goto moves to the given page, clamped into [1, TotalPages], and returns
// its entries.
func (p *Pager[T]) Goto(page int) []T {
	p.page = clamp(page, p.TotalPages())
	return p.Page()
}

// Next advances one page; at the upper bound it stays on the same page
func (p *Pager[T]) Next() []T {
	return p.Goto(p.page + 1)
}

// Previous goes back one page; at the lower bound it stays on page 1
func (p *Pager[T]) Previous() []T {
	return p.Goto(p.page - 1)
}

// TotalPages computes the page count for n entries at the given size
func TotalPages(n, pageSize int) int {
	if n == 0 || pageSize < 1 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Slice returns the 1-indexed page of entries, or an empty slice when the
// page is out of range.
func Slice[T any](entries []T, pageSize, page int) []T {
	total := TotalPages(len(entries), pageSize)
	if total == 0 || page < 1 || page > total {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}

func clamp(page, total int) int {
	if page < 1 {
		return 1
	}
	if total > 0 && page > total {
		return total
	}
	if total == 0 {
		return 1
	}
	return page
}
