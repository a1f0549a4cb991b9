// Package paging computes page windows over ordered results.
package paging

// DefaultSize is used when a non-positive page size is requested.
const DefaultSize = 10

// MaxSize caps the page size.
const MaxSize = 100

// Page is a 1-indexed window over total items.
type Page struct {
	Number int
	Size   int
	Total  int
}

// New returns a page clamped to valid bounds. Page numbers below one become
// one and numbers past the last page become the last page.
func New(number, size, total int) Page {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if total < 0 {
		total = 0
	}
	p := Page{Number: number, Size: size, Total: total}
	if p.Number < 1 {
		p.Number = 1
	}
	if last := p.Pages(); p.Number > last {
		p.Number = last
	}
	return p
}

// Pages returns the number of pages. An empty result still has one page.
func (p Page) Pages() int {
	if p.Total == 0 || p.Size <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// Offset returns the index of the first item on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the page size.
func (p Page) Limit() int {
	return p.Size
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.Pages()
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// Bounds returns the [lo, hi) slice bounds of the page within Total items.
func (p Page) Bounds() (int, int) {
	lo := p.Offset()
	if lo > p.Total {
		lo = p.Total
	}
	hi := lo + p.Size
	if hi > p.Total {
		hi = p.Total
	}
	return lo, hi
}

// Slice returns the items of s on page p. It re-clamps the page to len(s).
func Slice[T any](s []T, p Page) []T {
	p = New(p.Number, p.Size, len(s))
	lo, hi := p.Bounds()
	return s[lo:hi]
}
