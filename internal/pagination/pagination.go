// Package pagination turns an ordered listing plus a requested page
// number into a bounded page with navigation metadata. Out-of-range
// requests never fail: pages below 1 resolve to the first page and
// pages past the end clamp to the last one.
package pagination

// Page is a bounded slice of a listing plus the numbers the pagination
// controls need.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Number     int   `json:"number"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Resolve computes the effective page number, the total page count and
// the item offset for a listing of total items with the given page
// size. TotalPages is ceil(total/size) but never below 1, so controls
// stay well-defined on an empty listing.
func Resolve(total int64, requested, size int) (number, totalPages, offset int) {
	totalPages = int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	number = requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	offset = (number - 1) * size
	return number, totalPages, offset
}

// Paginate slices items down to the requested page. Pure: identical
// inputs give identical pages, and input order is preserved.
func Paginate[T any](items []T, requested, size int) Page[T] {
	number, totalPages, offset := Resolve(int64(len(items)), requested, size)
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[offset:end],
		Number:     number,
		TotalPages: totalPages,
		TotalItems: int64(len(items)),
	}
}
