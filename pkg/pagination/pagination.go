package pagination

// Page/size pagination, 1-indexed, matching the public list envelope.

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 10
	// MaxSize caps how many rows any list query can request.
	MaxSize = 100
)

// Params holds pagination inputs from controllers or services.
type Params struct {
	Page int
	Size int
}

// Meta is the pagination block emitted alongside list results.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Normalize enforces the 1-indexed page and the configured size bounds.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the number of rows to skip for the normalized params.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.Size
}

// Limit returns the page size for the normalized params.
func (p Params) Limit() int {
	return Normalize(p).Size
}

// MetaFor derives the pagination block from a total row count.
func MetaFor(p Params, total int64) Meta {
	n := Normalize(p)
	pages := int(total) / n.Size
	if int(total)%n.Size != 0 {
		pages++
	}
	return Meta{
		CurrentPage:  n.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: n.Size,
	}
}
