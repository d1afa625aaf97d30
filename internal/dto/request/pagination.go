package request

const (
	DefaultPerPage = 10
	MaxPerPage     = 100

	// Offsets past this are beyond any table this service holds; clamping
	// keeps (page-1)*per_page from overflowing into a negative OFFSET.
	maxOffset = 1 << 31
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// Normalize clamps page to at least 1 and per_page into 1..MaxPerPage, so the
// metadata a service reports matches the rows it fetched.
func (p *PaginatedRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	limit := p.Limit()
	if p.Page-1 > maxOffset/limit {
		return maxOffset
	}
	return (p.Page - 1) * limit
}
