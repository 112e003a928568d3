package listing

// Pager derives the navigation affordances for a paginated view from the
// backend's page metadata.
type Pager struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NewPager computes the page window. TotalPages never drops below 1 so an
// empty result set still renders as "page 1 of 1".
func NewPager(page, limit, total int) Pager {
	if limit < 1 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Pager{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether the previous-page affordance is enabled.
func (p Pager) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether the next-page affordance is enabled.
func (p Pager) HasNext() bool {
	return p.Page < p.TotalPages
}

// PrevPage returns the previous page number, floored at 1.
func (p Pager) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage returns the next page number without exceeding the last page.
func (p Pager) NextPage() int {
	if p.Page >= p.TotalPages {
		return p.TotalPages
	}
	return p.Page + 1
}
