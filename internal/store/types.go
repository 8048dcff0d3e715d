package store

// ListOptions controls filtering and pagination for admin listings.
type ListOptions struct {
	// Status filters by record status when non-empty.
	Status string
	// Page is 1-indexed.
	Page  int
	Limit int
}

func (o ListOptions) withDefaults() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 10
	}
	return o
}

// TotalPages computes the page count for a filtered total.
func (o ListOptions) TotalPages(total int64) int64 {
	o = o.withDefaults()
	return (total + int64(o.Limit) - 1) / int64(o.Limit)
}
