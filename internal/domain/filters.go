package domain

// SearchFilters holds the query parameters of one search session.
// Zero values mean "no filter"; Platform and Format default to "all".
type SearchFilters struct {
	Keyword  string
	Platform Platform
	Format   Format
	Sort     string
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
	Industry string
}

// Normalize fills in the backend defaults for unset fields.
func (f SearchFilters) Normalize() SearchFilters {
	if f.Platform == "" {
		f.Platform = PlatformAll
	}
	if f.Format == "" {
		f.Format = FormatAll
	}
	if f.Sort == "" {
		f.Sort = SortRecent
	}
	return f
}

// FilterUpdate carries a partial filter change; nil fields are left as-is.
type FilterUpdate struct {
	Keyword  *string
	Platform *Platform
	Format   *Format
	Sort     *string
	DateFrom *string
	DateTo   *string
	Industry *string
}

// Apply merges the update into a copy of f.
func (f SearchFilters) Apply(u FilterUpdate) SearchFilters {
	if u.Keyword != nil {
		f.Keyword = *u.Keyword
	}
	if u.Platform != nil {
		f.Platform = *u.Platform
	}
	if u.Format != nil {
		f.Format = *u.Format
	}
	if u.Sort != nil {
		f.Sort = *u.Sort
	}
	if u.DateFrom != nil {
		f.DateFrom = *u.DateFrom
	}
	if u.DateTo != nil {
		f.DateTo = *u.DateTo
	}
	if u.Industry != nil {
		f.Industry = *u.Industry
	}
	return f
}
