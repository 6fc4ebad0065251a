package models

import "strconv"

// Listing defaults. Limit is capped: the upstream behavior allowed
// arbitrarily large pages, which is an easy way to stall the store.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortField = "createdAt"
)

// UserQuery is the parsed form of the listing query string: optional
// case-insensitive substring filters on name and email, a sort key and
// direction, and 1-indexed offset pagination.
type UserQuery struct {
	Name      string
	Email     string
	Page      int64
	Limit     int64
	SortField string
	SortDesc  bool
}

// UserQueryFromParams builds a UserQuery from raw query-string parameters.
// Non-numeric or out-of-range page/limit values fall back to defaults
// rather than erroring.
func UserQueryFromParams(params map[string]string) UserQuery {
	q := UserQuery{
		Name:      params["name"],
		Email:     params["email"],
		Page:      parsePositive(params["page"], DefaultPage),
		Limit:     parsePositive(params["limit"], DefaultLimit),
		SortField: params["sortField"],
		SortDesc:  params["sortOrder"] == "desc",
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.SortField == "" {
		q.SortField = DefaultSortField
	}
	return q
}

// Skip returns the number of records to skip for the requested page.
func (q UserQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// TotalPages returns ceil(total/limit) for this query's page size.
func (q UserQuery) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + q.Limit - 1) / q.Limit
}

func parsePositive(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
