package repository

import "strings"

const (
	// DefaultPageSize is used when no limit is supplied.
	DefaultPageSize = 12
	// MaxPageSize bounds any client-supplied limit.
	MaxPageSize = 50
)

// sortColumns is the allow-list of sortable fields, keyed by the API name.
// Anything else silently falls back to creation time.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"especie":     "especie",
	"familia":     "familia",
	"periodo":     "periodo",
	"localizacao": "localizacao",
}

// FossilFilter carries the optional list parameters. Zero values mean "not
// supplied". UserID 0 means no owner filter; a non-numeric userId parameter
// is ignored upstream, never rejected.
type FossilFilter struct {
	Query       string
	Especie     string
	Familia     string
	Periodo     string
	Localizacao string
	UserID      uint

	Page     int
	Limit    int
	OrderBy  string
	OrderDir string
}

// Normalize clamps pagination and resolves the sort clause against the
// allow-list. Safe to call repeatedly.
func (f *FossilFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if _, ok := sortColumns[f.OrderBy]; !ok {
		f.OrderBy = "createdAt"
	}
	if dir := strings.ToLower(f.OrderDir); dir == "asc" || dir == "desc" {
		f.OrderDir = dir
	} else {
		f.OrderDir = "desc"
	}
}

// Offset returns the number of rows to skip for the current page.
func (f *FossilFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// orderClause builds the ORDER BY fragment. Both parts come from closed
// sets, so string assembly is injection-safe.
func (f *FossilFilter) orderClause() string {
	return sortColumns[f.OrderBy] + " " + f.OrderDir
}
