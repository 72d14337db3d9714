// Package query describes catalog reads independently of the ORM: a list of
// predicates, a sort key and a page window. Repositories translate a Spec
// into their own query builder.
package query

import "strings"

// Op is a predicate operator.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpGte
	OpLte
	OpContains // case-insensitive substring
)

// Field names understood by the repositories.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldPrice         = "price"
	FieldCategoryID    = "categoryId"
	FieldSubcategoryID = "subcategoryId"
	FieldDisabled      = "disabled"
	FieldIsFeatured    = "isFeatured"
	FieldIsBestSeller  = "isBestSeller"
	FieldIsBestSelect  = "isBestSelect"
)

// Predicate is a single field condition.
type Predicate struct {
	Field string
	Op    Op
	Value interface{}
}

// SortKey is the ordering applied to a result set.
type SortKey string

const (
	SortDefault        SortKey = "default" // priority desc, createdAt desc
	SortNewest         SortKey = "newest"
	SortOldest         SortKey = "oldest"
	SortPriceHighToLow SortKey = "price_high_to_low"
	SortPriceLowToHigh SortKey = "price_low_to_high"
)

// ParseSortKey accepts the public sort names. An empty string is the default order.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case "":
		return SortDefault, true
	case SortDefault, SortNewest, SortOldest, SortPriceHighToLow, SortPriceLowToHigh:
		return k, true
	default:
		return SortDefault, false
	}
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page window. The zero value means "no pagination".
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps page to >= 1 and limit to 1..MaxLimit, defaulting to 10.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Enabled reports whether the page window applies.
func (p Page) Enabled() bool {
	return p.Limit > 0
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// Spec is a complete read request.
type Spec struct {
	Predicates []Predicate
	Sort       SortKey
	Page       Page
}

// New starts an unfiltered spec with the default ordering.
func New() *Spec {
	return &Spec{Sort: SortDefault}
}

// Where appends a predicate.
func (s *Spec) Where(field string, op Op, value interface{}) *Spec {
	s.Predicates = append(s.Predicates, Predicate{Field: field, Op: op, Value: value})
	return s
}

// WhereIf appends a predicate only when cond holds, so optional filters chain.
func (s *Spec) WhereIf(cond bool, field string, op Op, value interface{}) *Spec {
	if cond {
		return s.Where(field, op, value)
	}
	return s
}

// SortBy sets the ordering.
func (s *Spec) SortBy(key SortKey) *Spec {
	s.Sort = key
	return s
}

// Paginate sets the page window.
func (s *Spec) Paginate(p Page) *Spec {
	s.Page = p
	return s
}
