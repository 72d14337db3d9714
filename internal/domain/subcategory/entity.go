package subcategory

import (
	"strings"
	"time"
)

// Subcategory always belongs to exactly one category.
type Subcategory struct {
	ID         string
	Title      string
	TitleAm    string
	TitleRu    string
	CategoryID string
	Image      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSubcategory builds a subcategory. The caller checks that the category exists.
func NewSubcategory(s Subcategory) (*Subcategory, error) {
	if strings.TrimSpace(s.Title) == "" {
		return nil, ErrTitleRequired
	}
	if s.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	return &s, nil
}

// BelongsTo reports whether the subcategory is part of categoryID.
func (s *Subcategory) BelongsTo(categoryID string) bool {
	return s.CategoryID == categoryID
}
