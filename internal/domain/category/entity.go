package category

import (
	"regexp"
	"strings"
	"time"
)

// Category groups products. Slug is globally unique.
type Category struct {
	ID        string
	Title     string
	TitleAm   string
	TitleRu   string
	Slug      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases title and collapses every run of characters outside
// [a-z0-9] into a single dash.
func GenerateSlug(title string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// NewCategory builds a category, deriving the slug from the title when slug is empty.
func NewCategory(title, titleAm, titleRu, slug string) (*Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if slug == "" {
		slug = GenerateSlug(title)
	}
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	now := time.Now()
	return &Category{
		Title:     title,
		TitleAm:   titleAm,
		TitleRu:   titleRu,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename changes the title. A title change without an explicit slug
// regenerates the slug.
func (c *Category) Rename(title, slug string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if slug == "" {
		slug = GenerateSlug(title)
	}
	c.Title = title
	c.Slug = slug
	c.UpdatedAt = time.Now()
	return nil
}

// ReplaceImage sets a new image and returns the previous one.
func (c *Category) ReplaceImage(url string) (old string) {
	old = c.Image
	c.Image = url
	c.UpdatedAt = time.Now()
	return old
}
