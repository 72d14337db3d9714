package banner

import (
	"strings"
	"time"
)

// DefaultPriority is used when a banner is created without one. Banners are
// shown lowest priority first.
const DefaultPriority = 1

// Banner is a promotional slide on the storefront.
type Banner struct {
	ID        string
	Image     string
	URL       string
	Text      string
	TextAm    string
	TextRu    string
	IsActive  bool
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBanner builds a banner. isActive and priority fall back to true and
// DefaultPriority when nil.
func NewBanner(image, url, text, textAm, textRu string, isActive *bool, priority *int) (*Banner, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ErrImageRequired
	}

	b := &Banner{
		Image:    image,
		URL:      url,
		Text:     text,
		TextAm:   textAm,
		TextRu:   textRu,
		IsActive: true,
		Priority: DefaultPriority,
	}
	if isActive != nil {
		b.IsActive = *isActive
	}
	if priority != nil {
		b.Priority = *priority
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// ReplaceImage sets a new image and returns the previous one.
func (b *Banner) ReplaceImage(url string) (old string) {
	old = b.Image
	b.Image = url
	b.UpdatedAt = time.Now()
	return old
}
