package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog aggregate and also the stock ledger entry for itself.
// Stock never goes negative; SubcategoryID, when set, must point at a
// subcategory of CategoryID.
type Product struct {
	ID            string
	Title         string
	TitleAm       string
	TitleRu       string
	Description   string
	DescriptionAm string
	DescriptionRu string
	Price         decimal.Decimal
	Stock         int
	CategoryID    string
	SubcategoryID *string
	ImageURLs     []string
	IsFeatured    bool
	IsBestSeller  bool
	IsBestSelect  bool
	Disabled      bool
	Priority      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct builds a product and checks its invariants.
func NewProduct(p Product) (*Product, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the field-level invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.CategoryID == "" {
		return ErrCategoryRequired
	}
	return nil
}

// HasStock reports whether quantity units can be sold.
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// ReduceStock takes quantity units out of stock.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return CannotReduceStock(p, quantity)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IncreaseStock puts quantity units back.
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveImages drops the given URLs and returns the ones that were present.
func (p *Product) RemoveImages(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		drop[u] = struct{}{}
	}

	kept := make([]string, 0, len(p.ImageURLs))
	var removed []string
	for _, u := range p.ImageURLs {
		if _, ok := drop[u]; ok {
			removed = append(removed, u)
			continue
		}
		kept = append(kept, u)
	}
	p.ImageURLs = kept
	return removed
}

// AddImages appends new image URLs, preserving order.
func (p *Product) AddImages(urls ...string) {
	p.ImageURLs = append(p.ImageURLs, urls...)
}
