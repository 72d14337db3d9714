package product

import (
	"time"

	"github.com/xiebiao/blend/internal/domain/product"
)

// ProductResponse is the public shape of a product.
type ProductResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TitleAm       string    `json:"titleAm"`
	TitleRu       string    `json:"titleRu"`
	Description   string    `json:"description"`
	DescriptionAm string    `json:"descriptionAm"`
	DescriptionRu string    `json:"descriptionRu"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	CategoryID    string    `json:"categoryId"`
	SubcategoryID *string   `json:"subcategoryId"`
	ImageURLs     []string  `json:"imageUrls"`
	IsFeatured    bool      `json:"isFeatured"`
	IsBestSeller  bool      `json:"isBestSeller"`
	IsBestSelect  bool      `json:"isBestSelect"`
	Disabled      bool      `json:"disabled"`
	Priority      int       `json:"priority"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToResponse maps the entity to its public shape.
func ToResponse(p *product.Product) *ProductResponse {
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return &ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		TitleAm:       p.TitleAm,
		TitleRu:       p.TitleRu,
		Description:   p.Description,
		DescriptionAm: p.DescriptionAm,
		DescriptionRu: p.DescriptionRu,
		Price:         p.Price.InexactFloat64(),
		Stock:         p.Stock,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		ImageURLs:     images,
		IsFeatured:    p.IsFeatured,
		IsBestSeller:  p.IsBestSeller,
		IsBestSelect:  p.IsBestSelect,
		Disabled:      p.Disabled,
		Priority:      p.Priority,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToResponses maps a list, never returning nil.
func ToResponses(list []*product.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(list))
	for i, p := range list {
		out[i] = ToResponse(p)
	}
	return out
}

// PageResponse is one page of products.
type PageResponse struct {
	Items []*ProductResponse
	Total int64
	Page  int
	Limit int
}
