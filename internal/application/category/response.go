package category

import (
	"time"

	"github.com/xiebiao/blend/internal/domain/category"
)

type CategoryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	TitleAm   string    `json:"titleAm"`
	TitleRu   string    `json:"titleRu"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Title:     c.Title,
		TitleAm:   c.TitleAm,
		TitleRu:   c.TitleRu,
		Slug:      c.Slug,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToResponses(list []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(list))
	for i, c := range list {
		out[i] = ToResponse(c)
	}
	return out
}
