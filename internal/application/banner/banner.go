package banner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/banner"
	"github.com/xiebiao/blend/internal/domain/media"
)

type BannerResponse struct {
	ID        string    `json:"id"`
	Image     string    `json:"image"`
	URL       string    `json:"url"`
	Text      string    `json:"text"`
	TextAm    string    `json:"textAm"`
	TextRu    string    `json:"textRu"`
	IsActive  bool      `json:"isActive"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResponse(b *banner.Banner) *BannerResponse {
	return &BannerResponse{
		ID:        b.ID,
		Image:     b.Image,
		URL:       b.URL,
		Text:      b.Text,
		TextAm:    b.TextAm,
		TextRu:    b.TextRu,
		IsActive:  b.IsActive,
		Priority:  b.Priority,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func ToResponses(list []*banner.Banner) []*BannerResponse {
	out := make([]*BannerResponse, len(list))
	for i, b := range list {
		out[i] = ToResponse(b)
	}
	return out
}

// =========================================
// Create
// =========================================

type CreateBannerUseCase struct {
	bannerRepo banner.Repository
	images     media.Store
	log        *zap.Logger
}

func NewCreateBannerUseCase(bannerRepo banner.Repository, images media.Store, log *zap.Logger) *CreateBannerUseCase {
	return &CreateBannerUseCase{bannerRepo: bannerRepo, images: images, log: log}
}

type CreateBannerRequest struct {
	Image    *media.File
	URL      string
	Text     string
	TextAm   string
	TextRu   string
	IsActive *bool
	Priority *int
}

func (uc *CreateBannerUseCase) Execute(ctx context.Context, req CreateBannerRequest) (*BannerResponse, error) {
	if req.Image == nil {
		return nil, banner.ErrImageRequired
	}

	// 1. store the image
	url, err := uc.images.Save(ctx, media.EntityBanners, *req.Image)
	if err != nil {
		return nil, err
	}

	// 2. build
	b, err := banner.NewBanner(url, req.URL, req.Text, req.TextAm, req.TextRu, req.IsActive, req.Priority)
	if err != nil {
		media.RemoveQuietly(ctx, uc.images, uc.log, url)
		return nil, err
	}

	// 3. persist
	if err := uc.bannerRepo.Create(ctx, b); err != nil {
		media.RemoveQuietly(ctx, uc.images, uc.log, url)
		return nil, err
	}
	return ToResponse(b), nil
}

// =========================================
// Update
// =========================================

type UpdateBannerUseCase struct {
	bannerRepo banner.Repository
	images     media.Store
	log        *zap.Logger
}

func NewUpdateBannerUseCase(bannerRepo banner.Repository, images media.Store, log *zap.Logger) *UpdateBannerUseCase {
	return &UpdateBannerUseCase{bannerRepo: bannerRepo, images: images, log: log}
}

type UpdateBannerRequest struct {
	ID       string
	Image    *media.File
	URL      *string
	Text     *string
	TextAm   *string
	TextRu   *string
	IsActive *bool
	Priority *int
}

func (uc *UpdateBannerUseCase) Execute(ctx context.Context, req UpdateBannerRequest) (*BannerResponse, error) {
	b, err := uc.bannerRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.URL != nil {
		b.URL = *req.URL
	}
	if req.Text != nil {
		b.Text = *req.Text
	}
	if req.TextAm != nil {
		b.TextAm = *req.TextAm
	}
	if req.TextRu != nil {
		b.TextRu = *req.TextRu
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.Priority != nil {
		b.Priority = *req.Priority
	}
	b.UpdatedAt = time.Now()

	var oldImage, newImage string
	if req.Image != nil {
		newImage, err = uc.images.Save(ctx, media.EntityBanners, *req.Image)
		if err != nil {
			return nil, err
		}
		oldImage = b.ReplaceImage(newImage)
	}

	if err := uc.bannerRepo.Update(ctx, b); err != nil {
		media.RemoveQuietly(ctx, uc.images, uc.log, newImage)
		return nil, err
	}
	media.RemoveQuietly(ctx, uc.images, uc.log, oldImage)

	return ToResponse(b), nil
}

// =========================================
// Delete / read
// =========================================

type DeleteBannerUseCase struct {
	bannerRepo banner.Repository
	images     media.Store
	log        *zap.Logger
}

func NewDeleteBannerUseCase(bannerRepo banner.Repository, images media.Store, log *zap.Logger) *DeleteBannerUseCase {
	return &DeleteBannerUseCase{bannerRepo: bannerRepo, images: images, log: log}
}

func (uc *DeleteBannerUseCase) Execute(ctx context.Context, id string) error {
	b, err := uc.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.bannerRepo.Delete(ctx, id); err != nil {
		return err
	}
	media.RemoveQuietly(ctx, uc.images, uc.log, b.Image)
	return nil
}

type GetBannerUseCase struct {
	bannerRepo banner.Repository
}

func NewGetBannerUseCase(bannerRepo banner.Repository) *GetBannerUseCase {
	return &GetBannerUseCase{bannerRepo: bannerRepo}
}

func (uc *GetBannerUseCase) Execute(ctx context.Context, id string) (*BannerResponse, error) {
	b, err := uc.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(b), nil
}

// ListBannersUseCase returns banners by ascending priority. The storefront
// asks for active ones only.
type ListBannersUseCase struct {
	bannerRepo banner.Repository
}

func NewListBannersUseCase(bannerRepo banner.Repository) *ListBannersUseCase {
	return &ListBannersUseCase{bannerRepo: bannerRepo}
}

func (uc *ListBannersUseCase) Execute(ctx context.Context, activeOnly bool) ([]*BannerResponse, error) {
	list, err := uc.bannerRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return ToResponses(list), nil
}
