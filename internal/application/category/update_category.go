package category

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/media"
)

// UpdateCategoryUseCase applies a partial update. A new image replaces the
// old one, which is deleted after the row is saved.
type UpdateCategoryUseCase struct {
	categoryRepo category.Repository
	images       media.Store
	log          *zap.Logger
}

func NewUpdateCategoryUseCase(categoryRepo category.Repository, images media.Store, log *zap.Logger) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		images:       images,
		log:          log,
	}
}

type UpdateCategoryRequest struct {
	ID      string
	Title   *string
	TitleAm *string
	TitleRu *string
	Slug    *string
	Image   *media.File
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, req UpdateCategoryRequest) (*CategoryResponse, error) {
	// 1. load
	c, err := uc.categoryRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 2. title and slug. A new title without a slug regenerates the slug.
	if req.Title != nil || req.Slug != nil {
		title, slug := c.Title, c.Slug
		if req.Title != nil {
			title = *req.Title
			if req.Slug == nil && title != c.Title {
				slug = ""
			}
		}
		if req.Slug != nil {
			slug = *req.Slug
		}
		if err := c.Rename(title, slug); err != nil {
			return nil, err
		}
		if err := ensureSlugFree(ctx, uc.categoryRepo, c.Slug, c.ID); err != nil {
			return nil, err
		}
	}
	if req.TitleAm != nil {
		c.TitleAm = *req.TitleAm
	}
	if req.TitleRu != nil {
		c.TitleRu = *req.TitleRu
	}

	// 3. new image
	var oldImage, newImage string
	if req.Image != nil {
		newImage, err = uc.images.Save(ctx, media.EntityCategories, *req.Image)
		if err != nil {
			return nil, err
		}
		oldImage = c.ReplaceImage(newImage)
	}

	// 4. persist, then drop the replaced image
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		media.RemoveQuietly(ctx, uc.images, uc.log, newImage)
		return nil, err
	}
	media.RemoveQuietly(ctx, uc.images, uc.log, oldImage)

	return ToResponse(c), nil
}
