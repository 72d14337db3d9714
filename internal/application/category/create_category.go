package category

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/media"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type CreateCategoryUseCase struct {
	categoryRepo category.Repository
	images       media.Store
	log          *zap.Logger
}

func NewCreateCategoryUseCase(categoryRepo category.Repository, images media.Store, log *zap.Logger) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		images:       images,
		log:          log,
	}
}

type CreateCategoryRequest struct {
	Title   string
	TitleAm string
	TitleRu string
	Slug    string // derived from Title when empty
	Image   *media.File
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	// 1. build, deriving the slug
	c, err := category.NewCategory(req.Title, req.TitleAm, req.TitleRu, req.Slug)
	if err != nil {
		return nil, err
	}

	// 2. the slug must be free
	if err := ensureSlugFree(ctx, uc.categoryRepo, c.Slug, ""); err != nil {
		return nil, err
	}

	// 3. image
	if req.Image != nil {
		url, err := uc.images.Save(ctx, media.EntityCategories, *req.Image)
		if err != nil {
			return nil, err
		}
		c.Image = url
	}

	// 4. persist
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		media.RemoveQuietly(ctx, uc.images, uc.log, c.Image)
		return nil, err
	}

	return ToResponse(c), nil
}

// ensureSlugFree fails with SlugTaken when another category than exceptID
// already uses slug.
func ensureSlugFree(ctx context.Context, repo category.Repository, slug, exceptID string) error {
	existing, err := repo.FindBySlug(ctx, slug)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == exceptID {
		return nil
	}
	return category.SlugTaken(slug)
}
