package category

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeleteCategoryUseCase removes a category that no product references.
// Its subcategories are removed with it.
type DeleteCategoryUseCase struct {
	categoryRepo category.Repository
	productRepo  product.Repository
	tx           Transactor
	images       media.Store
	log          *zap.Logger
}

func NewDeleteCategoryUseCase(
	categoryRepo category.Repository,
	productRepo product.Repository,
	tx Transactor,
	images media.Store,
	log *zap.Logger,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		tx:           tx,
		images:       images,
		log:          log,
	}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id string) error {
	var image string

	// the count and the delete share a transaction
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.categoryRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		n, err := uc.productRepo.CountByCategory(txCtx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return category.InUse(c.Title, n)
		}

		image = c.Image
		return uc.categoryRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	media.RemoveQuietly(ctx, uc.images, uc.log, image)
	uc.log.Info("category deleted", zap.String("category_id", id))
	return nil
}
