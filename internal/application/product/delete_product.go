package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
)

type DeleteProductUseCase struct {
	productRepo product.Repository
	images      media.Store
	log         *zap.Logger
}

func NewDeleteProductUseCase(productRepo product.Repository, images media.Store, log *zap.Logger) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo: productRepo,
		images:      images,
		log:         log,
	}
}

// Execute deletes the product and then its images. Image failures are
// only logged.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, id string) error {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	media.RemoveQuietly(ctx, uc.images, uc.log, p.ImageURLs...)
	uc.log.Info("product deleted", zap.String("product_id", id))
	return nil
}
