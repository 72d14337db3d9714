package subcategory

import (
	"context"
	"time"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/subcategory"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type SubcategoryResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TitleAm    string    `json:"titleAm"`
	TitleRu    string    `json:"titleRu"`
	CategoryID string    `json:"categoryId"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToResponse(s *subcategory.Subcategory) *SubcategoryResponse {
	return &SubcategoryResponse{
		ID:         s.ID,
		Title:      s.Title,
		TitleAm:    s.TitleAm,
		TitleRu:    s.TitleRu,
		CategoryID: s.CategoryID,
		Image:      s.Image,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func ToResponses(list []*subcategory.Subcategory) []*SubcategoryResponse {
	out := make([]*SubcategoryResponse, len(list))
	for i, s := range list {
		out[i] = ToResponse(s)
	}
	return out
}

// =========================================
// Create
// =========================================

type CreateSubcategoryUseCase struct {
	subcategoryRepo subcategory.Repository
	categoryRepo    category.Repository
}

func NewCreateSubcategoryUseCase(subcategoryRepo subcategory.Repository, categoryRepo category.Repository) *CreateSubcategoryUseCase {
	return &CreateSubcategoryUseCase{
		subcategoryRepo: subcategoryRepo,
		categoryRepo:    categoryRepo,
	}
}

type CreateSubcategoryRequest struct {
	Title      string
	TitleAm    string
	TitleRu    string
	CategoryID string
	Image      string
}

func (uc *CreateSubcategoryUseCase) Execute(ctx context.Context, req CreateSubcategoryRequest) (*SubcategoryResponse, error) {
	s, err := subcategory.NewSubcategory(subcategory.Subcategory{
		Title:      req.Title,
		TitleAm:    req.TitleAm,
		TitleRu:    req.TitleRu,
		CategoryID: req.CategoryID,
		Image:      req.Image,
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	if err := uc.subcategoryRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return ToResponse(s), nil
}

// =========================================
// Update
// =========================================

// UpdateSubcategoryUseCase applies a partial update. Moving a subcategory
// to another category is refused while products still reference it, since
// those products would point across categories.
type UpdateSubcategoryUseCase struct {
	subcategoryRepo subcategory.Repository
	categoryRepo    category.Repository
	productRepo     product.Repository
}

func NewUpdateSubcategoryUseCase(
	subcategoryRepo subcategory.Repository,
	categoryRepo category.Repository,
	productRepo product.Repository,
) *UpdateSubcategoryUseCase {
	return &UpdateSubcategoryUseCase{
		subcategoryRepo: subcategoryRepo,
		categoryRepo:    categoryRepo,
		productRepo:     productRepo,
	}
}

type UpdateSubcategoryRequest struct {
	ID         string
	Title      *string
	TitleAm    *string
	TitleRu    *string
	CategoryID *string
	Image      *string
}

func (uc *UpdateSubcategoryUseCase) Execute(ctx context.Context, req UpdateSubcategoryRequest) (*SubcategoryResponse, error) {
	// 1. load
	s, err := uc.subcategoryRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 2. category move
	if req.CategoryID != nil && *req.CategoryID != s.CategoryID {
		if _, err := uc.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		_, n, err := uc.productRepo.Find(ctx, query.New().
			Where(query.FieldSubcategoryID, query.OpEq, s.ID).
			Paginate(query.Page{Number: 1, Limit: 1}))
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperrors.Newf(apperrors.ErrCodeSubcategoryMismatch,
				"Cannot move subcategory %q to another category because %d product(s) reference it", s.Title, n)
		}
		s.CategoryID = *req.CategoryID
	}

	// 3. fields
	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.TitleAm != nil {
		s.TitleAm = *req.TitleAm
	}
	if req.TitleRu != nil {
		s.TitleRu = *req.TitleRu
	}
	if req.Image != nil {
		s.Image = *req.Image
	}
	if _, err := subcategory.NewSubcategory(*s); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()

	// 4. persist
	if err := uc.subcategoryRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return ToResponse(s), nil
}

// =========================================
// Delete / read
// =========================================

// DeleteSubcategoryUseCase removes the subcategory. Products referencing
// it keep their category and lose the subcategory.
type DeleteSubcategoryUseCase struct {
	subcategoryRepo subcategory.Repository
}

func NewDeleteSubcategoryUseCase(subcategoryRepo subcategory.Repository) *DeleteSubcategoryUseCase {
	return &DeleteSubcategoryUseCase{subcategoryRepo: subcategoryRepo}
}

func (uc *DeleteSubcategoryUseCase) Execute(ctx context.Context, id string) error {
	if _, err := uc.subcategoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.subcategoryRepo.Delete(ctx, id)
}

type GetSubcategoryUseCase struct {
	subcategoryRepo subcategory.Repository
}

func NewGetSubcategoryUseCase(subcategoryRepo subcategory.Repository) *GetSubcategoryUseCase {
	return &GetSubcategoryUseCase{subcategoryRepo: subcategoryRepo}
}

func (uc *GetSubcategoryUseCase) Execute(ctx context.Context, id string) (*SubcategoryResponse, error) {
	s, err := uc.subcategoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(s), nil
}

type ListSubcategoriesUseCase struct {
	subcategoryRepo subcategory.Repository
}

func NewListSubcategoriesUseCase(subcategoryRepo subcategory.Repository) *ListSubcategoriesUseCase {
	return &ListSubcategoriesUseCase{subcategoryRepo: subcategoryRepo}
}

func (uc *ListSubcategoriesUseCase) Execute(ctx context.Context) ([]*SubcategoryResponse, error) {
	list, err := uc.subcategoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToResponses(list), nil
}

// ListByCategoryUseCase lists the subcategories of an existing category.
type ListByCategoryUseCase struct {
	subcategoryRepo subcategory.Repository
	categoryRepo    category.Repository
}

func NewListByCategoryUseCase(subcategoryRepo subcategory.Repository, categoryRepo category.Repository) *ListByCategoryUseCase {
	return &ListByCategoryUseCase{
		subcategoryRepo: subcategoryRepo,
		categoryRepo:    categoryRepo,
	}
}

func (uc *ListByCategoryUseCase) Execute(ctx context.Context, categoryID string) ([]*SubcategoryResponse, error) {
	if _, err := uc.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	list, err := uc.subcategoryRepo.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return ToResponses(list), nil
}
