package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/blend/internal/application/product"
	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/pkg/response"
)

type ProductHandler struct {
	listUseCase           *appproduct.ListProductsUseCase
	listByCategoryUseCase *appproduct.ListByCategoryUseCase
	getUseCase            *appproduct.GetProductUseCase
	createUseCase         *appproduct.CreateProductUseCase
	updateUseCase         *appproduct.UpdateProductUseCase
	deleteUseCase         *appproduct.DeleteProductUseCase
	uploads               UploadLimits
}

func NewProductHandler(
	listUseCase *appproduct.ListProductsUseCase,
	listByCategoryUseCase *appproduct.ListByCategoryUseCase,
	getUseCase *appproduct.GetProductUseCase,
	createUseCase *appproduct.CreateProductUseCase,
	updateUseCase *appproduct.UpdateProductUseCase,
	deleteUseCase *appproduct.DeleteProductUseCase,
	uploads UploadLimits,
) *ProductHandler {
	return &ProductHandler{
		listUseCase:           listUseCase,
		listByCategoryUseCase: listByCategoryUseCase,
		getUseCase:            getUseCase,
		createUseCase:         createUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		uploads:               uploads,
	}
}

// List godoc
// @Summary      List products
// @Description  All products, disabled ones included, by priority then newest
// @Tags         products
// @Produce      json
// @Param        page  query int false "page number" default(1)
// @Param        limit query int false "page size" default(10)
// @Success      200 {object} response.Response{data=[]appproduct.ProductResponse}
// @Failure      400 {object} response.Response
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.listUseCase.Execute(c.Request.Context(), appproduct.ListProductsRequest{
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.Limit)
}

// ListByCategory godoc
// @Summary      List products of a category
// @Description  Storefront listing; disabled products are hidden
// @Tags         categories
// @Produce      json
// @Param        id            path  string true  "category id"
// @Param        page          query int    false "page number" default(1)
// @Param        limit         query int    false "page size" default(10)
// @Param        subcategoryId query string false "subcategory filter"
// @Param        search        query string false "case-insensitive title match"
// @Param        minPrice      query number false "minimum price"
// @Param        maxPrice      query number false "maximum price"
// @Param        sortBy        query string false "default | newest | oldest | price_high_to_low | price_low_to_high"
// @Success      200 {object} response.Response{data=[]appproduct.ProductResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /categories/{id}/products [get]
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	// 1. bind the filters
	var q dto.ProductsByCategoryQuery
	if !bindQuery(c, &q) {
		return
	}
	minPrice, err := parseOptionalDecimal("minPrice", q.MinPrice)
	if err != nil {
		response.Error(c, err)
		return
	}
	maxPrice, err := parseOptionalDecimal("maxPrice", q.MaxPrice)
	if err != nil {
		response.Error(c, err)
		return
	}
	sortKey, _ := query.ParseSortKey(q.SortBy)

	// 2. run the listing
	page, err := h.listByCategoryUseCase.Execute(c.Request.Context(), appproduct.ListByCategoryRequest{
		CategoryID:    c.Param("id"),
		Page:          q.Page,
		Limit:         q.Limit,
		SubcategoryID: q.SubcategoryID,
		Search:        q.Search,
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		SortBy:        sortKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get godoc
// @Summary      Get a product
// @Description  The product plus a few random suggestions from its category
// @Tags         products
// @Produce      json
// @Param        id path string true "product id"
// @Success      200 {object} response.Response{data=appproduct.ProductDetailResponse}
// @Failure      404 {object} response.Response
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title         formData string true  "title"
// @Param        price         formData number true  "price"
// @Param        stock         formData int    false "stock"
// @Param        categoryId    formData string true  "category id"
// @Param        subcategoryId formData string false "subcategory id"
// @Param        images        formData file   false "up to 10 images"
// @Success      201 {object} response.Response{data=appproduct.ProductResponse}
// @Failure      400 {object} response.Response
// @Failure      401 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	// 1. fields
	var form dto.CreateProductForm
	if !bindForm(c, &form) {
		return
	}
	price, err := parseDecimal("price", form.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. images
	images, err := h.uploads.readImages(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. use case
	result, err := h.createUseCase.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		Title:         form.Title,
		TitleAm:       form.TitleAm,
		TitleRu:       form.TitleRu,
		Description:   form.Description,
		DescriptionAm: form.DescriptionAm,
		DescriptionRu: form.DescriptionRu,
		Price:         price,
		Stock:         form.Stock,
		CategoryID:    form.CategoryID,
		SubcategoryID: form.SubcategoryID,
		IsFeatured:    form.IsFeatured,
		IsBestSeller:  form.IsBestSeller,
		IsBestSelect:  form.IsBestSelect,
		Disabled:      form.Disabled,
		Priority:      form.Priority,
		Images:        images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary      Update a product
// @Description  Absent fields are kept. imagesToRemove[] drops images, new images[] are appended
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id             path     string true  "product id"
// @Param        imagesToRemove formData []string false "image urls to drop"
// @Param        images         formData file   false "images to append"
// @Success      200 {object} response.Response{data=appproduct.ProductResponse}
// @Failure      400 {object} response.Response
// @Failure      401 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var form dto.UpdateProductForm
	if !bindForm(c, &form) {
		return
	}

	req := appproduct.UpdateProductRequest{
		ID:             c.Param("id"),
		Title:          form.Title,
		TitleAm:        form.TitleAm,
		TitleRu:        form.TitleRu,
		Description:    form.Description,
		DescriptionAm:  form.DescriptionAm,
		DescriptionRu:  form.DescriptionRu,
		Stock:          form.Stock,
		CategoryID:     form.CategoryID,
		SubcategoryID:  form.SubcategoryID,
		IsFeatured:     form.IsFeatured,
		IsBestSeller:   form.IsBestSeller,
		IsBestSelect:   form.IsBestSelect,
		Disabled:       form.Disabled,
		Priority:       form.Priority,
		ImagesToRemove: append(form.ImagesToRemove, c.PostFormArray("imagesToRemove[]")...),
	}
	if form.Price != nil {
		price, err := parseDecimal("price", *form.Price)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Price = &price
	}

	images, err := h.uploads.readImages(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}
	req.NewImages = images

	result, err := h.updateUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "product id"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Product deleted"})
}
