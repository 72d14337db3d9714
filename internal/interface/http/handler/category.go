package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/blend/internal/application/category"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/pkg/response"
)

type CategoryHandler struct {
	listUseCase   *appcategory.ListCategoriesUseCase
	getUseCase    *appcategory.GetCategoryUseCase
	createUseCase *appcategory.CreateCategoryUseCase
	updateUseCase *appcategory.UpdateCategoryUseCase
	deleteUseCase *appcategory.DeleteCategoryUseCase
	uploads       UploadLimits
}

func NewCategoryHandler(
	listUseCase *appcategory.ListCategoriesUseCase,
	getUseCase *appcategory.GetCategoryUseCase,
	createUseCase *appcategory.CreateCategoryUseCase,
	updateUseCase *appcategory.UpdateCategoryUseCase,
	deleteUseCase *appcategory.DeleteCategoryUseCase,
	uploads UploadLimits,
) *CategoryHandler {
	return &CategoryHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		uploads:       uploads,
	}
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcategory.CategoryResponse}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "category id"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      404 {object} response.Response
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create godoc
// @Summary      Create a category
// @Description  The slug is derived from the title unless given
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title   formData string true  "title"
// @Param        titleAm formData string false "Armenian title"
// @Param        titleRu formData string false "Russian title"
// @Param        slug    formData string false "slug"
// @Param        image   formData file   false "image"
// @Success      201 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      400 {object} response.Response
// @Failure      409 {object} response.Response "slug taken"
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var form dto.CreateCategoryForm
	if !bindForm(c, &form) {
		return
	}
	image, err := h.uploads.readImage(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appcategory.CreateCategoryRequest{
		Title:   form.Title,
		TitleAm: form.TitleAm,
		TitleRu: form.TitleRu,
		Slug:    form.Slug,
		Image:   image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary      Update a category
// @Description  A new image replaces the old one
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path     string true  "category id"
// @Param        image formData file   false "image"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Failure      409 {object} response.Response
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var form dto.UpdateCategoryForm
	if !bindForm(c, &form) {
		return
	}
	image, err := h.uploads.readImage(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appcategory.UpdateCategoryRequest{
		ID:      c.Param("id"),
		Title:   form.Title,
		TitleAm: form.TitleAm,
		TitleRu: form.TitleRu,
		Slug:    form.Slug,
		Image:   image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete godoc
// @Summary      Delete a category
// @Description  Refused while products reference it; its subcategories go with it
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "category id"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "category in use"
// @Failure      404 {object} response.Response
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Category deleted"})
}
