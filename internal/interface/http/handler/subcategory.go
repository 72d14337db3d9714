package handler

import (
	"github.com/gin-gonic/gin"

	appsubcategory "github.com/xiebiao/blend/internal/application/subcategory"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/pkg/response"
)

type SubcategoryHandler struct {
	listUseCase           *appsubcategory.ListSubcategoriesUseCase
	listByCategoryUseCase *appsubcategory.ListByCategoryUseCase
	getUseCase            *appsubcategory.GetSubcategoryUseCase
	createUseCase         *appsubcategory.CreateSubcategoryUseCase
	updateUseCase         *appsubcategory.UpdateSubcategoryUseCase
	deleteUseCase         *appsubcategory.DeleteSubcategoryUseCase
}

func NewSubcategoryHandler(
	listUseCase *appsubcategory.ListSubcategoriesUseCase,
	listByCategoryUseCase *appsubcategory.ListByCategoryUseCase,
	getUseCase *appsubcategory.GetSubcategoryUseCase,
	createUseCase *appsubcategory.CreateSubcategoryUseCase,
	updateUseCase *appsubcategory.UpdateSubcategoryUseCase,
	deleteUseCase *appsubcategory.DeleteSubcategoryUseCase,
) *SubcategoryHandler {
	return &SubcategoryHandler{
		listUseCase:           listUseCase,
		listByCategoryUseCase: listByCategoryUseCase,
		getUseCase:            getUseCase,
		createUseCase:         createUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
	}
}

// List godoc
// @Summary      List subcategories
// @Tags         subcategories
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appsubcategory.SubcategoryResponse}
// @Router       /subcategories [get]
func (h *SubcategoryHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListByCategory godoc
// @Summary      List the subcategories of a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "category id"
// @Success      200 {object} response.Response{data=[]appsubcategory.SubcategoryResponse}
// @Failure      404 {object} response.Response
// @Router       /categories/{id}/subcategories [get]
func (h *SubcategoryHandler) ListByCategory(c *gin.Context) {
	result, err := h.listByCategoryUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get godoc
// @Summary      Get a subcategory
// @Tags         subcategories
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "subcategory id"
// @Success      200 {object} response.Response{data=appsubcategory.SubcategoryResponse}
// @Failure      404 {object} response.Response
// @Router       /subcategories/{id} [get]
func (h *SubcategoryHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create godoc
// @Summary      Create a subcategory
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSubcategoryRequest true "subcategory"
// @Success      201 {object} response.Response{data=appsubcategory.SubcategoryResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response "category not found"
// @Router       /subcategories [post]
func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req dto.CreateSubcategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appsubcategory.CreateSubcategoryRequest{
		Title:      req.Title,
		TitleAm:    req.TitleAm,
		TitleRu:    req.TitleRu,
		CategoryID: req.CategoryID,
		Image:      req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary      Update a subcategory
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                       true "subcategory id"
// @Param        request body dto.UpdateSubcategoryRequest true "fields to change"
// @Success      200 {object} response.Response{data=appsubcategory.SubcategoryResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /subcategories/{id} [put]
func (h *SubcategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateSubcategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appsubcategory.UpdateSubcategoryRequest{
		ID:         c.Param("id"),
		Title:      req.Title,
		TitleAm:    req.TitleAm,
		TitleRu:    req.TitleRu,
		CategoryID: req.CategoryID,
		Image:      req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete godoc
// @Summary      Delete a subcategory
// @Tags         subcategories
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "subcategory id"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /subcategories/{id} [delete]
func (h *SubcategoryHandler) Delete(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Subcategory deleted"})
}
