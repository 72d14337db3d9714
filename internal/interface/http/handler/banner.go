package handler

import (
	"github.com/gin-gonic/gin"

	appbanner "github.com/xiebiao/blend/internal/application/banner"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/pkg/response"
)

type BannerHandler struct {
	listUseCase   *appbanner.ListBannersUseCase
	getUseCase    *appbanner.GetBannerUseCase
	createUseCase *appbanner.CreateBannerUseCase
	updateUseCase *appbanner.UpdateBannerUseCase
	deleteUseCase *appbanner.DeleteBannerUseCase
	uploads       UploadLimits
}

func NewBannerHandler(
	listUseCase *appbanner.ListBannersUseCase,
	getUseCase *appbanner.GetBannerUseCase,
	createUseCase *appbanner.CreateBannerUseCase,
	updateUseCase *appbanner.UpdateBannerUseCase,
	deleteUseCase *appbanner.DeleteBannerUseCase,
	uploads UploadLimits,
) *BannerHandler {
	return &BannerHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		uploads:       uploads,
	}
}

// List godoc
// @Summary      List banners
// @Description  Ordered by priority ascending, newest first within a priority
// @Tags         banners
// @Produce      json
// @Param        active query bool false "only active banners"
// @Success      200 {object} response.Response{data=[]appbanner.BannerResponse}
// @Router       /banners [get]
func (h *BannerHandler) List(c *gin.Context) {
	var q dto.BannerListQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.listUseCase.Execute(c.Request.Context(), q.Active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get godoc
// @Summary      Get a banner
// @Tags         banners
// @Produce      json
// @Param        id path string true "banner id"
// @Success      200 {object} response.Response{data=appbanner.BannerResponse}
// @Failure      404 {object} response.Response
// @Router       /banners/{id} [get]
func (h *BannerHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create godoc
// @Summary      Create a banner
// @Tags         banners
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image    formData file   true  "banner image"
// @Param        url      formData string true  "link target"
// @Param        text     formData string false "caption"
// @Param        isActive formData bool   false "active" default(true)
// @Param        priority formData int    false "priority, lower first"
// @Success      201 {object} response.Response{data=appbanner.BannerResponse}
// @Failure      400 {object} response.Response
// @Router       /banners [post]
func (h *BannerHandler) Create(c *gin.Context) {
	var form dto.CreateBannerForm
	if !bindForm(c, &form) {
		return
	}
	image, err := h.uploads.readImage(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appbanner.CreateBannerRequest{
		Image:    image,
		URL:      form.URL,
		Text:     form.Text,
		TextAm:   form.TextAm,
		TextRu:   form.TextRu,
		IsActive: form.IsActive,
		Priority: form.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary      Update a banner
// @Description  A new image replaces the old one
// @Tags         banners
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path     string true  "banner id"
// @Param        image formData file   false "banner image"
// @Success      200 {object} response.Response{data=appbanner.BannerResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /banners/{id} [put]
func (h *BannerHandler) Update(c *gin.Context) {
	var form dto.UpdateBannerForm
	if !bindForm(c, &form) {
		return
	}
	image, err := h.uploads.readImage(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appbanner.UpdateBannerRequest{
		ID:       c.Param("id"),
		Image:    image,
		URL:      form.URL,
		Text:     form.Text,
		TextAm:   form.TextAm,
		TextRu:   form.TextRu,
		IsActive: form.IsActive,
		Priority: form.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete godoc
// @Summary      Delete a banner
// @Tags         banners
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "banner id"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /banners/{id} [delete]
func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Banner deleted"})
}
