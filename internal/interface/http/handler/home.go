package handler

import (
	"github.com/gin-gonic/gin"

	apphome "github.com/xiebiao/blend/internal/application/home"
	"github.com/xiebiao/blend/pkg/response"
)

type HomeHandler struct {
	homeUseCase *apphome.HomeUseCase
}

func NewHomeHandler(homeUseCase *apphome.HomeUseCase) *HomeHandler {
	return &HomeHandler{homeUseCase: homeUseCase}
}

// Slider godoc
// @Summary      Featured products
// @Tags         home
// @Produce      json
// @Success      200 {object} response.Response{data=[]appproduct.ProductResponse}
// @Router       /home/slider [get]
func (h *HomeHandler) Slider(c *gin.Context) {
	h.section(c, apphome.SectionSlider)
}

// BestSeller godoc
// @Summary      Best sellers
// @Tags         home
// @Produce      json
// @Success      200 {object} response.Response{data=[]appproduct.ProductResponse}
// @Router       /home/best-seller [get]
func (h *HomeHandler) BestSeller(c *gin.Context) {
	h.section(c, apphome.SectionBestSeller)
}

// BestSelect godoc
// @Summary      Best select
// @Tags         home
// @Produce      json
// @Success      200 {object} response.Response{data=[]appproduct.ProductResponse}
// @Router       /home/best-select [get]
func (h *HomeHandler) BestSelect(c *gin.Context) {
	h.section(c, apphome.SectionBestSelect)
}

// Categories godoc
// @Summary      All categories
// @Tags         home
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcategory.CategoryResponse}
// @Router       /home/categories [get]
func (h *HomeHandler) Categories(c *gin.Context) {
	result, err := h.homeUseCase.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *HomeHandler) section(c *gin.Context, s apphome.Section) {
	result, err := h.homeUseCase.Products(c.Request.Context(), s)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
