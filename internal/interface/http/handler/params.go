package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/blend/internal/interface/http/dto"
	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/response"
)

// bindJSON binds and validates a JSON body, rendering the error itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, dto.BindError(err))
		return false
	}
	return true
}

// bindForm binds a multipart or urlencoded body.
func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		response.Error(c, dto.BindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, dto.BindError(err))
		return false
	}
	return true
}

// orderID parses the numeric :id of order routes.
func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeInvalidParams, "Invalid order id %q", c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s must be a number", field)
	}
	return d, nil
}

func parseOptionalDecimal(field, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDecimal(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
