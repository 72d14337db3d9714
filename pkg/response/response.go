package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

// Response is the envelope of every JSON reply.
// Code is the business code (0 on success), Meta is only set on paginated lists.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta describes one page of a paginated list.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// NewMeta computes page count and navigation flags.
func NewMeta(total int64, page, limit int) *Meta {
	pages := 0
	if limit > 0 {
		pages = int(total) / limit
		if int(total)%limit != 0 {
			pages++
		}
	}
	return &Meta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		Pages:       pages,
		HasNext:     page < pages,
		HasPrevious: page > 1,
	}
}

var log = zap.NewNop()

// SetLogger installs the logger used to record internal error causes.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Success replies 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created replies 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithPage replies 200 with a list and its page metadata.
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    list,
		Meta:    NewMeta(total, page, limit),
	})
}

// Error renders err with the HTTP status derived from its business code.
//
//	if err := uc.Execute(ctx, req); err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode renders an ad hoc error code and message.
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// AbortWithError renders err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
