package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/blend/internal/domain/media"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

const defaultMaxUploadSize = 5 << 20

// UploadLimits bounds the images accepted by one request.
type UploadLimits struct {
	MaxFileSize int64 // bytes per file
	MaxFiles    int   // per request, 0 means unlimited
}

func (l UploadLimits) maxFileSize() int64 {
	if l.MaxFileSize <= 0 {
		return defaultMaxUploadSize
	}
	return l.MaxFileSize
}

// formFiles returns the files posted under field, accepting the "field[]"
// spelling too. A request that is not multipart has none.
func formFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := append([]*multipart.FileHeader{}, form.File[field]...)
	return append(files, form.File[field+"[]"]...)
}

// readImages loads every file under field after checking count, size and
// content type.
func (l UploadLimits) readImages(c *gin.Context, field string) ([]media.File, error) {
	headers := formFiles(c, field)
	if l.MaxFiles > 0 && len(headers) > l.MaxFiles {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "Too many files, at most %d allowed", l.MaxFiles)
	}

	files := make([]media.File, 0, len(headers))
	for _, h := range headers {
		f, err := l.read(h)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// readImage loads the single optional file under field; nil when absent.
func (l UploadLimits) readImage(c *gin.Context, field string) (*media.File, error) {
	headers := formFiles(c, field)
	if len(headers) == 0 {
		return nil, nil
	}
	f, err := l.read(headers[0])
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (l UploadLimits) read(h *multipart.FileHeader) (media.File, error) {
	limit := l.maxFileSize()
	if h.Size > limit {
		return media.File{}, apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"File %q exceeds the maximum size of %dMB", h.Filename, limit>>20)
	}

	src, err := h.Open()
	if err != nil {
		return media.File{}, apperrors.Newf(apperrors.ErrCodeBindError, "Cannot read file %q", h.Filename)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return media.File{}, apperrors.Newf(apperrors.ErrCodeBindError, "Cannot read file %q", h.Filename)
	}
	if int64(len(data)) > limit {
		return media.File{}, apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"File %q exceeds the maximum size of %dMB", h.Filename, limit>>20)
	}

	contentType := h.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return media.File{}, apperrors.New(apperrors.ErrCodeInvalidParams, "Only image files are allowed")
	}

	return media.File{Filename: h.Filename, ContentType: contentType, Data: data}, nil
}
