package ctxutil

import (
	stdErrors "errors"
	"mime/multipart"
	"net/http"

	"restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UploadField multipart 表单中图片字段名
const UploadField = "image"

// OpenUpload 读取上传文件；超过 maxBytes 返回 413，缺少文件返回 400
func OpenUpload(c *gin.Context, maxBytes int64) (string, multipart.File, error) {
	if maxBytes > 0 {
		// 预留 multipart 头部的空间
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+64<<10)
	}

	header, err := c.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stdErrors.As(err, &tooLarge) {
			return "", nil, errors.PayloadTooLarge("file too large")
		}
		return "", nil, errors.Wrap(err, errors.CodeBadRequest, "image file is required")
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return "", nil, errors.PayloadTooLarge("file too large")
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CodeBadRequest, "failed to read uploaded file")
	}
	return header.Filename, f, nil
}
