package service

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// allowedImageExtensions 是允许上传的图片扩展名集合。
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// validateImageUpload 校验上传文件是否为允许的图片类型且未超过大小限制。
// - 校验失败统一返回 myErrors.ErrInvalidImage。
func validateImageUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return myErrors.ErrInvalidImage
	}
	if fileHeader.Size <= 0 || fileHeader.Size > constant.MaxImageUploadBytes {
		return myErrors.ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return myErrors.ErrInvalidImage
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return myErrors.ErrInvalidImage
	}
	return nil
}

// imageContentType 返回上传文件的内容类型，缺省时退化为通用二进制流。
func imageContentType(fileHeader *multipart.FileHeader) string {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType
}
