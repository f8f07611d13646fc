package service

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func newFileHeader(filename string, size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   header,
	}
}

func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr bool
	}{
		{"合法PNG", newFileHeader("avatar.png", 1024, "image/png"), false},
		{"合法JPEG大写扩展名", newFileHeader("COVER.JPG", 1024, "image/jpeg"), false},
		{"无Content-Type时按扩展名放行", newFileHeader("pic.webp", 1024, ""), false},
		{"文件为nil", nil, true},
		{"空文件", newFileHeader("avatar.png", 0, "image/png"), true},
		{"超过大小上限", newFileHeader("avatar.png", constant.MaxImageUploadBytes + 1, "image/png"), true},
		{"不支持的扩展名", newFileHeader("script.sh", 1024, "image/png"), true},
		{"非图片Content-Type", newFileHeader("fake.png", 1024, "text/html"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateImageUpload(tt.file)
			if tt.wantErr {
				assert.ErrorIs(t, err, myErrors.ErrInvalidImage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/png", imageContentType(newFileHeader("a.png", 1, "image/png")))
	assert.Equal(t, "application/octet-stream", imageContentType(newFileHeader("a.png", 1, "")))
}
