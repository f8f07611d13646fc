package controller

import (
	"errors"
	"net/http"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// respondServiceError 将服务层错误映射为统一的 HTTP 响应。
// - 已知的业务错误按类别映射状态码，消息使用错误本身的措辞；
// - 未知错误一律返回 500 与通用消息，内部细节不出现在响应里。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, myErrors.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, err.Error())
	case errors.Is(err, myErrors.ErrWrongPassword),
		errors.Is(err, myErrors.ErrEmptySlug),
		errors.Is(err, myErrors.ErrCommentEmpty),
		errors.Is(err, myErrors.ErrCommentTooLong),
		errors.Is(err, myErrors.ErrInvalidImage):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, myErrors.ErrUserConflict),
		errors.Is(err, myErrors.ErrSlugConflict):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, myErrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, err.Error())
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "资源不存在")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "服务器内部错误")
	}
}
