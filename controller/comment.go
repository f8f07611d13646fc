package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// CommentController 定义评论控制器的结构体
type CommentController struct {
	commentService service.CommentService // 服务层接口，通过依赖注入传入
}

// NewCommentController 构造函数，用于创建 CommentController 实例
func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// CreateComment 发表评论
// @Summary      发表评论
// @Description  在指定文章下发表评论。请求中声明的 userId 必须与当前登录用户一致。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "发表评论请求体"
// @Success      200 {object} vo.CommentResponseWrapper "发表成功，返回评论信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或评论内容"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "声明的作者与当前用户不一致"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /comment [post]
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	commentVO, err := ctrl.commentService.CreateComment(c.Request.Context(), callerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, commentVO, "评论发表成功")
}

// ListComments 获取文章评论列表
// @Summary      获取文章评论列表 (公开)
// @Description  获取指定文章下的全部评论，最新的在前，附带点赞列表与作者公开信息。
// @Tags         comments (评论)
// @Produce      json
// @Param        postId path uint64 true "文章ID" format(uint64) minimum(1)
// @Success      200 {object} vo.CommentListResponseWrapper "成功响应"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的文章ID"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /comment/{postId} [get]
func (ctrl *CommentController) ListComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil || postID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的文章ID")
		return
	}

	comments, err := ctrl.commentService.ListCommentsByPost(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, comments, "评论列表获取成功")
}

// ToggleLike 切换评论点赞
// @Summary      切换评论点赞
// @Description  已点赞则取消，未点赞则添加。返回最新的点赞列表与当前用户的点赞状态。
// @Tags         comments (评论)
// @Produce      json
// @Param        commentId path uint64 true "评论ID" format(uint64) minimum(1)
// @Success      200 {object} vo.LikeToggleResponseWrapper "切换成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的评论ID"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /comment/like/{commentId} [put]
func (ctrl *CommentController) ToggleLike(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil || commentID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论ID")
		return
	}

	toggleVO, err := ctrl.commentService.ToggleLike(c.Request.Context(), callerID, commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, toggleVO, "点赞状态切换成功")
}

// EditComment 编辑评论
// @Summary      编辑评论 (作者)
// @Description  编辑评论内容，仅作者本人可执行。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        commentId path uint64 true "评论ID" format(uint64) minimum(1)
// @Param        request body dto.EditCommentRequest true "编辑评论请求体"
// @Success      200 {object} vo.CommentResponseWrapper "编辑成功，返回最新评论信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或评论内容"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非评论作者"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /comment/edit/{commentId} [put]
func (ctrl *CommentController) EditComment(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil || commentID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论ID")
		return
	}

	var req dto.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	commentVO, err := ctrl.commentService.EditComment(c.Request.Context(), callerID, commentID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, commentVO, "评论编辑成功")
}

// DeleteComment 删除评论
// @Summary      删除评论 (作者或管理员)
// @Description  删除指定评论及其全部点赞记录，作者本人或管理员可执行。
// @Tags         comments (评论)
// @Produce      json
// @Param        commentId path uint64 true "评论ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的评论ID"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非评论作者且非管理员"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /comment/delete/{commentId} [delete]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil || commentID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论ID")
		return
	}

	if err := ctrl.commentService.DeleteComment(c.Request.Context(), callerID, c.GetBool(constant.ContextKeyIsAdmin), commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess[any](c, nil, "评论删除成功")
}

// RegisterRoutes 注册 CommentController 的路由
func (ctrl *CommentController) RegisterRoutes(group *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	comment := group.Group("/comment")
	{
		comment.POST("", requireAuth, ctrl.CreateComment)                     // POST /comment
		comment.GET("/:postId", ctrl.ListComments)                            // GET /comment/:postId
		comment.PUT("/like/:commentId", requireAuth, ctrl.ToggleLike)         // PUT /comment/like/:commentId
		comment.PUT("/edit/:commentId", requireAuth, ctrl.EditComment)        // PUT /comment/edit/:commentId
		comment.DELETE("/delete/:commentId", requireAuth, ctrl.DeleteComment) // DELETE /comment/delete/:commentId
	}
}
