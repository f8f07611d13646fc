package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostController 定义文章控制器的结构体
type PostController struct {
	postService service.PostService // 服务层接口，通过依赖注入传入
}

// NewPostController 构造函数，用于创建 PostController 实例
func NewPostController(postService service.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// CreatePost 创建文章
// @Summary      创建文章 (管理员)
// @Description  使用标题、正文、分类与可选封面图片创建文章。请求体为 multipart/form-data，封面字段名为 image。slug 由标题派生且全局唯一。
// @Tags         posts (文章)
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "文章标题 (最大长度 255)" maxLength(255)
// @Param        content formData string true "文章正文 (富文本 HTML)"
// @Param        category formData string false "分类，默认 uncategorized" maxLength(100)
// @Param        image formData file false "封面图片 (png/jpg/jpeg/gif/webp, 最大 2MB)"
// @Success      200 {object} vo.PostResponseWrapper "创建成功，返回文章信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或图片"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非管理员"
// @Failure      409 {object} vo.BaseResponseWrapper "slug 已存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /posts/create [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	// 封面图片可选
	imageFile, err := c.FormFile("image")
	if err != nil {
		imageFile = nil
	}

	postVO, err := ctrl.postService.CreatePost(c.Request.Context(), callerID, &req, imageFile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, postVO, "文章创建成功")
}

// ListPosts 查询文章列表
// @Summary      查询文章列表 (公开)
// @Description  按组合条件分页查询文章列表。searchTerm 同时模糊匹配标题与正文；totalPosts 与 lastMonthPosts 为全量统计。
// @Tags         posts (文章)
// @Produce      json
// @Param        startIndex query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(100) default(9)
// @Param        order query string false "按更新时间排序方向" Enums(asc,desc) default(desc)
// @Param        userId query uint64 false "按作者ID过滤" format(uint64)
// @Param        category query string false "按分类过滤"
// @Param        slug query string false "按 slug 精确匹配"
// @Param        postId query uint64 false "按文章ID精确匹配" format(uint64)
// @Param        searchTerm query string false "标题与正文模糊搜索关键词 (最大长度 255)" maxLength(255)
// @Success      200 {object} vo.PostListResponseWrapper "成功响应，包含文章列表与统计"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /posts [get]
func (ctrl *PostController) ListPosts(c *gin.Context) {
	var req dto.ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.postService.ListPosts(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "文章列表获取成功")
}

// UpdatePost 更新文章
// @Summary      更新文章 (作者)
// @Description  更新文章的标题、正文、分类与封面。仅作者本人可执行；slug 保持稳定，不随标题变化。
// @Tags         posts (文章)
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path uint64 true "文章ID" format(uint64) minimum(1)
// @Param        title formData string false "新标题 (最大长度 255)" maxLength(255)
// @Param        content formData string false "新正文"
// @Param        category formData string false "新分类" maxLength(100)
// @Param        image formData file false "新封面图片 (png/jpg/jpeg/gif/webp, 最大 2MB)"
// @Success      200 {object} vo.PostResponseWrapper "更新成功，返回最新文章信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或图片"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非文章作者"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /posts/{id} [put]
func (ctrl *PostController) UpdatePost(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的文章ID")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		imageFile = nil
	}

	postVO, err := ctrl.postService.UpdatePost(c.Request.Context(), callerID, postID, &req, imageFile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, postVO, "文章更新成功")
}

// DeletePost 删除文章
// @Summary      删除文章 (仅作者)
// @Description  软删除指定文章，仅作者本人可执行。
// @Tags         posts (文章)
// @Produce      json
// @Param        id path uint64 true "文章ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的文章ID"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非文章作者"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /posts/{id} [delete]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的文章ID")
		return
	}

	if err := ctrl.postService.DeletePost(c.Request.Context(), callerID, postID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess[any](c, nil, "文章删除成功")
}

// RegisterRoutes 注册 PostController 的路由
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup, requireAuth gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	posts := group.Group("/posts")
	{
		posts.POST("/create", requireAuth, requireAdmin, ctrl.CreatePost) // POST /posts/create
		posts.GET("", ctrl.ListPosts)                                     // GET /posts
		posts.PUT("/:id", requireAuth, ctrl.UpdatePost)                   // PUT /posts/:id
		posts.DELETE("/:id", requireAuth, ctrl.DeletePost)                // DELETE /posts/:id
	}
}
