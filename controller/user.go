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

// UserController 定义用户控制器的结构体
type UserController struct {
	userService service.UserService // 服务层接口，通过依赖注入传入
	authService service.AuthService
}

// NewUserController 构造函数，用于创建 UserController 实例
func NewUserController(userService service.UserService, authService service.AuthService) *UserController {
	return &UserController{
		userService: userService,
		authService: authService,
	}
}

// GetUser 获取单个用户的公开信息
// @Summary      获取用户公开信息
// @Description  按 ID 获取用户的公开信息，用于展示内容作者。
// @Tags         users (用户)
// @Produce      json
// @Param        id path uint64 true "用户ID" format(uint64) minimum(1)
// @Success      200 {object} vo.UserResponseWrapper "成功响应"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的用户ID"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的用户ID")
		return
	}

	userVO, err := ctrl.userService.GetUser(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "用户信息获取成功")
}

// ListUsers 管理员分页查询用户列表
// @Summary      获取用户列表 (管理员)
// @Description  分页获取用户列表，并返回用户总数与近一个月新增用户数。
// @Tags         users (用户)
// @Produce      json
// @Param        startIndex query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(100) default(9)
// @Param        sort query string false "按创建时间排序方向" Enums(asc,desc) default(desc)
// @Success      200 {object} vo.UserListResponseWrapper "成功响应，包含用户列表与统计"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非管理员"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users [get]
func (ctrl *UserController) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.userService.ListUsers(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "用户列表获取成功")
}

// UpdateProfile 更新个人资料
// @Summary      更新个人资料
// @Description  更新当前用户的用户名与头像。请求体为 multipart/form-data，头像文件字段名为 profilePicture。
// @Tags         users (用户)
// @Accept       multipart/form-data
// @Produce      json
// @Param        username formData string false "新用户名 (最大长度 50)" maxLength(50)
// @Param        profilePicture formData file false "新头像图片 (png/jpg/jpeg/gif/webp, 最大 2MB)"
// @Success      200 {object} vo.UserResponseWrapper "更新成功，返回最新用户信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或图片"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      409 {object} vo.BaseResponseWrapper "用户名已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users/profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	// 头像文件可选
	avatarFile, err := c.FormFile("profilePicture")
	if err != nil {
		avatarFile = nil
	}

	userVO, err := ctrl.userService.UpdateProfile(c.Request.Context(), callerID, callerID, &req, avatarFile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "资料更新成功")
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Description  修改当前用户的密码，需要提供正确的当前密码。
// @Tags         users (用户)
// @Accept       json
// @Produce      json
// @Param        request body dto.ChangePasswordRequest true "修改密码请求体"
// @Success      200 {object} vo.BaseResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或当前密码错误"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users/password [put]
func (ctrl *UserController) ChangePassword(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	if err := ctrl.userService.ChangePassword(c.Request.Context(), callerID, &req); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess[any](c, nil, "密码修改成功")
}

// DeleteSelf 删除自己的账号
// @Summary      删除自己的账号
// @Description  删除当前用户账号及其全部评论、点赞与文章，并吊销当前令牌。
// @Tags         users (用户)
// @Produce      json
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users [delete]
func (ctrl *UserController) DeleteSelf(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	if err := ctrl.userService.DeleteUser(c.Request.Context(), callerID, c.GetBool(constant.ContextKeyIsAdmin), callerID); err != nil {
		respondServiceError(c, err)
		return
	}

	// 账号已不存在，当前令牌立即吊销
	if tokenID, expiresAt, ok := middleware.CurrentTokenInfo(c); ok {
		_ = ctrl.authService.Signout(c.Request.Context(), tokenID, expiresAt)
	}

	response.RespondSuccess[any](c, nil, "账号删除成功")
}

// DeleteUser 管理员删除任意账号
// @Summary      删除指定账号 (管理员)
// @Description  删除指定用户账号及其全部评论、点赞与文章。
// @Tags         users (用户)
// @Produce      json
// @Param        id path uint64 true "用户ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的用户ID"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "非管理员"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的用户ID")
		return
	}

	if err := ctrl.userService.DeleteUser(c.Request.Context(), callerID, c.GetBool(constant.ContextKeyIsAdmin), targetID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess[any](c, nil, "账号删除成功")
}

// RegisterRoutes 注册 UserController 的路由
func (ctrl *UserController) RegisterRoutes(group *gin.RouterGroup, requireAuth gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	users := group.Group("/users")
	{
		users.GET("", requireAuth, requireAdmin, ctrl.ListUsers)          // GET /users
		users.DELETE("", requireAuth, ctrl.DeleteSelf)                    // DELETE /users
		users.PUT("/password", requireAuth, ctrl.ChangePassword)          // PUT /users/password
		users.PUT("/profile", requireAuth, ctrl.UpdateProfile)            // PUT /users/profile
		users.GET("/:id", ctrl.GetUser)                                   // GET /users/:id
		users.DELETE("/:id", requireAuth, requireAdmin, ctrl.DeleteUser)  // DELETE /users/:id
	}
}
