package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// AuthController 定义认证控制器的结构体
type AuthController struct {
	authService service.AuthService // 服务层接口，通过依赖注入传入
	jwtConfig   config.JWTConfig
}

// NewAuthController 构造函数，用于创建 AuthController 实例
func NewAuthController(authService service.AuthService, jwtConfig config.JWTConfig) *AuthController {
	return &AuthController{
		authService: authService,
		jwtConfig:   jwtConfig,
	}
}

// setAccessTokenCookie 将访问令牌写入 HttpOnly Cookie。
func (ctrl *AuthController) setAccessTokenCookie(c *gin.Context, token string) {
	expireHours := ctrl.jwtConfig.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constant.AccessTokenCookie, token, expireHours*3600, "/", "", ctrl.jwtConfig.CookieSecure, true)
}

// clearAccessTokenCookie 清除访问令牌 Cookie。
func (ctrl *AuthController) clearAccessTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constant.AccessTokenCookie, "", -1, "/", "", ctrl.jwtConfig.CookieSecure, true)
}

// Signup 用户注册
// @Summary      用户注册
// @Description  使用用户名、邮箱和密码创建新账号。用户名与邮箱全局唯一。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.SignupRequest true "注册请求体"
// @Success      200 {object} vo.UserResponseWrapper "注册成功，返回用户信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      409 {object} vo.BaseResponseWrapper "用户名或邮箱已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	userVO, err := ctrl.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "注册成功")
}

// Signin 用户登录
// @Summary      用户登录
// @Description  使用邮箱和密码登录，成功后通过 HttpOnly Cookie 下发访问令牌。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.SigninRequest true "登录请求体"
// @Success      200 {object} vo.UserResponseWrapper "登录成功，返回用户信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      401 {object} vo.BaseResponseWrapper "邮箱或密码错误"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /signin [post]
func (ctrl *AuthController) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	userVO, token, err := ctrl.authService.Signin(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctrl.setAccessTokenCookie(c, token)
	response.RespondSuccess(c, userVO, "登录成功")
}

// GoogleAuth Google OAuth 登录
// @Summary      Google OAuth 登录
// @Description  使用 Google 账号登录。邮箱已注册则直接登录，未注册则自动创建账号。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.GoogleAuthRequest true "OAuth 登录请求体"
// @Success      200 {object} vo.UserResponseWrapper "登录成功，返回用户信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /google [post]
func (ctrl *AuthController) GoogleAuth(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	userVO, token, err := ctrl.authService.GoogleAuth(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctrl.setAccessTokenCookie(c, token)
	response.RespondSuccess(c, userVO, "登录成功")
}

// Signout 用户登出
// @Summary      用户登出
// @Description  清除会话 Cookie 并吊销当前访问令牌。未携带有效令牌时也会清除 Cookie 并返回成功。
// @Tags         auth (认证)
// @Produce      json
// @Success      200 {object} vo.BaseResponseWrapper "登出成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /users/signout [post]
func (ctrl *AuthController) Signout(c *gin.Context) {
	// 认证中间件已将令牌信息写入上下文时才有吊销动作；
	// 该路由不经过认证中间件，未登录调用者只做 Cookie 清理。
	if tokenID, expiresAt, ok := middleware.CurrentTokenInfo(c); ok {
		if err := ctrl.authService.Signout(c.Request.Context(), tokenID, expiresAt); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	ctrl.clearAccessTokenCookie(c)
	response.RespondSuccess[any](c, nil, "登出成功")
}

// RegisterRoutes 注册 AuthController 的路由
// - optionalAuth 用于登出路由: 有令牌则解析以便吊销，没有也放行。
func (ctrl *AuthController) RegisterRoutes(group *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	group.POST("/signup", ctrl.Signup)
	group.POST("/signin", ctrl.Signin)
	group.POST("/google", ctrl.GoogleAuth)
	group.POST("/users/signout", optionalAuth, ctrl.Signout)
}
