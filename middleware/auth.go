package middleware

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/auth"
	"github.com/Xushengqwer/blog_service/constant"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
)

// RequireAuth 返回一个 Gin 中间件，仅放行携带有效访问令牌的请求。
// - 令牌从 access_token Cookie 读取，校验签名与有效期后检查吊销名单。
// - 校验通过后将用户身份写入请求上下文，供后续处理器使用。
func RequireAuth(
	tokenMaker auth.TokenMaker,
	revocationRepo redisRepo.TokenRevocationRepository,
	logger *core.ZapLogger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 Cookie 中读取访问令牌
		tokenStr, err := c.Cookie(constant.AccessTokenCookie)
		if err != nil || tokenStr == "" {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "用户未登录")
			c.Abort()
			return
		}

		// 2. 校验签名与有效期
		claims, err := tokenMaker.VerifyToken(tokenStr)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无效的访问令牌")
			c.Abort()
			return
		}

		// 3. 检查吊销名单，登出或已删除用户的令牌在此被拦截
		revoked, err := revocationRepo.IsRevoked(c.Request.Context(), claims.TokenID)
		if err != nil {
			// Redis 故障时拒绝请求而不是放行，吊销语义优先于可用性
			logger.Error("查询令牌吊销状态失败", zap.Error(err))
			response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "服务内部错误")
			c.Abort()
			return
		}
		if revoked {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "访问令牌已失效")
			c.Abort()
			return
		}

		// 4. 将用户身份写入上下文
		c.Set(constant.ContextKeyUserID, claims.UserID)
		c.Set(constant.ContextKeyIsAdmin, claims.IsAdmin)
		c.Set(constant.ContextKeyTokenID, claims.TokenID)
		c.Set(constant.ContextKeyTokenExpiry, claims.ExpiresAt)

		c.Next()
	}
}

// OptionalAuth 返回一个 Gin 中间件，尝试解析访问令牌但不强制要求。
// - 令牌缺失或无效时直接放行，不写入任何上下文键；
//   用于登出这类"有令牌则处理，没有也成功"的路由。
func OptionalAuth(tokenMaker auth.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(constant.AccessTokenCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokenMaker.VerifyToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set(constant.ContextKeyUserID, claims.UserID)
		c.Set(constant.ContextKeyIsAdmin, claims.IsAdmin)
		c.Set(constant.ContextKeyTokenID, claims.TokenID)
		c.Set(constant.ContextKeyTokenExpiry, claims.ExpiresAt)
		c.Next()
	}
}

// RequireAdmin 返回一个 Gin 中间件，仅放行管理员身份的请求。
// - 必须挂载在 RequireAuth 之后。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin := c.GetBool(constant.ContextKeyIsAdmin)
		if !isAdmin {
			response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, "无权执行此操作")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID 从请求上下文中取出当前登录用户的 ID。
func CurrentUserID(c *gin.Context) (uint64, bool) {
	val, exists := c.Get(constant.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(uint64)
	return userID, ok
}

// CurrentTokenInfo 从请求上下文中取出当前令牌的 jti 与过期时间。
func CurrentTokenInfo(c *gin.Context) (tokenID string, expiresAt time.Time, ok bool) {
	idVal, exists := c.Get(constant.ContextKeyTokenID)
	if !exists {
		return "", time.Time{}, false
	}
	tokenID, ok = idVal.(string)
	if !ok {
		return "", time.Time{}, false
	}
	if expVal, exists := c.Get(constant.ContextKeyTokenExpiry); exists {
		expiresAt, _ = expVal.(time.Time)
	}
	return tokenID, expiresAt, true
}
