package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/auth"
	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/service"
)

type authControllerEnv struct {
	router         *gin.Engine
	revocationRepo redisRepo.TokenRevocationRepository
	tokenMaker     auth.TokenMaker
}

func setupAuthController(t *testing.T) *authControllerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	jwtCfg := appConfig.JWTConfig{Secret: "test-secret", ExpireHours: 1}
	tokenMaker := auth.NewTokenMaker(&jwtCfg)
	userRepo := mysql.NewUserRepository(db, logger)
	revocationRepo := redisRepo.NewTokenRevocationRepository(client, logger)
	authSvc := service.NewAuthService(db, userRepo, revocationRepo, tokenMaker, logger)

	ctrl := NewAuthController(authSvc, jwtCfg)
	router := gin.New()
	group := router.Group("/api/v1/blog")
	ctrl.RegisterRoutes(group, middleware.OptionalAuth(tokenMaker))

	return &authControllerEnv{router: router, revocationRepo: revocationRepo, tokenMaker: tokenMaker}
}

func (e *authControllerEnv) postJSON(t *testing.T, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func accessTokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constant.AccessTokenCookie {
			return cookie
		}
	}
	return nil
}

func TestAuthController_SignupAndSignin(t *testing.T) {
	env := setupAuthController(t)

	signup := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	}

	t.Run("注册成功", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/signup", signup)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
		assert.NotContains(t, w.Body.String(), "s3cret-password", "响应不得泄露密码")
	})

	t.Run("重复注册返回409", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/signup", signup)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("缺少字段返回400", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/signup", map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("登录成功并下发HttpOnly Cookie", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/signin", map[string]string{
			"email":    "alice@example.com",
			"password": "s3cret-password",
		})
		require.Equal(t, http.StatusOK, w.Code)

		cookie := accessTokenCookie(t, w)
		require.NotNil(t, cookie, "登录响应必须设置 access_token Cookie")
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		claims, err := env.tokenMaker.VerifyToken(cookie.Value)
		require.NoError(t, err)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("密码错误返回401", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/signin", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthController_Signout(t *testing.T) {
	env := setupAuthController(t)

	env.postJSON(t, "/api/v1/blog/signup", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret-password",
	})
	signin := env.postJSON(t, "/api/v1/blog/signin", map[string]string{
		"email": "alice@example.com", "password": "s3cret-password",
	})
	cookie := accessTokenCookie(t, signin)
	require.NotNil(t, cookie)

	t.Run("登出吊销令牌并清除Cookie", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/users/signout", nil, cookie)
		assert.Equal(t, http.StatusOK, w.Code)

		cleared := accessTokenCookie(t, w)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge, "Cookie 应被立即失效")

		claims, err := env.tokenMaker.VerifyToken(cookie.Value)
		require.NoError(t, err)
		revoked, err := env.revocationRepo.IsRevoked(context.Background(), claims.TokenID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("未登录登出仍返回成功", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/blog/users/signout", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
