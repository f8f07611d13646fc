package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/auth"
	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
)

func setupAuthService(t *testing.T) (AuthService, redisRepo.TokenRevocationRepository) {
	t.Helper()

	db := setupTestDB(t)
	logger := newTestLogger(t)

	mr, err := miniredis.Run()
	require.NoError(t, err, "启动 miniredis 失败")
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	userRepo := mysql.NewUserRepository(db, logger)
	revocationRepo := redisRepo.NewTokenRevocationRepository(client, logger)
	tokenMaker := auth.NewTokenMaker(&appConfig.JWTConfig{Secret: "test-secret", ExpireHours: 1})

	return NewAuthService(db, userRepo, revocationRepo, tokenMaker, logger), revocationRepo
}

func TestAuthService_SignupAndSignin(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	userVO, err := svc.Signup(ctx, &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotZero(t, userVO.ID)
	assert.Equal(t, "alice", userVO.Username)
	assert.False(t, userVO.IsAdmin, "注册用户不应是管理员")
	assert.NotEmpty(t, userVO.Avatar, "注册后应有占位头像")

	signedIn, token, err := svc.Signin(ctx, &dto.SigninRequest{
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, userVO.ID, signedIn.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_SignupConflicts(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	t.Run("用户名已占用", func(t *testing.T) {
		_, err := svc.Signup(ctx, &dto.SignupRequest{
			Username: "alice", Email: "other@example.com", Password: "password2",
		})
		assert.ErrorIs(t, err, myErrors.ErrUserConflict)
	})

	t.Run("邮箱已占用", func(t *testing.T) {
		_, err := svc.Signup(ctx, &dto.SignupRequest{
			Username: "bob", Email: "alice@example.com", Password: "password2",
		})
		assert.ErrorIs(t, err, myErrors.ErrUserConflict)
	})
}

func TestAuthService_SigninFailures(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct-password",
	})
	require.NoError(t, err)

	t.Run("密码错误", func(t *testing.T) {
		_, _, err := svc.Signin(ctx, &dto.SigninRequest{
			Email: "alice@example.com", Password: "wrong-password",
		})
		assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		// 与密码错误返回同一错误，不泄露邮箱是否注册过
		_, _, err := svc.Signin(ctx, &dto.SigninRequest{
			Email: "nobody@example.com", Password: "whatever",
		})
		assert.ErrorIs(t, err, myErrors.ErrInvalidCredentials)
	})
}

func TestAuthService_GoogleAuth(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	t.Run("首次登录自动建号", func(t *testing.T) {
		userVO, token, err := svc.GoogleAuth(ctx, &dto.GoogleAuthRequest{
			Name:           "Carol Danvers",
			Email:          "carol@example.com",
			GooglePhotoURL: "https://photos.example.com/carol.png",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "https://photos.example.com/carol.png", userVO.Avatar)
		// 用户名由昵称派生并追加随机后缀
		assert.Contains(t, userVO.Username, "caroldanvers")
	})

	t.Run("再次登录复用已有账号", func(t *testing.T) {
		first, _, err := svc.GoogleAuth(ctx, &dto.GoogleAuthRequest{
			Name: "Dan", Email: "dan@example.com",
		})
		require.NoError(t, err)

		second, _, err := svc.GoogleAuth(ctx, &dto.GoogleAuthRequest{
			Name: "Dan Again", Email: "dan@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Username, second.Username)
	})
}

func TestAuthService_Signout(t *testing.T) {
	svc, revocationRepo := setupAuthService(t)
	ctx := context.Background()

	tokenID := "test-jti-123"
	require.NoError(t, svc.Signout(ctx, tokenID, time.Now().Add(time.Hour)))

	revoked, err := revocationRepo.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.True(t, revoked, "登出后令牌应在吊销名单中")
}
