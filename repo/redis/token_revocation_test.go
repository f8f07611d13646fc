package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRevocationRepo(t *testing.T) (TokenRevocationRepository, *miniredis.Miniredis) {
	t.Helper()

	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err, "启动 miniredis 失败")
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return NewTokenRevocationRepository(client, logger), mr
}

func TestTokenRevocationRepo_RevokeAndCheck(t *testing.T) {
	repo, _ := setupRevocationRepo(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "unknown-jti")
	require.NoError(t, err)
	assert.False(t, revoked, "未吊销的令牌不应命中名单")

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTokenRevocationRepo_TTLExpiry(t *testing.T) {
	repo, mr := setupRevocationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, "jti-ttl", time.Minute))

	// 名单条目随令牌剩余有效期一起过期
	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsRevoked(ctx, "jti-ttl")
	require.NoError(t, err)
	assert.False(t, revoked, "TTL 到期后名单条目应自动清理")
}

func TestTokenRevocationRepo_EdgeCases(t *testing.T) {
	repo, mr := setupRevocationRepo(t)
	ctx := context.Background()

	t.Run("空jti直接忽略", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "", time.Hour))
		revoked, err := repo.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("非正TTL不写入", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "jti-expired", -time.Minute))
		assert.Empty(t, mr.Keys(), "已过期令牌无需进入名单")
	})
}
