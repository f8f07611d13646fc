package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
)

// TokenRevocationRepository 定义了访问令牌吊销名单的操作接口。
// - 目标: 用户登出或被删除后，其尚未过期的令牌必须立即失效。
// - 实现: 以令牌的 jti 为键写入 Redis，TTL 与令牌剩余有效期一致，
//   过期后自动清理，名单不会无限增长。
type TokenRevocationRepository interface {
	// Revoke 将指定 jti 加入吊销名单，ttl 为令牌的剩余有效期。
	// - ttl 不为正数时令牌已自然过期，无需写入。
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked 查询指定 jti 是否已被吊销。
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// tokenRevocationRepo 是 TokenRevocationRepository 接口的 Redis 实现。
type tokenRevocationRepo struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewTokenRevocationRepository 是 tokenRevocationRepo 的构造函数。
func NewTokenRevocationRepository(redisClient *redis.Client, logger *core.ZapLogger) TokenRevocationRepository {
	return &tokenRevocationRepo{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Revoke 将令牌 jti 写入吊销名单。
func (r *tokenRevocationRepo) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	if ttl <= 0 {
		// 令牌已过期，自然失效
		return nil
	}

	key := constant.RevokedTokenPrefix + tokenID
	if err := r.redisClient.Set(ctx, key, 1, ttl).Err(); err != nil {
		r.logger.Error("写入令牌吊销名单失败", zap.String("tokenID", tokenID), zap.Error(err))
		return fmt.Errorf("写入令牌吊销名单失败: %w", err)
	}

	r.logger.Info("令牌已吊销", zap.String("tokenID", tokenID), zap.Duration("ttl", ttl))
	return nil
}

// IsRevoked 查询令牌 jti 是否在吊销名单中。
func (r *tokenRevocationRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	key := constant.RevokedTokenPrefix + tokenID
	count, err := r.redisClient.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("查询令牌吊销名单失败", zap.String("tokenID", tokenID), zap.Error(err))
		return false, fmt.Errorf("查询令牌吊销名单失败: %w", err)
	}
	return count > 0, nil
}
