// dependencies/redis.go
package dependencies

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
)

// InitRedis 初始化 Redis 客户端并验证连通性
func InitRedis(cfg *appConfig.RedisConfig, logger *core.ZapLogger) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis 地址 (redis.address) 未配置")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("无法连接到 Redis", zap.String("address", cfg.Address), zap.Error(err))
		return nil, fmt.Errorf("无法连接到 Redis: %w", err)
	}

	logger.Info("成功连接到 Redis", zap.String("address", cfg.Address), zap.Int("db", cfg.DB))
	return client, nil
}
