package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// 导入项目包
	"github.com/Xushengqwer/blog_service/auth"
	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/router"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/tasks"

	// 导入公共模块
	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"

	// 导入 OTel HTTP Client Instrumentation
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// @title           Blog Service API
// @version         1.0
// @description     博客服务，提供账号注册登录、文章发布、评论与点赞、用户管理等功能。
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082
// @BasePath  /api/v1/blog

// @schemes http https
func main() {
	// --- 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg appConfig.BlogConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 打印最终生效的配置以供调试 (JWT 密钥等敏感字段不在 JSON 序列化范围内)
	configBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatalf("无法序列化配置以进行打印: %v", err)
	}
	log.Printf("配置加载成功！最终生效的配置如下:\n%s\n", string(configBytes))

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		logger.Info("正在同步日志...")
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 初始化 TracerProvider
	var tracerShutdown func(context.Context) error
	if cfg.TracerConfig.Enabled {
		var err error
		tracerShutdown, err = sharedTracing.InitTracerProvider(
			constant.ServiceName,
			constant.ServiceVersion,
			cfg.TracerConfig,
		)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("正在关闭 TracerProvider...")
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			} else {
				logger.Info("TracerProvider 已成功关闭")
			}
		}()
		logger.Info("分布式追踪已初始化")
		// 当前服务不主动发起需要追踪的 HTTP 调用，仅初始化 Transport
		_ = otelhttp.NewTransport(http.DefaultTransport)
	} else {
		logger.Info("分布式追踪已禁用")
		tracerShutdown = func(ctx context.Context) error { return nil }
	}

	// --- 4. 初始化核心依赖 ---
	// 4.1 数据库 (MySQL)
	db, dbErr := dependencies.InitMySQL(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(dbErr))
	}
	logger.Info("MySQL 数据库连接成功")

	// 4.2 Redis
	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(redisErr))
	}
	logger.Info("Redis 连接成功")

	// 4.3 COS 客户端
	cos, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
	if cosErr != nil {
		logger.Fatal("初始化 COS 客户端失败", zap.Error(cosErr))
	}
	logger.Info("COS 客户端初始化成功")

	// 4.4 Kafka 生产者
	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，Kafka 生产者将为 nil")
	}

	// 4.5 访问令牌签发器
	tokenMaker := auth.NewTokenMaker(&cfg.JWTConfig)

	// --- 5. 初始化数据仓库层 (Repositories) ---
	userRepo := mysql.NewUserRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	commentLikeRepo := mysql.NewCommentLikeRepository(db, logger)
	logger.Debug("MySQL Repositories 初始化完成")

	revocationRepo := redisrepo.NewTokenRevocationRepository(rdb, logger)
	logger.Debug("Redis Repositories 初始化完成")

	// --- 6. 初始化服务层 (Services) ---
	authService := service.NewAuthService(db, userRepo, revocationRepo, tokenMaker, logger)
	userService := service.NewUserService(db, userRepo, postRepo, commentRepo, commentLikeRepo, cos, logger)
	postService := service.NewPostService(db, postRepo, cos, kafkaProducer, logger)
	commentService := service.NewCommentService(db, commentRepo, commentLikeRepo, postRepo, userRepo, logger)
	logger.Debug("Services 初始化完成")

	// --- 7. 初始化控制器层 (Controllers) ---
	authController := controller.NewAuthController(authService, cfg.JWTConfig)
	userController := controller.NewUserController(userService, authService)
	postController := controller.NewPostController(postService)
	commentController := controller.NewCommentController(commentService)
	logger.Debug("Controllers 初始化完成")

	// --- 8. 初始化定时任务 ---
	purgeTask := tasks.NewPurgeDeletedTask(postRepo, commentRepo, cos, cfg.PurgeConfig.RetentionDays, logger)
	logger.Info("后台定时任务已初始化并启动")

	// --- 9. 设置 Gin 路由器 ---
	ginRouter := router.SetupRouter(logger, &cfg, tokenMaker, revocationRepo,
		authController, userController, postController, commentController)
	logger.Info("Gin 路由器已设置")

	// --- 10. 启动 HTTP 服务器 ---
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
		logger.Info("HTTP 服务器已停止监听")
	}()

	// --- 11. 实现优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancelFunc := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancelFunc()

	// a. 停止 HTTP 服务器 (允许处理完当前请求)
	logger.Info("正在关闭 HTTP 服务器...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	// b. 停止定时任务调度器 (等待任务结束)
	logger.Info("正在停止定时任务...")
	purgeStopCtx := purgeTask.Stop()
	select {
	case <-purgeStopCtx.Done():
		logger.Info("软删除数据清理任务已停止")
	case <-shutdownCtx.Done():
		logger.Error("等待定时任务停止超时", zap.Error(shutdownCtx.Err()))
	}

	// c. 关闭 Kafka 生产者
	if kafkaProducer != nil {
		logger.Info("正在关闭 Kafka 生产者...")
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
		}
	}

	// d. 关闭 Redis 连接
	if err := rdb.Close(); err != nil {
		logger.Error("关闭 Redis 连接失败", zap.Error(err))
	}

	logger.Info("服务已成功关闭")
}
