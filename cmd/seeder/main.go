package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	blogService "github.com/Xushengqwer/blog_service/service"
)

func main() {
	// --- 0. 解析命令行参数 ---
	var configFile string
	var numUsers int
	var numPosts int
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numUsers, "users", 10, "要生成的用户数量 (默认: 10, 其中第一个为管理员)")
	flag.IntVar(&numPosts, "posts", 30, "要生成的文章数量 (默认: 30)")
	flag.Parse()

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		fmt.Printf("无法获取配置文件的绝对路径 '%s': %v\n", configFile, err)
		absConfigFile = configFile
	}
	fmt.Printf("准备使用配置文件 '%s' 生成 %d 个用户与 %d 篇文章...\n", absConfigFile, numUsers, numPosts)

	if numUsers <= 0 || numPosts <= 0 {
		fmt.Println("错误: 用户和文章数量必须大于 0")
		os.Exit(1)
	}

	// --- 1. 加载配置 ---
	var cfg appConfig.BlogConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}
	fmt.Println("配置加载成功。")

	// --- 2. 初始化日志 ---
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", loggerErr)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()
	logger.Info("Seeder: ZapLogger 初始化成功")

	// --- 3. 初始化数据库连接 ---
	db, dbErr := dependencies.InitMySQL(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("Seeder: 初始化 MySQL 失败", zap.Error(dbErr))
	}
	logger.Info("Seeder: MySQL 初始化成功")

	// --- 4. 初始化仓库与服务 ---
	// 本地填充不上传图片也不发事件，COS 客户端和 Kafka 生产者传 nil 即可。
	userRepo := mysql.NewUserRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	commentLikeRepo := mysql.NewCommentLikeRepository(db, logger)

	postSvc := blogService.NewPostService(db, postRepo, nil, nil, logger)
	commentSvc := blogService.NewCommentService(db, commentRepo, commentLikeRepo, postRepo, userRepo, logger)

	// --- 5. 执行数据填充 ---
	ctx := context.Background()
	startTime := time.Now()

	if err := Seed(ctx, db, userRepo, postSvc, commentSvc, logger, numUsers, numPosts); err != nil {
		logger.Fatal("Seeder: 数据填充失败", zap.Error(err))
	}

	fmt.Printf("数据填充完成！总耗时: %v\n", time.Since(startTime))
	logger.Info("Seeder main: 所有任务完成，准备退出。")
}
