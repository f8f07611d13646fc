package mysql

import (
	"testing"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// newTestLogger 返回测试用的静默日志器。
func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()

	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err, "初始化测试日志器失败")
	return logger
}

// setupTestDB 创建内存 SQLite 数据库并迁移全部业务表。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "初始化测试数据库失败")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.User{}, &entities.Post{}, &entities.Comment{}, &entities.CommentLike{})
	require.NoError(t, err, "迁移测试表失败")

	return db
}
