package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"github.com/tencentyun/cos-go-sdk-v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

var errUploadFailed = errors.New("upload failed")

// newTestLogger 返回测试用的静默日志器。
func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()

	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err, "初始化测试日志器失败")
	return logger
}

// setupTestDB 创建内存 SQLite 数据库并迁移全部业务表。
// 内存库与连接绑定，必须把连接池收敛到单连接，否则并发下会各自看到空库。
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

// createTestUser 直接向库里插入一个测试用户，密码为 bcrypt("password")。
func createTestUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *entities.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Avatar:   entities.DefaultAvatarURL,
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error, "插入测试用户失败")
	return user
}

// fakeCOSClient 是 COSClientInterface 的内存实现，记录上传与删除的对象键。
type fakeCOSClient struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failNext bool
}

func (f *fakeCOSClient) GetClient() *cos.Client { return nil }

func (f *fakeCOSClient) UploadFile(_ context.Context, objectKey string, _ io.Reader, _ int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return "", errUploadFailed
	}
	f.uploaded = append(f.uploaded, objectKey)
	return "https://cos.example.com/" + objectKey, nil
}

func (f *fakeCOSClient) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}
