package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// UserRepository 定义了用户数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type UserRepository interface {
	// CreateUser 持久化一个新的用户记录。
	// - 用户名或邮箱的唯一索引冲突由数据库保证，冲突错误原样返回给服务层判别。
	CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// GetUserByID 根据 ID 检索用户。
	// - 如果未找到用户，返回 commonerrors.ErrRepoNotFound 错误。
	GetUserByID(ctx context.Context, id uint64) (*entities.User, error)

	// GetUserByEmail 根据邮箱检索用户，用于登录验证。
	// - 如果未找到用户，返回 commonerrors.ErrRepoNotFound 错误。
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetUserByUsername 根据用户名检索用户，用于注册前的冲突检查。
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetUsersByIDs 按 ID 列表批量检索用户，用于评论作者的批量投影。
	// - 缺失的 ID 静默跳过，返回的切片只包含存在的用户。
	GetUsersByIDs(ctx context.Context, ids []uint64) ([]*entities.User, error)

	// UpdateUser 更新指定用户的可选字段。
	// - 传入 nil 表示不更新对应字段；总是会自动更新修改时间。
	UpdateUser(ctx context.Context, userID uint64, username *string, avatar *string, avatarObjectKey *string) error

	// UpdatePassword 更新指定用户的密码哈希。
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error

	// DeleteUser 对指定用户执行硬删除。
	// - 账号删除是不可逆操作，级联清理由服务层在同一事务中完成。
	DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error

	// ListUsers 分页查询用户列表，按创建时间排序。
	ListUsers(ctx context.Context, offset, limit int, ascending bool) ([]*entities.User, error)

	// CountUsers 统计用户总数。
	CountUsers(ctx context.Context) (int64, error)

	// CountUsersCreatedSince 统计指定时间之后创建的用户数。
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// userRepository 是 UserRepository 接口针对 MySQL 的具体实现。
type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewUserRepository 是 userRepository 的构造函数。
func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser 实现用户的数据库插入操作。
func (r *userRepository) CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		// 唯一索引冲突等数据库错误直接返回，由服务层决定如何包装
		return err
	}
	return nil
}

// GetUserByID 实现根据 ID 获取用户。
func (r *userRepository) GetUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取用户未找到", zap.Uint64("userID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取用户数据库查询失败", zap.Uint64("userID", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 实现根据邮箱获取用户。
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据邮箱获取用户数据库查询失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 实现根据用户名获取用户。
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据用户名获取用户数据库查询失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs 实现按 ID 列表批量获取用户。
func (r *userRepository) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	var users []*entities.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		r.logger.Error("批量获取用户数据库查询失败", zap.Int("idCount", len(ids)), zap.Error(err))
		return nil, fmt.Errorf("批量查询用户失败: %w", err)
	}
	return users, nil
}

// UpdateUser 实现用户可选字段的更新。
// 参数为指针类型，如果传入 nil，则对应字段不会被更新。
func (r *userRepository) UpdateUser(ctx context.Context, userID uint64, username *string, avatar *string, avatarObjectKey *string) error {
	updateMap := make(map[string]interface{})

	if username != nil {
		updateMap["username"] = *username
	}
	if avatar != nil {
		updateMap["avatar"] = *avatar
	}
	if avatarObjectKey != nil {
		updateMap["avatar_object_key"] = *avatarObjectKey
	}

	if len(updateMap) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新用户 (所有可选参数均为nil)",
			zap.Uint64("userID", userID),
		)
		return nil
	}

	// 总是更新 updated_at 字段
	updateMap["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(updateMap)

	if result.Error != nil {
		r.logger.Error("更新用户数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("userID", userID),
			zap.Any("updateData", updateMap),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新用户但未找到记录", zap.Uint64("userID", userID))
		return commonerrors.ErrRepoNotFound
	}

	return nil
}

// UpdatePassword 实现用户密码哈希的更新。
func (r *userRepository) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("更新用户密码数据库操作失败", zap.Error(result.Error), zap.Uint64("userID", userID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeleteUser 实现用户的硬删除。
// db 参数是执行此操作的数据库句柄 (可以是普通连接，也可以是事务 tx)。
func (r *userRepository) DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error {
	// Unscoped 绕过软删除，账号删除是彻底的物理删除
	result := db.WithContext(ctx).Unscoped().Delete(&entities.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// ListUsers 实现用户列表的偏移分页查询。
func (r *userRepository) ListUsers(ctx context.Context, offset, limit int, ascending bool) ([]*entities.User, error) {
	var users []*entities.User

	order := "created_at DESC"
	if ascending {
		order = "created_at ASC"
	}

	err := r.db.WithContext(ctx).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		r.logger.Error("查询用户列表数据库操作失败",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}
	return users, nil
}

// CountUsers 实现用户总数统计。
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		r.logger.Error("统计用户总数数据库操作失败", zap.Error(err))
		return 0, fmt.Errorf("统计用户总数失败: %w", err)
	}
	return count, nil
}

// CountUsersCreatedSince 实现指定时间之后的新增用户统计。
func (r *userRepository) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计新增用户数数据库操作失败", zap.Time("since", since), zap.Error(err))
		return 0, fmt.Errorf("统计新增用户数失败: %w", err)
	}
	return count, nil
}
