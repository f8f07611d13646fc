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

// CommentRepository 定义了评论数据在 MySQL 中的持久化操作接口。
type CommentRepository interface {
	// CreateComment 持久化一个新的评论记录。
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// GetCommentByID 根据 ID 检索评论。
	// - 如果未找到评论，返回 commonerrors.ErrRepoNotFound 错误。
	GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error)

	// ListCommentsByPostID 检索指定文章下的全部评论，最新的在前。
	ListCommentsByPostID(ctx context.Context, postID uint64) ([]*entities.Comment, error)

	// UpdateContent 更新指定评论的内容。
	UpdateContent(ctx context.Context, commentID uint64, content string) error

	// DeleteComment 对指定评论执行软删除。
	DeleteComment(ctx context.Context, db *gorm.DB, id uint64) error

	// DeleteCommentsByAuthor 软删除指定作者的全部评论，用于账号删除的级联清理。
	DeleteCommentsByAuthor(ctx context.Context, db *gorm.DB, authorID uint64) error

	// PurgeDeletedBefore 物理删除在指定时间之前被软删除的评论，返回清理数量。
	PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error)
}

// commentRepository 是 CommentRepository 接口针对 MySQL 的具体实现。
type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentRepository 是 commentRepository 的构造函数。
func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateComment 实现评论的数据库插入操作。
func (r *commentRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	if err := db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// GetCommentByID 实现根据 ID 获取评论。
func (r *commentRepository) GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error) {
	var comment entities.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取评论未找到", zap.Uint64("commentID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取评论数据库查询失败", zap.Uint64("commentID", id), zap.Error(err))
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByPostID 实现指定文章下评论列表的查询，按创建时间降序。
func (r *commentRepository) ListCommentsByPostID(ctx context.Context, postID uint64) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("查询文章评论列表数据库操作失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, fmt.Errorf("查询文章评论列表失败: %w", err)
	}
	return comments, nil
}

// UpdateContent 实现评论内容的更新。
func (r *commentRepository) UpdateContent(ctx context.Context, commentID uint64, content string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ? AND deleted_at IS NULL", commentID).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("更新评论数据库操作失败", zap.Error(result.Error), zap.Uint64("commentID", commentID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新评论但未找到记录或记录已被删除", zap.Uint64("commentID", commentID))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeleteComment 实现评论的软删除。
// db 参数是执行此操作的数据库句柄 (可以是普通连接，也可以是事务 tx)。
func (r *commentRepository) DeleteComment(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeleteCommentsByAuthor 实现指定作者全部评论的软删除。
func (r *commentRepository) DeleteCommentsByAuthor(ctx context.Context, db *gorm.DB, authorID uint64) error {
	if err := db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&entities.Comment{}).Error; err != nil {
		r.logger.Error("级联删除作者评论数据库操作失败", zap.Uint64("authorID", authorID), zap.Error(err))
		return err
	}
	return nil
}

// PurgeDeletedBefore 实现软删除评论的物理清理。
func (r *commentRepository) PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&entities.Comment{})
	if result.Error != nil {
		r.logger.Error("物理清理评论数据库操作失败", zap.Time("before", before), zap.Error(result.Error))
		return 0, fmt.Errorf("物理清理评论失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
