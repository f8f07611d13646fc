package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentLikeRepository 定义了评论点赞关系在 MySQL 中的持久化操作接口。
// - 点赞以 (comment_id, user_id) 联合主键的关联表存储，
//   切换操作在单个事务中完成，并发切换不会丢失或重复点赞。
type CommentLikeRepository interface {
	// ToggleLike 切换指定用户对指定评论的点赞状态。
	// - 已点赞则取消，未点赞则添加。
	// - 返回切换后的状态: true 表示当前为已点赞。
	ToggleLike(ctx context.Context, commentID, userID uint64) (bool, error)

	// ListLikerIDs 检索指定评论的全部点赞用户 ID，按点赞时间升序。
	ListLikerIDs(ctx context.Context, commentID uint64) ([]uint64, error)

	// ListLikerIDsByComments 按评论 ID 列表批量检索点赞关系，
	// 返回 commentID -> likerIDs 的映射，用于评论列表的批量组装。
	ListLikerIDsByComments(ctx context.Context, commentIDs []uint64) (map[uint64][]uint64, error)

	// DeleteByComment 删除指定评论的全部点赞记录，用于评论删除的级联清理。
	DeleteByComment(ctx context.Context, db *gorm.DB, commentID uint64) error

	// DeleteByUser 删除指定用户发出的全部点赞记录，用于账号删除的级联清理。
	DeleteByUser(ctx context.Context, db *gorm.DB, userID uint64) error
}

// commentLikeRepository 是 CommentLikeRepository 接口针对 MySQL 的具体实现。
type commentLikeRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentLikeRepository 是 commentLikeRepository 的构造函数。
func NewCommentLikeRepository(db *gorm.DB, logger *core.ZapLogger) CommentLikeRepository {
	return &commentLikeRepository{
		db:     db,
		logger: logger,
	}
}

// ToggleLike 实现点赞状态的原子切换。
// - 在事务中先尝试删除，删到了说明原本已点赞，切换为取消；
//   没删到则插入新记录，联合主键保证并发下不会出现重复点赞。
func (r *commentLikeRepository) ToggleLike(ctx context.Context, commentID, userID uint64) (bool, error) {
	var liked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&entities.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			// 原本已点赞，本次切换为取消
			liked = false
			return nil
		}

		like := &entities.CommentLike{
			CommentID: commentID,
			UserID:    userID,
		}
		if err := tx.Create(like).Error; err != nil {
			// 并发下另一个请求可能已抢先插入，联合主键冲突视为已点赞
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		r.logger.Error("切换评论点赞状态数据库操作失败",
			zap.Error(err),
			zap.Uint64("commentID", commentID),
			zap.Uint64("userID", userID),
		)
		return false, fmt.Errorf("切换点赞状态失败: %w", err)
	}

	return liked, nil
}

// ListLikerIDs 实现指定评论点赞用户 ID 列表的查询。
func (r *commentLikeRepository) ListLikerIDs(ctx context.Context, commentID uint64) ([]uint64, error) {
	var likerIDs []uint64
	err := r.db.WithContext(ctx).
		Model(&entities.CommentLike{}).
		Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Pluck("user_id", &likerIDs).Error
	if err != nil {
		r.logger.Error("查询评论点赞列表数据库操作失败", zap.Uint64("commentID", commentID), zap.Error(err))
		return nil, fmt.Errorf("查询评论点赞列表失败: %w", err)
	}
	return likerIDs, nil
}

// ListLikerIDsByComments 实现点赞关系的批量查询。
func (r *commentLikeRepository) ListLikerIDsByComments(ctx context.Context, commentIDs []uint64) (map[uint64][]uint64, error) {
	result := make(map[uint64][]uint64, len(commentIDs))
	if len(commentIDs) == 0 {
		return result, nil
	}

	var likes []*entities.CommentLike
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		r.logger.Error("批量查询评论点赞关系数据库操作失败", zap.Int("commentCount", len(commentIDs)), zap.Error(err))
		return nil, fmt.Errorf("批量查询评论点赞关系失败: %w", err)
	}

	for _, like := range likes {
		result[like.CommentID] = append(result[like.CommentID], like.UserID)
	}
	return result, nil
}

// DeleteByComment 实现指定评论点赞记录的级联删除。
func (r *commentLikeRepository) DeleteByComment(ctx context.Context, db *gorm.DB, commentID uint64) error {
	if err := db.WithContext(ctx).Where("comment_id = ?", commentID).Delete(&entities.CommentLike{}).Error; err != nil {
		r.logger.Error("级联删除评论点赞记录数据库操作失败", zap.Uint64("commentID", commentID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteByUser 实现指定用户点赞记录的级联删除。
func (r *commentLikeRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uint64) error {
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.CommentLike{}).Error; err != nil {
		r.logger.Error("级联删除用户点赞记录数据库操作失败", zap.Uint64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}
