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

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostRepository 定义了文章数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type PostRepository interface {
	// CreatePost 持久化一个新的文章记录。
	// - slug 的唯一索引冲突由数据库保证，冲突错误原样返回给服务层判别。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// GetPostByID 根据 ID 检索文章。
	// - 如果未找到文章，返回 commonerrors.ErrRepoNotFound 错误。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// ExistsBySlug 检查指定 slug 是否已被占用（含软删除记录，slug 不可复用）。
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// UpdatePost 更新指定文章的可选字段。
	// - 传入 nil 表示不更新对应字段；slug 不在可更新字段之列，创建后保持稳定。
	// - 总是会自动更新文章的修改时间 (updated_at)。
	UpdatePost(ctx context.Context, postID uint64, title *string, content *string, category *string, image *string, imageObjectKey *string) error

	// DeletePost 对指定文章执行软删除。
	// - 软删除保留数据可追溯，物理清理由定时任务完成。
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error

	// DeletePostsByAuthor 软删除指定作者的全部文章，用于账号删除的级联清理。
	DeletePostsByAuthor(ctx context.Context, db *gorm.DB, authorID uint64) error

	// ListPosts 按组合条件分页查询文章列表。
	// - 所有过滤条件均为可选；searchTerm 同时模糊匹配标题与正文。
	// - 返回文章列表与符合条件的记录数。
	ListPosts(ctx context.Context, params *dto.ListPostsRequest) ([]*entities.Post, error)

	// CountPosts 统计文章总数（不受过滤条件影响）。
	CountPosts(ctx context.Context) (int64, error)

	// CountPostsCreatedSince 统计指定时间之后创建的文章数。
	CountPostsCreatedSince(ctx context.Context, since time.Time) (int64, error)

	// FindDeletedBefore 检索在指定时间之前被软删除的文章，供清理任务回收封面图片。
	FindDeletedBefore(ctx context.Context, before time.Time) ([]*entities.Post, error)

	// PurgeDeletedBefore 物理删除在指定时间之前被软删除的文章，返回清理数量。
	PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error)
}

// postRepository 是 PostRepository 接口针对 MySQL 的具体实现。
type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost 实现文章的数据库插入操作。
func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	return nil
}

// GetPostByID 实现根据 ID 获取文章。
func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取文章未找到", zap.Uint64("postID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取文章数据库查询失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// ExistsBySlug 实现 slug 占用检查。
func (r *postRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&entities.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		r.logger.Error("检查 slug 占用数据库查询失败", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// UpdatePost 实现文章可选字段的更新。
// 参数为指针类型，如果传入 nil，则对应字段不会被更新。
func (r *postRepository) UpdatePost(ctx context.Context, postID uint64, title *string, content *string, category *string, image *string, imageObjectKey *string) error {
	updateMap := make(map[string]interface{})

	if title != nil {
		updateMap["title"] = *title
	}
	if content != nil {
		updateMap["content"] = *content
	}
	if category != nil {
		updateMap["category"] = *category
	}
	if image != nil {
		updateMap["image"] = *image
	}
	if imageObjectKey != nil {
		updateMap["image_object_key"] = *imageObjectKey
	}

	if len(updateMap) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新文章 (所有可选参数均为nil)",
			zap.Uint64("postID", postID),
		)
		return nil
	}

	// 总是更新 updated_at 字段
	updateMap["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND deleted_at IS NULL", postID).
		Updates(updateMap)

	if result.Error != nil {
		r.logger.Error("更新文章数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("postID", postID),
			zap.Any("updateData", updateMap),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新文章但未找到记录或记录已被删除", zap.Uint64("postID", postID))
		return commonerrors.ErrRepoNotFound
	}

	return nil
}

// DeletePost 实现文章的软删除。
// db 参数是执行此操作的数据库句柄 (可以是普通连接，也可以是事务 tx)。
func (r *postRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeletePostsByAuthor 实现指定作者全部文章的软删除。
func (r *postRepository) DeletePostsByAuthor(ctx context.Context, db *gorm.DB, authorID uint64) error {
	// 删除 0 条不是错误，作者可能从未发过文章
	if err := db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&entities.Post{}).Error; err != nil {
		r.logger.Error("级联删除作者文章数据库操作失败", zap.Uint64("authorID", authorID), zap.Error(err))
		return err
	}
	return nil
}

// ListPosts 实现按组合条件分页查询文章列表。
func (r *postRepository) ListPosts(ctx context.Context, params *dto.ListPostsRequest) ([]*entities.Post, error) {
	var posts []*entities.Post

	query := r.db.WithContext(ctx).Model(&entities.Post{})

	// 应用筛选条件 (检查指针是否为 nil)
	if params.UserID != nil {
		query = query.Where("author_id = ?", *params.UserID)
	}
	if params.Category != nil && *params.Category != "" {
		query = query.Where("category = ?", *params.Category)
	}
	if params.Slug != nil && *params.Slug != "" {
		query = query.Where("slug = ?", *params.Slug)
	}
	if params.PostID != nil {
		query = query.Where("id = ?", *params.PostID)
	}
	if params.SearchTerm != nil && *params.SearchTerm != "" {
		// 标题与正文的大小写不敏感模糊匹配
		pattern := "%" + *params.SearchTerm + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	// 按最近活跃排序，新更新的文章靠前
	order := "updated_at DESC"
	if params.SortAscending() {
		order = "updated_at ASC"
	}

	err := query.
		Order(order).
		Offset(params.GetOffset()).
		Limit(params.GetLimit()).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("查询文章列表数据库操作失败",
			zap.Error(err),
			zap.Any("queryParams", params),
		)
		return nil, fmt.Errorf("查询文章列表失败: %w", err)
	}
	return posts, nil
}

// CountPosts 实现文章总数统计。
func (r *postRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Post{}).Count(&count).Error; err != nil {
		r.logger.Error("统计文章总数数据库操作失败", zap.Error(err))
		return 0, fmt.Errorf("统计文章总数失败: %w", err)
	}
	return count, nil
}

// CountPostsCreatedSince 实现指定时间之后的新增文章统计。
func (r *postRepository) CountPostsCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计新增文章数数据库操作失败", zap.Time("since", since), zap.Error(err))
		return 0, fmt.Errorf("统计新增文章数失败: %w", err)
	}
	return count, nil
}

// FindDeletedBefore 实现检索指定时间之前被软删除的文章。
func (r *postRepository) FindDeletedBefore(ctx context.Context, before time.Time) ([]*entities.Post, error) {
	var posts []*entities.Post
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("检索待清理文章数据库操作失败", zap.Time("before", before), zap.Error(err))
		return nil, fmt.Errorf("检索待清理文章失败: %w", err)
	}
	return posts, nil
}

// PurgeDeletedBefore 实现软删除文章的物理清理。
func (r *postRepository) PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&entities.Post{})
	if result.Error != nil {
		r.logger.Error("物理清理文章数据库操作失败", zap.Time("before", before), zap.Error(result.Error))
		return 0, fmt.Errorf("物理清理文章失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
