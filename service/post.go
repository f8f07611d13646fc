package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// DefaultPostCategory 未指定分类时的默认值。
const DefaultPostCategory = "uncategorized"

// PostService 定义了处理文章核心业务逻辑的接口。
type PostService interface {
	// CreatePost 处理发布新文章的业务流程。
	// - slug 由标题派生，占用时返回 myErrors.ErrSlugConflict。
	// - 封面图片先上传 COS 再写数据库，数据库失败时清理刚上传的对象。
	// - 成功创建后异步发送 Kafka 事件通知下游服务。
	CreatePost(ctx context.Context, authorID uint64, req *dto.CreatePostRequest, imageFile *multipart.FileHeader) (*vo.PostVO, error)

	// GetPostByID 获取单篇文章。
	GetPostByID(ctx context.Context, postID uint64) (*vo.PostVO, error)

	// ListPosts 按组合条件分页查询文章列表。
	// - 返回的 totalPosts 与 lastMonthPosts 为全量统计，不随过滤条件变化。
	ListPosts(ctx context.Context, req *dto.ListPostsRequest) (*vo.PostListVO, error)

	// UpdatePost 更新文章，仅作者本人可执行；slug 保持稳定。
	UpdatePost(ctx context.Context, callerID uint64, postID uint64, req *dto.UpdatePostRequest, imageFile *multipart.FileHeader) (*vo.PostVO, error)

	// DeletePost 软删除文章，仅作者本人可执行。
	DeletePost(ctx context.Context, callerID uint64, postID uint64) error
}

// postService 是 PostService 接口的具体实现。
type postService struct {
	postRepo  mysql.PostRepository
	cosClient dependencies.COSClientInterface
	db        *gorm.DB
	kafkaSvc  *producer.KafkaProducer
	logger    *core.ZapLogger
}

// NewPostService 是 postService 的构造函数，通过依赖注入初始化服务实例。
func NewPostService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	cosClient dependencies.COSClientInterface,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) PostService {
	return &postService{
		postRepo:  postRepo,
		cosClient: cosClient,
		db:        db,
		kafkaSvc:  kafkaSvc,
		logger:    logger,
	}
}

// generatePostImageObjectKey 为文章封面创建一个唯一的 COS 对象键。
func (s *postService) generatePostImageObjectKey(originalFilename string, authorID uint64) string {
	datePrefix := time.Now().Format("20060102")
	extension := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s/%d_%s%s",
		constant.COSObjectKeyPrefixPostImages,
		datePrefix,
		authorID,
		uuid.NewString(),
		extension,
	)
}

// uploadPostImage 校验并上传文章封面，返回访问 URL 与对象键。
func (s *postService) uploadPostImage(ctx context.Context, authorID uint64, imageFile *multipart.FileHeader) (string, string, error) {
	if err := validateImageUpload(imageFile); err != nil {
		return "", "", err
	}

	file, err := imageFile.Open()
	if err != nil {
		s.logger.Error("打开封面文件以上传失败", zap.String("filename", imageFile.Filename), zap.Error(err))
		return "", "", fmt.Errorf("打开封面文件失败: %w", err)
	}

	objectKey := s.generatePostImageObjectKey(imageFile.Filename, authorID)
	imageURL, err := s.cosClient.UploadFile(ctx, objectKey, file, imageFile.Size, imageContentType(imageFile))
	file.Close()
	if err != nil {
		s.logger.Error("上传封面到 COS 失败", zap.String("objectKey", objectKey), zap.Error(err))
		return "", "", fmt.Errorf("上传封面失败: %w", err)
	}
	return imageURL, objectKey, nil
}

// CreatePost 实现文章的创建流程。
func (s *postService) CreatePost(ctx context.Context, authorID uint64, req *dto.CreatePostRequest, imageFile *multipart.FileHeader) (*vo.PostVO, error) {
	// 1. 从标题派生 slug 并检查占用
	slug, err := DeriveSlug(req.Title)
	if err != nil {
		return nil, err
	}
	exists, err := s.postRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, myErrors.ErrSlugConflict
	}

	category := req.Category
	if category == "" {
		category = DefaultPostCategory
	}

	// 2. 封面图片先上传 COS
	var imageURL, imageObjectKey string
	if imageFile != nil {
		imageURL, imageObjectKey, err = s.uploadPostImage(ctx, authorID, imageFile)
		if err != nil {
			return nil, err
		}
	}

	// 3. 在事务中写入文章记录
	post := &entities.Post{
		Title:          req.Title,
		Slug:           slug,
		Content:        req.Content,
		Category:       category,
		Image:          imageURL,
		ImageObjectKey: imageObjectKey,
		AuthorID:       authorID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.CreatePost(ctx, tx, post)
	})
	if err != nil {
		s.logger.Error("创建文章事务失败", zap.String("slug", slug), zap.Error(err))
		// 数据库失败时清理刚上传的封面，避免 COS 孤立对象
		if imageObjectKey != "" {
			if cleanupErr := s.cosClient.DeleteObject(context.Background(), imageObjectKey); cleanupErr != nil {
				s.logger.Error("清理孤立的封面 COS 对象失败", zap.String("objectKey", imageObjectKey), zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	// 4. 异步发送 Kafka 创建事件
	go func(pd events.PostData) {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendPostCreatedEvent(bgCtx, pd); kafkaErr != nil {
			s.logger.Error("发送 Kafka 文章创建事件失败", zap.Error(kafkaErr), zap.Uint64("postID", pd.ID))
		}
	}(events.PostData{
		ID:       post.ID,
		Title:    post.Title,
		Slug:     post.Slug,
		Category: post.Category,
		AuthorID: post.AuthorID,
	})

	s.logger.Info("文章创建成功", zap.Uint64("postID", post.ID), zap.String("slug", slug))
	return vo.MapPostToVO(post), nil
}

// GetPostByID 实现单篇文章的获取。
func (s *postService) GetPostByID(ctx context.Context, postID uint64) (*vo.PostVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return vo.MapPostToVO(post), nil
}

// ListPosts 实现文章列表查询。
func (s *postService) ListPosts(ctx context.Context, req *dto.ListPostsRequest) (*vo.PostListVO, error) {
	posts, err := s.postRepo.ListPosts(ctx, req)
	if err != nil {
		return nil, err
	}

	// 统计是全量值，不叠加列表的过滤条件
	totalPosts, err := s.postRepo.CountPosts(ctx)
	if err != nil {
		return nil, err
	}

	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	lastMonthPosts, err := s.postRepo.CountPostsCreatedSince(ctx, oneMonthAgo)
	if err != nil {
		return nil, err
	}

	return &vo.PostListVO{
		Posts:          vo.MapPostsToVOs(posts),
		TotalPosts:     totalPosts,
		LastMonthPosts: lastMonthPosts,
	}, nil
}

// UpdatePost 实现文章的更新流程。
func (s *postService) UpdatePost(ctx context.Context, callerID uint64, postID uint64, req *dto.UpdatePostRequest, imageFile *multipart.FileHeader) (*vo.PostVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// 只有作者本人可以更新文章
	if post.AuthorID != callerID {
		return nil, myErrors.ErrForbidden
	}

	var title, content, category *string
	if req.Title != "" && req.Title != post.Title {
		title = &req.Title
	}
	if req.Content != "" {
		content = &req.Content
	}
	if req.Category != "" {
		category = &req.Category
	}

	// 新封面先上传 COS
	var imageURL, imageObjectKey *string
	if imageFile != nil {
		newURL, newKey, err := s.uploadPostImage(ctx, post.AuthorID, imageFile)
		if err != nil {
			return nil, err
		}
		imageURL = &newURL
		imageObjectKey = &newKey
	}

	if err := s.postRepo.UpdatePost(ctx, postID, title, content, category, imageURL, imageObjectKey); err != nil {
		if imageObjectKey != nil {
			if cleanupErr := s.cosClient.DeleteObject(context.Background(), *imageObjectKey); cleanupErr != nil {
				s.logger.Error("清理孤立的封面 COS 对象失败", zap.String("objectKey", *imageObjectKey), zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	// 更新成功后删除旧封面对象
	if imageObjectKey != nil && post.ImageObjectKey != "" {
		oldKey := post.ImageObjectKey
		go func() {
			if err := s.cosClient.DeleteObject(context.Background(), oldKey); err != nil {
				s.logger.Error("删除旧封面 COS 对象失败", zap.String("objectKey", oldKey), zap.Error(err))
			}
		}()
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// 异步发送 Kafka 更新事件
	go func(pd events.PostData) {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendPostUpdatedEvent(bgCtx, pd); kafkaErr != nil {
			s.logger.Error("发送 Kafka 文章更新事件失败", zap.Error(kafkaErr), zap.Uint64("postID", pd.ID))
		}
	}(events.PostData{
		ID:       updated.ID,
		Title:    updated.Title,
		Slug:     updated.Slug,
		Category: updated.Category,
		AuthorID: updated.AuthorID,
	})

	s.logger.Info("文章更新成功", zap.Uint64("postID", postID))
	return vo.MapPostToVO(updated), nil
}

// DeletePost 实现文章的软删除流程。
func (s *postService) DeletePost(ctx context.Context, callerID uint64, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	// 仅作者本人可删除
	if post.AuthorID != callerID {
		return myErrors.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.DeletePost(ctx, tx, postID)
	})
	if err != nil {
		s.logger.Error("删除文章事务失败", zap.Uint64("postID", postID), zap.Error(err))
		return err
	}

	// 异步发送 Kafka 删除事件；封面对象随清理任务一并回收
	go func(id uint64) {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendPostDeletedEvent(bgCtx, id); kafkaErr != nil {
			s.logger.Error("发送 Kafka 文章删除事件失败", zap.Error(kafkaErr), zap.Uint64("postID", id))
		}
	}(postID)

	s.logger.Info("文章删除成功", zap.Uint64("postID", postID), zap.Uint64("operatorID", callerID))
	return nil
}
