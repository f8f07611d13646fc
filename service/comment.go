package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// maxCommentLength 评论内容的最大字符数（按 Unicode 字符计）。
const maxCommentLength = 200

// CommentService 定义了处理评论业务逻辑的接口。
type CommentService interface {
	// CreateComment 处理发表评论的业务流程。
	// - 请求中声明的 userId 必须与当前登录用户一致，否则返回 myErrors.ErrForbidden。
	// - 内容去除首尾空白后必须非空且不超过 200 字符。
	CreateComment(ctx context.Context, callerID uint64, req *dto.CreateCommentRequest) (*vo.CommentVO, error)

	// ListCommentsByPost 检索指定文章下的评论列表，最新的在前。
	// - 点赞列表与作者公开信息批量组装，作者已删除时 author 为 nil。
	ListCommentsByPost(ctx context.Context, postID uint64) ([]*vo.CommentVO, error)

	// ToggleLike 切换当前用户对指定评论的点赞状态。
	// - 对同一评论的并发切换在服务层串行化，配合联合主键保证不丢不重。
	ToggleLike(ctx context.Context, callerID uint64, commentID uint64) (*vo.LikeToggleVO, error)

	// EditComment 编辑评论内容，仅作者本人可执行。
	EditComment(ctx context.Context, callerID uint64, commentID uint64, req *dto.EditCommentRequest) (*vo.CommentVO, error)

	// DeleteComment 删除评论，作者本人或管理员可执行。
	// - 在单个事务中删除评论及其全部点赞记录。
	DeleteComment(ctx context.Context, callerID uint64, callerIsAdmin bool, commentID uint64) error
}

// commentService 是 CommentService 接口的具体实现。
type commentService struct {
	commentRepo     mysql.CommentRepository
	commentLikeRepo mysql.CommentLikeRepository
	postRepo        mysql.PostRepository
	userRepo        mysql.UserRepository
	likeMutex       *keyedMutex
	db              *gorm.DB
	logger          *core.ZapLogger
}

// NewCommentService 是 commentService 的构造函数，通过依赖注入初始化服务实例。
func NewCommentService(
	db *gorm.DB,
	commentRepo mysql.CommentRepository,
	commentLikeRepo mysql.CommentLikeRepository,
	postRepo mysql.PostRepository,
	userRepo mysql.UserRepository,
	logger *core.ZapLogger,
) CommentService {
	return &commentService{
		commentRepo:     commentRepo,
		commentLikeRepo: commentLikeRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		likeMutex:       newKeyedMutex(64),
		db:              db,
		logger:          logger,
	}
}

// normalizeCommentContent 清洗并校验评论内容。
func normalizeCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", myErrors.ErrCommentEmpty
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLength {
		return "", myErrors.ErrCommentTooLong
	}
	return trimmed, nil
}

// CreateComment 实现评论的创建流程。
func (s *commentService) CreateComment(ctx context.Context, callerID uint64, req *dto.CreateCommentRequest) (*vo.CommentVO, error) {
	// 1. 防伪校验: 声明的作者必须是当前登录用户
	if req.UserID != callerID {
		return nil, myErrors.ErrForbidden
	}

	// 2. 内容校验
	content, err := normalizeCommentContent(req.Content)
	if err != nil {
		return nil, err
	}

	// 3. 确认目标文章存在
	if _, err := s.postRepo.GetPostByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	// 4. 持久化评论记录
	comment := &entities.Comment{
		Content:  content,
		PostID:   req.PostID,
		AuthorID: callerID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.commentRepo.CreateComment(ctx, tx, comment)
	})
	if err != nil {
		s.logger.Error("创建评论事务失败", zap.Uint64("postID", req.PostID), zap.Error(err))
		return nil, err
	}

	// 5. 组装响应，新评论没有点赞
	var author *vo.AuthorVO
	if user, err := s.userRepo.GetUserByID(ctx, callerID); err == nil {
		author = vo.MapUserToAuthorVO(user)
	}

	s.logger.Info("评论创建成功", zap.Uint64("commentID", comment.ID), zap.Uint64("postID", req.PostID))
	return vo.MapCommentToVO(comment, nil, author), nil
}

// ListCommentsByPost 实现文章评论列表的查询与批量组装。
func (s *commentService) ListCommentsByPost(ctx context.Context, postID uint64) ([]*vo.CommentVO, error) {
	comments, err := s.commentRepo.ListCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []*vo.CommentVO{}, nil
	}

	// 收集评论 ID 与去重后的作者 ID
	commentIDs := make([]uint64, 0, len(comments))
	authorIDSet := make(map[uint64]struct{}, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
		authorIDSet[comment.AuthorID] = struct{}{}
	}
	authorIDs := make([]uint64, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	// 批量查询点赞关系与作者信息，避免逐条回表
	likesByComment, err := s.commentLikeRepo.ListLikerIDsByComments(ctx, commentIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.userRepo.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[uint64]*vo.AuthorVO, len(authors))
	for _, user := range authors {
		authorByID[user.ID] = vo.MapUserToAuthorVO(user)
	}

	result := make([]*vo.CommentVO, 0, len(comments))
	for _, comment := range comments {
		// 作者已删除时 authorByID 查不到，author 保持为 nil
		result = append(result, vo.MapCommentToVO(comment, likesByComment[comment.ID], authorByID[comment.AuthorID]))
	}
	return result, nil
}

// ToggleLike 实现点赞状态的切换。
func (s *commentService) ToggleLike(ctx context.Context, callerID uint64, commentID uint64) (*vo.LikeToggleVO, error) {
	// 同一评论的切换在服务层串行化，切换与读取点赞列表之间不会交错
	s.likeMutex.Lock(commentID)
	defer s.likeMutex.Unlock(commentID)

	if _, err := s.commentRepo.GetCommentByID(ctx, commentID); err != nil {
		return nil, err
	}

	liked, err := s.commentLikeRepo.ToggleLike(ctx, commentID, callerID)
	if err != nil {
		return nil, err
	}

	likerIDs, err := s.commentLikeRepo.ListLikerIDs(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if likerIDs == nil {
		likerIDs = []uint64{}
	}

	return &vo.LikeToggleVO{
		Likes:         likerIDs,
		NumberOfLikes: len(likerIDs),
		IsLiked:       liked,
	}, nil
}

// EditComment 实现评论的编辑流程。
func (s *commentService) EditComment(ctx context.Context, callerID uint64, commentID uint64, req *dto.EditCommentRequest) (*vo.CommentVO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	// 只有作者本人可以编辑评论
	if comment.AuthorID != callerID {
		return nil, myErrors.ErrForbidden
	}

	content, err := normalizeCommentContent(req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	likerIDs, err := s.commentLikeRepo.ListLikerIDs(ctx, commentID)
	if err != nil {
		return nil, err
	}

	var author *vo.AuthorVO
	if user, err := s.userRepo.GetUserByID(ctx, updated.AuthorID); err == nil {
		author = vo.MapUserToAuthorVO(user)
	}

	s.logger.Info("评论编辑成功", zap.Uint64("commentID", commentID))
	return vo.MapCommentToVO(updated, likerIDs, author), nil
}

// DeleteComment 实现评论及其点赞记录的删除。
func (s *commentService) DeleteComment(ctx context.Context, callerID uint64, callerIsAdmin bool, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	// 作者本人或管理员可删除
	if comment.AuthorID != callerID && !callerIsAdmin {
		return myErrors.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if repoErr := s.commentLikeRepo.DeleteByComment(ctx, tx, commentID); repoErr != nil {
			return fmt.Errorf("级联删除评论点赞失败: %w", repoErr)
		}
		if repoErr := s.commentRepo.DeleteComment(ctx, tx, commentID); repoErr != nil {
			return fmt.Errorf("删除评论失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除评论事务失败", zap.Uint64("commentID", commentID), zap.Error(err))
		return err
	}

	s.logger.Info("评论删除成功", zap.Uint64("commentID", commentID), zap.Uint64("operatorID", callerID))
	return nil
}
