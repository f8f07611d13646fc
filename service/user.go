package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// UserService 定义了处理用户资料与用户管理业务逻辑的接口。
type UserService interface {
	// GetUser 获取单个用户的公开信息。
	GetUser(ctx context.Context, userID uint64) (*vo.UserVO, error)

	// UpdateProfile 更新用户资料，支持同时替换头像。
	// - 只能更新自己的资料，callerID 与 targetID 不一致时返回 myErrors.ErrForbidden。
	// - 新头像先上传 COS 再更新数据库，数据库失败时清理刚上传的对象；
	//   更新成功后删除旧头像对象。
	UpdateProfile(ctx context.Context, callerID, targetID uint64, req *dto.UpdateProfileRequest, avatarFile *multipart.FileHeader) (*vo.UserVO, error)

	// ChangePassword 修改密码，要求提供正确的当前密码。
	ChangePassword(ctx context.Context, userID uint64, req *dto.ChangePasswordRequest) error

	// DeleteUser 删除用户账号及其全部内容。
	// - 本人或管理员可执行；在单个事务中硬删除用户、其评论、其点赞与其文章。
	DeleteUser(ctx context.Context, callerID uint64, callerIsAdmin bool, targetID uint64) error

	// ListUsers 管理员分页查询用户列表，并返回总数与近一个月新增数。
	ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*vo.UserListVO, error)
}

// userService 是 UserService 接口的具体实现。
type userService struct {
	userRepo        mysql.UserRepository
	postRepo        mysql.PostRepository
	commentRepo     mysql.CommentRepository
	commentLikeRepo mysql.CommentLikeRepository
	cosClient       dependencies.COSClientInterface
	db              *gorm.DB
	logger          *core.ZapLogger
}

// NewUserService 是 userService 的构造函数，通过依赖注入初始化服务实例。
func NewUserService(
	db *gorm.DB,
	userRepo mysql.UserRepository,
	postRepo mysql.PostRepository,
	commentRepo mysql.CommentRepository,
	commentLikeRepo mysql.CommentLikeRepository,
	cosClient dependencies.COSClientInterface,
	logger *core.ZapLogger,
) UserService {
	return &userService{
		userRepo:        userRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		commentLikeRepo: commentLikeRepo,
		cosClient:       cosClient,
		db:              db,
		logger:          logger,
	}
}

// generateAvatarObjectKey 为头像创建一个唯一的 COS 对象键。
func (s *userService) generateAvatarObjectKey(originalFilename string, userID uint64) string {
	datePrefix := time.Now().Format("20060102")
	extension := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s/%d_%s%s",
		constant.COSObjectKeyPrefixAvatars,
		datePrefix,
		userID,
		uuid.NewString(),
		extension,
	)
}

// GetUser 实现单个用户公开信息的获取。
func (s *userService) GetUser(ctx context.Context, userID uint64) (*vo.UserVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return vo.MapUserToVO(user), nil
}

// UpdateProfile 实现用户资料的更新。
func (s *userService) UpdateProfile(ctx context.Context, callerID, targetID uint64, req *dto.UpdateProfileRequest, avatarFile *multipart.FileHeader) (*vo.UserVO, error) {
	// 1. 防伪校验: 只能更新自己的资料
	if callerID != targetID {
		return nil, myErrors.ErrForbidden
	}

	user, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// 2. 用户名变更时检查占用
	var newUsername *string
	if req.Username != "" && req.Username != user.Username {
		if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
			return nil, myErrors.ErrUserConflict
		} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, err
		}
		newUsername = &req.Username
	}

	// 3. 新头像先上传 COS
	var newAvatarURL, newObjectKey *string
	if avatarFile != nil {
		if err := validateImageUpload(avatarFile); err != nil {
			return nil, err
		}

		file, err := avatarFile.Open()
		if err != nil {
			s.logger.Error("打开头像文件以上传失败", zap.String("filename", avatarFile.Filename), zap.Error(err))
			return nil, fmt.Errorf("打开头像文件失败: %w", err)
		}

		objectKey := s.generateAvatarObjectKey(avatarFile.Filename, targetID)
		avatarURL, err := s.cosClient.UploadFile(ctx, objectKey, file, avatarFile.Size, imageContentType(avatarFile))
		file.Close()
		if err != nil {
			s.logger.Error("上传头像到 COS 失败", zap.String("objectKey", objectKey), zap.Error(err))
			return nil, fmt.Errorf("上传头像失败: %w", err)
		}
		newAvatarURL = &avatarURL
		newObjectKey = &objectKey
	}

	// 4. 更新数据库
	if err := s.userRepo.UpdateUser(ctx, targetID, newUsername, newAvatarURL, newObjectKey); err != nil {
		// 数据库失败时清理刚上传的头像，避免 COS 孤立对象
		if newObjectKey != nil {
			if cleanupErr := s.cosClient.DeleteObject(context.Background(), *newObjectKey); cleanupErr != nil {
				s.logger.Error("清理孤立的头像 COS 对象失败", zap.String("objectKey", *newObjectKey), zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	// 5. 更新成功后删除旧头像对象（占位头像没有 ObjectKey）
	if newObjectKey != nil && user.AvatarObjectKey != "" {
		oldKey := user.AvatarObjectKey
		go func() {
			if err := s.cosClient.DeleteObject(context.Background(), oldKey); err != nil {
				s.logger.Error("删除旧头像 COS 对象失败", zap.String("objectKey", oldKey), zap.Error(err))
			}
		}()
	}

	updated, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("用户资料更新成功", zap.Uint64("userID", targetID))
	return vo.MapUserToVO(updated), nil
}

// ChangePassword 实现密码修改逻辑。
func (s *userService) ChangePassword(ctx context.Context, userID uint64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return myErrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("修改密码时哈希新密码失败", zap.Uint64("userID", userID), zap.Error(err))
		return fmt.Errorf("哈希密码失败: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	s.logger.Info("用户密码修改成功", zap.Uint64("userID", userID))
	return nil
}

// DeleteUser 实现账号删除及其内容的级联清理。
func (s *userService) DeleteUser(ctx context.Context, callerID uint64, callerIsAdmin bool, targetID uint64) error {
	// 本人或管理员可删除
	if callerID != targetID && !callerIsAdmin {
		return myErrors.ErrForbidden
	}

	// 确认目标存在，顺便取到头像 ObjectKey 供事务后清理
	user, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 删除该用户发出的点赞
		if repoErr := s.commentLikeRepo.DeleteByUser(ctx, tx, targetID); repoErr != nil {
			return fmt.Errorf("级联删除用户点赞失败: %w", repoErr)
		}
		// 2. 删除该用户的评论
		if repoErr := s.commentRepo.DeleteCommentsByAuthor(ctx, tx, targetID); repoErr != nil {
			return fmt.Errorf("级联删除用户评论失败: %w", repoErr)
		}
		// 3. 删除该用户的文章
		if repoErr := s.postRepo.DeletePostsByAuthor(ctx, tx, targetID); repoErr != nil {
			return fmt.Errorf("级联删除用户文章失败: %w", repoErr)
		}
		// 4. 删除用户主记录
		if repoErr := s.userRepo.DeleteUser(ctx, tx, targetID); repoErr != nil {
			return fmt.Errorf("删除用户主记录失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除用户事务失败", zap.Uint64("targetID", targetID), zap.Error(err))
		return err
	}

	// 事务成功后异步清理头像对象
	if user.AvatarObjectKey != "" {
		avatarKey := user.AvatarObjectKey
		go func() {
			if err := s.cosClient.DeleteObject(context.Background(), avatarKey); err != nil {
				s.logger.Error("删除用户头像 COS 对象失败", zap.String("objectKey", avatarKey), zap.Error(err))
			}
		}()
	}

	s.logger.Info("用户账号及其内容删除完成",
		zap.Uint64("targetID", targetID),
		zap.Uint64("operatorID", callerID),
	)
	return nil
}

// ListUsers 实现管理员用户列表查询。
func (s *userService) ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*vo.UserListVO, error) {
	users, err := s.userRepo.ListUsers(ctx, req.GetOffset(), req.GetLimit(), req.SortAscending())
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	lastMonthUsers, err := s.userRepo.CountUsersCreatedSince(ctx, oneMonthAgo)
	if err != nil {
		return nil, err
	}

	return &vo.UserListVO{
		Users:          vo.MapUsersToVOs(users),
		TotalUsers:     totalUsers,
		LastMonthUsers: lastMonthUsers,
	}, nil
}
