package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
)

// dummyPasswordHash 是一个固定的 bcrypt 哈希。
// 登录时若邮箱不存在，仍对该哈希做一次比对，
// 使两种失败路径的耗时一致，避免通过响应时间探测邮箱是否注册。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService 定义了处理账号注册与登录业务逻辑的接口。
type AuthService interface {
	// Signup 处理用户注册。
	// - 密码以 bcrypt 哈希存储，新用户使用占位头像，永远不是管理员。
	Signup(ctx context.Context, req *dto.SignupRequest) (*vo.UserVO, error)

	// Signin 处理邮箱密码登录。
	// - 邮箱不存在与密码错误返回同一个 myErrors.ErrInvalidCredentials。
	// - 成功时返回用户信息与签发的访问令牌。
	Signin(ctx context.Context, req *dto.SigninRequest) (*vo.UserVO, string, error)

	// GoogleAuth 处理 Google OAuth 登录。
	// - 邮箱已注册则直接登录；未注册则创建账号，用户名由昵称派生并追加随机后缀，
	//   密码为随机值的哈希（该账号无法通过密码登录，只能走 OAuth）。
	GoogleAuth(ctx context.Context, req *dto.GoogleAuthRequest) (*vo.UserVO, string, error)

	// Signout 处理登出，将当前令牌加入吊销名单直至其自然过期。
	Signout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// authService 是 AuthService 接口的具体实现。
type authService struct {
	userRepo       mysql.UserRepository
	revocationRepo redisRepo.TokenRevocationRepository
	tokenMaker     auth.TokenMaker
	db             *gorm.DB
	logger         *core.ZapLogger
}

// NewAuthService 是 authService 的构造函数，通过依赖注入初始化服务实例。
func NewAuthService(
	db *gorm.DB,
	userRepo mysql.UserRepository,
	revocationRepo redisRepo.TokenRevocationRepository,
	tokenMaker auth.TokenMaker,
	logger *core.ZapLogger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		revocationRepo: revocationRepo,
		tokenMaker:     tokenMaker,
		db:             db,
		logger:         logger,
	}
}

// Signup 实现用户注册逻辑。
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*vo.UserVO, error) {
	// 1. 预检用户名与邮箱占用，将唯一约束冲突提前转换为业务错误
	if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, myErrors.ErrUserConflict
	} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, myErrors.ErrUserConflict
	} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
		return nil, err
	}

	// 2. 哈希密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("注册时哈希密码失败", zap.Error(err))
		return nil, fmt.Errorf("哈希密码失败: %w", err)
	}

	// 3. 持久化用户记录
	user := &entities.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Avatar:   entities.DefaultAvatarURL,
		IsAdmin:  false,
	}
	if err := s.userRepo.CreateUser(ctx, s.db, user); err != nil {
		// 预检与插入之间的并发注册仍可能触发唯一约束冲突
		s.logger.Warn("创建用户记录失败", zap.String("username", req.Username), zap.Error(err))
		return nil, myErrors.ErrUserConflict
	}

	s.logger.Info("新用户注册成功", zap.Uint64("userID", user.ID), zap.String("username", user.Username))
	return vo.MapUserToVO(user), nil
}

// Signin 实现邮箱密码登录逻辑。
func (s *authService) Signin(ctx context.Context, req *dto.SigninRequest) (*vo.UserVO, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			// 邮箱不存在时仍做一次哈希比对，耗时与密码错误路径一致
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(req.Password))
			return nil, "", myErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", myErrors.ErrInvalidCredentials
	}

	token, err := s.tokenMaker.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error("登录时签发访问令牌失败", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("签发访问令牌失败: %w", err)
	}

	s.logger.Info("用户登录成功", zap.Uint64("userID", user.ID))
	return vo.MapUserToVO(user), token, nil
}

// GoogleAuth 实现 Google OAuth 登录逻辑。
func (s *authService) GoogleAuth(ctx context.Context, req *dto.GoogleAuthRequest) (*vo.UserVO, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, "", err
		}

		// 首次 OAuth 登录，创建新账号
		user, err = s.createGoogleUser(ctx, req)
		if err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokenMaker.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error("OAuth 登录时签发访问令牌失败", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("签发访问令牌失败: %w", err)
	}

	return vo.MapUserToVO(user), token, nil
}

// createGoogleUser 为首次 OAuth 登录的邮箱创建账号。
// - 用户名由昵称派生并追加随机后缀，避免与已有用户名冲突。
// - 密码为随机值的哈希，该账号只能通过 OAuth 登录。
func (s *authService) createGoogleUser(ctx context.Context, req *dto.GoogleAuthRequest) (*entities.User, error) {
	randomPassword := uuid.NewString()
	hashed, err := bcrypt.GenerateFromPassword([]byte(randomPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("OAuth 注册时哈希随机密码失败", zap.Error(err))
		return nil, fmt.Errorf("哈希密码失败: %w", err)
	}

	baseName := strings.ToLower(strings.Join(strings.Fields(req.Name), ""))
	if baseName == "" {
		baseName = "user"
	}

	avatar := req.GooglePhotoURL
	if avatar == "" {
		avatar = entities.DefaultAvatarURL
	}

	// 随机后缀仍可能碰撞，重试数次后放弃
	for attempt := 0; attempt < 3; attempt++ {
		suffix := uuid.NewString()[:8]
		user := &entities.User{
			Username: fmt.Sprintf("%s%s", baseName, suffix),
			Email:    req.Email,
			Password: string(hashed),
			Avatar:   avatar,
			IsAdmin:  false,
		}
		if err := s.userRepo.CreateUser(ctx, s.db, user); err != nil {
			s.logger.Warn("OAuth 创建用户记录失败，重试",
				zap.String("username", user.Username),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		s.logger.Info("OAuth 新用户注册成功", zap.Uint64("userID", user.ID), zap.String("email", req.Email))
		return user, nil
	}

	return nil, myErrors.ErrUserConflict
}

// Signout 实现登出逻辑。
func (s *authService) Signout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if err := s.revocationRepo.Revoke(ctx, tokenID, ttl); err != nil {
		return err
	}
	s.logger.Info("用户登出，令牌已吊销", zap.String("tokenID", tokenID))
	return nil
}
