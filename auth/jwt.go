package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Xushengqwer/blog_service/config"
)

// TokenClaims 是访问令牌解析后的载荷。
type TokenClaims struct {
	UserID    uint64    // 用户ID (sub)
	IsAdmin   bool      // 是否管理员 (adm)
	TokenID   string    // 令牌唯一ID (jti)，用于吊销
	ExpiresAt time.Time // 过期时间 (exp)
}

// TokenMaker 定义了访问令牌的签发与校验接口。
type TokenMaker interface {
	// GenerateToken 为指定用户签发一个 HS256 访问令牌
	GenerateToken(userID uint64, isAdmin bool) (string, error)
	// VerifyToken 校验令牌签名与有效期，返回解析后的载荷
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

type tokenMaker struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenMaker 根据 JWT 配置创建令牌签发器。
func NewTokenMaker(cfg *config.JWTConfig) TokenMaker {
	expireHours := cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 168 // 默认 7 天
	}
	return &tokenMaker{
		secret:     []byte(cfg.Secret),
		expiration: time.Duration(expireHours) * time.Hour,
	}
}

// GenerateToken 签发一个携带 sub/adm/jti/iat/exp 声明的 HS256 令牌。
func (m *tokenMaker) GenerateToken(userID uint64, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"adm": isAdmin,
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(m.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("签发访问令牌失败: %w", err)
	}
	return signed, nil
}

// VerifyToken 校验令牌并返回载荷。
// - 仅接受 HMAC 签名算法，防止算法混淆攻击。
// - 过期或签名无效的令牌统一返回错误，不区分失败原因。
func (m *tokenMaker) VerifyToken(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("无效的访问令牌: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("无效的令牌载荷")
	}

	var userID uint64
	if sub, ok := claims["sub"].(string); ok {
		if _, scanErr := fmt.Sscanf(sub, "%d", &userID); scanErr != nil {
			return nil, fmt.Errorf("无效的令牌 sub 声明")
		}
	} else {
		return nil, fmt.Errorf("令牌缺少 sub 声明")
	}

	isAdmin, _ := claims["adm"].(bool)
	tokenID, _ := claims["jti"].(string)

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok { // JWT 数字解码为 float64
		expiresAt = time.Unix(int64(exp), 0)
	}

	return &TokenClaims{
		UserID:    userID,
		IsAdmin:   isAdmin,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}
