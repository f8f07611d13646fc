package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// UserVO 定义了用户信息的响应数据结构。
// - 密码哈希永远不在此结构中出现，所有出站的用户数据都必须经过本 VO。
type UserVO struct {
	ID        uint64    `json:"id"`        // 用户ID
	Username  string    `json:"username"`  // 用户名
	Email     string    `json:"email"`     // 邮箱
	Avatar    string    `json:"avatar"`    // 头像 URL
	IsAdmin   bool      `json:"isAdmin"`   // 是否管理员
	CreatedAt time.Time `json:"createdAt"` // 创建时间
	UpdatedAt time.Time `json:"updatedAt"` // 更新时间
}

// AuthorVO 定义了评论作者的公开投影。
// - 仅包含渲染评论所需的最小字段集，不暴露邮箱等隐私信息。
type AuthorVO struct {
	ID       uint64 `json:"id"`       // 作者ID
	Username string `json:"username"` // 用户名
	Avatar   string `json:"avatar"`   // 头像 URL
	IsAdmin  bool   `json:"isAdmin"`  // 是否管理员
}

// UserListVO 定义了管理员分页查询用户列表的响应结构。
type UserListVO struct {
	Users          []*UserVO `json:"users"`          // 当前页的用户列表
	TotalUsers     int64     `json:"totalUsers"`     // 用户总数
	LastMonthUsers int64     `json:"lastMonthUsers"` // 最近一个月新增用户数
}

// MapUserToVO 将用户实体转换为响应 VO。
func MapUserToVO(user *entities.User) *UserVO {
	if user == nil {
		return nil
	}
	return &UserVO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapUsersToVOs 将用户实体列表转换为响应 VO 列表。
func MapUsersToVOs(users []*entities.User) []*UserVO {
	if len(users) == 0 {
		return []*UserVO{} // 返回空切片而不是nil，便于前端处理
	}
	vos := make([]*UserVO, 0, len(users))
	for _, user := range users {
		if user == nil {
			continue
		}
		vos = append(vos, MapUserToVO(user))
	}
	return vos
}

// MapUserToAuthorVO 将用户实体转换为公开的作者投影。
func MapUserToAuthorVO(user *entities.User) *AuthorVO {
	if user == nil {
		return nil
	}
	return &AuthorVO{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		IsAdmin:  user.IsAdmin,
	}
}
