package dto

// SignupRequest 定义了注册新账号的请求数据结构
// - 添加了 binding 标签用于输入验证
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=50"`        // 用户名，必填，最大50字符
	Email    string `json:"email" binding:"required,email,max=255"`    // 邮箱，必填，需为合法邮箱格式
	Password string `json:"password" binding:"required,min=8,max=128"` // 密码，必填，最少8字符
}

// SigninRequest 定义了邮箱密码登录的请求数据结构
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"` // 邮箱，必填
	Password string `json:"password" binding:"required"`    // 密码，必填
}

// GoogleAuthRequest 定义了 OAuth 登录/自动注册的请求数据结构。
// - Email 已由第三方验证，服务端信任该字段；
//   不存在对应账号时用 Name 推导用户名并自动建号。
type GoogleAuthRequest struct {
	Name           string `json:"name" binding:"required,max=100"`          // 第三方展示名，必填
	Email          string `json:"email" binding:"required,email"`           // 第三方已验证邮箱，必填
	GooglePhotoURL string `json:"googlePhotoUrl" binding:"omitempty,url"`   // 第三方头像 URL，可选
}

// ChangePasswordRequest 定义了修改密码的请求数据结构。
// - 必须先验证当前密码，防止会话被劫持后直接改密。
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`           // 当前密码，必填
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=128"` // 新密码，必填，最少8字符
}
