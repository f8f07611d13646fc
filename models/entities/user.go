package entities

import "github.com/Xushengqwer/go-common/models/entities"

// DefaultAvatarURL 新用户的占位头像，注册时若未上传头像则使用该地址。
const DefaultAvatarURL = "https://static.blog-service.example.com/defaults/avatar.png"

// User 用户实体
// - 使用场景: 账号注册/登录、资料维护、管理员用户列表
// - 表名: users (GORM 默认使用结构体名复数形式)
type User struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt

	// 用户名，全局唯一
	// - 类型: varchar(50)，展示名兼登录标识之一
	// - GORM 标签: uniqueIndex 保证唯一性，冲突在仓库层转换为统一的占用错误
	Username string `gorm:"type:varchar(50);uniqueIndex;not null"`

	// 邮箱，全局唯一，登录凭证
	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 密码的 bcrypt 哈希
	// - 任何响应都不得序列化该字段，VO 层只暴露公开投影
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	// 头像 URL
	// - 注册时写入占位图，之后指向 COS 上的对象
	Avatar string `gorm:"type:varchar(1023);not null"`

	// 头像在 COS 中的 ObjectKey，占位头像时为空。
	// 替换头像后用旧值删除 COS 对象，避免从 URL 反解析路径。
	AvatarObjectKey string `gorm:"type:varchar(255)"`

	// 管理员标志，只有管理员可以发帖和查看用户列表
	IsAdmin bool `gorm:"not null;default:false"`
}
