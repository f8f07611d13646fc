package entities

import "github.com/Xushengqwer/go-common/models/entities"

// Post 帖子实体
// - 使用场景: 首页/搜索列表与帖子详情页，富文本 HTML 内容直接入库
// - 表名: posts (GORM 默认使用结构体名复数形式)
type Post struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 标题，必填，最大长度255个字符
	Title string `gorm:"type:varchar(255);not null"`

	// URL slug，由标题在创建时确定性推导（小写、空白转连字符、去非法字符），全局唯一。
	// 更新标题不会重新推导，保证已分享链接不失效。
	Slug string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 富文本 HTML 内容
	Content string `gorm:"type:text;not null"`

	// 分类，用于列表页筛选
	Category string `gorm:"type:varchar(100);not null;index"`

	// 配图 URL，可选；为空表示无配图
	Image string `gorm:"type:varchar(1023)"`

	// 配图在 COS 中的 ObjectKey，替换/清理时使用
	ImageObjectKey string `gorm:"type:varchar(255)"`

	// 作者ID，关联 users 表
	// - 仅管理员可以创建帖子，更新/删除仅限原作者
	AuthorID uint64 `gorm:"type:bigint;not null;index"`
}
