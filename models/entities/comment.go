package entities

import (
	"time"

	"github.com/Xushengqwer/go-common/models/entities"
)

// Comment 评论实体
// - 使用场景: 帖子详情页的评论区，按创建时间倒序展示
// - 表名: comments
// - 作者数据不做冗余，读路径通过批量查询 users 表后在服务层合并公开投影
type Comment struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt

	// 内容，去除首尾空白后 1~200 字符，超长在服务层拒绝
	Content string `gorm:"type:varchar(200);not null"`

	// 所属帖子ID
	PostID uint64 `gorm:"type:bigint;not null;index"`

	// 评论作者ID，创建时必须等于当前认证用户（防冒充）
	AuthorID uint64 `gorm:"type:bigint;not null;index"`
}

// CommentLike 评论点赞关系
// - 表名: comment_likes
// - 原始设计是在评论文档里内嵌点赞者ID数组，读改写不具原子性，
//   并发点赞会互相覆盖；这里改为联合主键的关系表，
//   (comment_id, user_id) 的唯一性由数据库保证，插入/删除天然原子。
type CommentLike struct {
	CommentID uint64    `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time // 点赞时间，排序或审计用
}
