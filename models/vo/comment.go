package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentVO 定义了评论的响应数据结构。
// - likes 是点赞用户的 ID 列表，numberOfLikes 与其长度一致。
// - author 由批量投影填充；作者已被删除时为 nil。
type CommentVO struct {
	ID            uint64    `json:"id"`            // 评论ID
	Content       string    `json:"content"`       // 评论内容
	PostID        uint64    `json:"postId"`        // 所属文章ID
	AuthorID      uint64    `json:"userId"`        // 作者ID
	Likes         []uint64  `json:"likes"`         // 点赞用户ID列表
	NumberOfLikes int       `json:"numberOfLikes"` // 点赞数
	Author        *AuthorVO `json:"author"`        // 作者公开信息
	CreatedAt     time.Time `json:"createdAt"`     // 创建时间
	UpdatedAt     time.Time `json:"updatedAt"`     // 更新时间
}

// LikeToggleVO 定义了点赞切换操作的响应结构。
type LikeToggleVO struct {
	Likes         []uint64 `json:"likes"`         // 切换后的点赞用户ID列表
	NumberOfLikes int      `json:"numberOfLikes"` // 切换后的点赞数
	IsLiked       bool     `json:"isLiked"`       // 当前用户切换后的点赞状态
}

// MapCommentToVO 将评论实体转换为响应 VO。
// - likerIDs 为 nil 时输出空切片，保证 JSON 中 likes 恒为数组。
func MapCommentToVO(comment *entities.Comment, likerIDs []uint64, author *AuthorVO) *CommentVO {
	if comment == nil {
		return nil
	}
	if likerIDs == nil {
		likerIDs = []uint64{}
	}
	return &CommentVO{
		ID:            comment.ID,
		Content:       comment.Content,
		PostID:        comment.PostID,
		AuthorID:      comment.AuthorID,
		Likes:         likerIDs,
		NumberOfLikes: len(likerIDs),
		Author:        author,
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}
}
