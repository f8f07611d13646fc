package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostVO 定义了文章的响应数据结构。
type PostVO struct {
	ID        uint64    `json:"id"`        // 文章ID
	Title     string    `json:"title"`     // 标题
	Slug      string    `json:"slug"`      // URL 友好的唯一标识
	Content   string    `json:"content"`   // 正文（富文本 HTML）
	Category  string    `json:"category"`  // 分类
	Image     string    `json:"image"`     // 封面图片 URL
	AuthorID  uint64    `json:"userId"`    // 作者ID
	CreatedAt time.Time `json:"createdAt"` // 创建时间
	UpdatedAt time.Time `json:"updatedAt"` // 更新时间
}

// PostListVO 定义了文章列表查询的响应结构。
// - totalPosts 与 lastMonthPosts 为全量统计，不随过滤条件变化。
type PostListVO struct {
	Posts          []*PostVO `json:"posts"`          // 当前页的文章列表
	TotalPosts     int64     `json:"totalPosts"`     // 文章总数
	LastMonthPosts int64     `json:"lastMonthPosts"` // 最近一个月新增文章数
}

// MapPostToVO 将文章实体转换为响应 VO。
func MapPostToVO(post *entities.Post) *PostVO {
	if post == nil {
		return nil
	}
	return &PostVO{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		Category:  post.Category,
		Image:     post.Image,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// MapPostsToVOs 将文章实体列表转换为响应 VO 列表。
func MapPostsToVOs(posts []*entities.Post) []*PostVO {
	if len(posts) == 0 {
		return []*PostVO{} // 返回空切片而不是nil，便于前端处理
	}
	vos := make([]*PostVO, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		vos = append(vos, MapPostToVO(post))
	}
	return vos
}
