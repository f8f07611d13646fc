package events

import "time"

// PostData 是文章事件中承载的核心数据。
type PostData struct {
	ID       uint64 `json:"id"`       // 文章ID
	Title    string `json:"title"`    // 标题
	Slug     string `json:"slug"`     // URL 唯一标识
	Category string `json:"category"` // 分类
	AuthorID uint64 `json:"authorId"` // 作者ID
}

// PostCreatedEvent 文章创建事件。
type PostCreatedEvent struct {
	EventID   string    `json:"eventId"`   // 事件唯一ID
	Timestamp time.Time `json:"timestamp"` // 事件发生时间
	Post      PostData  `json:"post"`      // 文章核心数据
}

// PostUpdatedEvent 文章更新事件。
type PostUpdatedEvent struct {
	EventID   string    `json:"eventId"`
	Timestamp time.Time `json:"timestamp"`
	Post      PostData  `json:"post"`
}

// PostDeletedEvent 文章删除事件。
type PostDeletedEvent struct {
	EventID   string    `json:"eventId"`
	Timestamp time.Time `json:"timestamp"`
	PostID    uint64    `json:"postId"` // 被删除的文章ID
}
