package dto

// CreatePostRequest 定义了创建文章的请求数据结构。
// - 请求体为 multipart/form-data，封面图片以 "image" 字段上传，可选。
type CreatePostRequest struct {
	Title    string `form:"title" binding:"required,max=255"`      // 文章标题，必需；slug 由标题派生
	Content  string `form:"content" binding:"required"`            // 文章正文（富文本 HTML）
	Category string `form:"category" binding:"omitempty,max=100"`  // 分类，默认 "uncategorized"
}

// UpdatePostRequest 定义了更新文章的请求数据结构。
// - 所有字段可选，仅更新提供的字段；slug 保持稳定，不随标题变化。
type UpdatePostRequest struct {
	Title    string `form:"title" binding:"omitempty,max=255"`
	Content  string `form:"content" binding:"omitempty"`
	Category string `form:"category" binding:"omitempty,max=100"`
}

// ListPostsRequest 定义了查询文章列表的请求数据结构。
// - 所有过滤条件均为可选，可任意组合；searchTerm 同时模糊匹配标题与正文。
type ListPostsRequest struct {
	StartIndex int     `form:"startIndex" binding:"omitempty,gte=0"`    // 偏移量，默认 0
	Limit      int     `form:"limit" binding:"omitempty,gte=1,lte=100"` // 每页数量，默认 9
	Order      string  `form:"order" binding:"omitempty,oneof=asc desc"`
	UserID     *uint64 `form:"userId" binding:"omitempty"`   // 按作者 ID 过滤
	Category   *string `form:"category" binding:"omitempty"` // 按分类过滤
	Slug       *string `form:"slug" binding:"omitempty"`     // 按 slug 精确匹配
	PostID     *uint64 `form:"postId" binding:"omitempty"`   // 按文章 ID 精确匹配
	SearchTerm *string `form:"searchTerm" binding:"omitempty,max=255"`
}

// GetOffset 返回分页偏移量。
func (d *ListPostsRequest) GetOffset() int {
	if d.StartIndex < 0 {
		return 0
	}
	return d.StartIndex
}

// GetLimit 返回每页数量，未提供时使用默认值 9。
func (d *ListPostsRequest) GetLimit() int {
	if d.Limit <= 0 {
		return 9
	}
	return d.Limit
}

// SortAscending 返回是否按更新时间升序。
func (d *ListPostsRequest) SortAscending() bool {
	return d.Order == "asc"
}
