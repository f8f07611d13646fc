package dto

// CreateCommentRequest 定义了发表评论的请求数据结构。
// - userId 必须与当前登录用户一致，服务层会做防伪校验。
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=200"` // 评论内容，最长 200 字符
	PostID  uint64 `json:"postId" binding:"required"`          // 所属文章 ID
	UserID  uint64 `json:"userId" binding:"required"`          // 声明的评论作者 ID
}

// EditCommentRequest 定义了编辑评论的请求数据结构。
type EditCommentRequest struct {
	Content string `json:"content" binding:"required,max=200"`
}
