package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// UserResponseWrapper 对应 response.APIResponse[vo.UserVO]
type UserResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    UserVO `json:"data"` // 使用具体的 vo.UserVO
}

// UserListResponseWrapper 对应 response.APIResponse[vo.UserListVO]
type UserListResponseWrapper struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    UserListVO `json:"data"` // 使用具体的 vo.UserListVO
}

// PostResponseWrapper 对应 response.APIResponse[vo.PostVO]
type PostResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    PostVO `json:"data"` // 使用具体的 vo.PostVO
}

// PostListResponseWrapper 对应 response.APIResponse[vo.PostListVO]
type PostListResponseWrapper struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    PostListVO `json:"data"` // 使用具体的 vo.PostListVO
}

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentVO]
type CommentResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    CommentVO `json:"data"` // 使用具体的 vo.CommentVO
}

// CommentListResponseWrapper 对应 response.APIResponse[[]vo.CommentVO]
type CommentListResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    []*CommentVO `json:"data"` // 评论列表
}

// LikeToggleResponseWrapper 对应 response.APIResponse[vo.LikeToggleVO]
type LikeToggleResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    LikeToggleVO `json:"data"` // 使用具体的 vo.LikeToggleVO
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
