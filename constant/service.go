package constant

// 服务标识，用于链路追踪与日志归属
const (
	ServiceName    = "blog_service"
	ServiceVersion = "1.0.0"
)

// Gin 上下文 Key，由认证中间件写入，供控制器读取
const (
	// ContextKeyUserID 保存已认证调用者的用户ID (uint64)。
	ContextKeyUserID = "userID"
	// ContextKeyIsAdmin 保存已认证调用者的管理员标志 (bool)。
	ContextKeyIsAdmin = "isAdmin"
	// ContextKeyTokenID 保存当前访问令牌的 jti，登出时用于吊销。
	ContextKeyTokenID = "tokenID"
	// ContextKeyTokenExpiry 保存当前访问令牌的过期时间 (time.Time)，
	// 吊销记录只需保留到令牌自然过期为止。
	ContextKeyTokenExpiry = "tokenExpiry"
)

// AccessTokenCookie 是携带会话令牌的 HttpOnly Cookie 名称。
// 前端不直接读取该 Cookie，仅由浏览器自动回传。
const AccessTokenCookie = "access_token"
