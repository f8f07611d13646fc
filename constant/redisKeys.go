package constant

// Redis Key 相关常量 (导出)
const (
	// RevokedTokenPrefix 是已吊销访问令牌的 Key 前缀。
	// 用户登出或被删除时，其令牌的 jti 会写入 Redis 并保留到令牌自然过期。
	// 认证中间件在验签通过后会再检查该 Key 是否存在。
	// 示例 Key: "revoked_token:7e0c3f1a-..." (其中后缀是令牌的 jti)
	// Redis 类型: String，值固定为 "1"，依赖 TTL 自动清理
	RevokedTokenPrefix = "revoked_token:"
)
