package config

// JWTConfig 会话令牌签发配置。
// 令牌以 HttpOnly Cookie 下发，负载仅包含 {用户ID, 管理员标志, jti}。
type JWTConfig struct {
	// Secret HS256 签名密钥，生产环境必须配置为强随机值。
	Secret string `mapstructure:"secret" json:"secret" yaml:"secret"`
	// ExpireHours 令牌有效期（小时），默认 168 (7 天)。
	ExpireHours int `mapstructure:"expire_hours" json:"expire_hours" yaml:"expire_hours"`
	// CookieSecure 是否要求 Cookie 仅通过 HTTPS 传输。
	CookieSecure bool `mapstructure:"cookie_secure" json:"cookie_secure" yaml:"cookie_secure"`
}

// PurgeConfig 软删除清理任务配置。
type PurgeConfig struct {
	// RetentionDays 覆盖默认保留天数，0 表示使用 constant.PurgeRetentionDays。
	RetentionDays int `mapstructure:"retention_days" json:"retention_days" yaml:"retention_days"`
}
