package config

// RedisConfig Redis 连接配置。
// 本服务用 Redis 保存已吊销令牌 (登出/删号后令牌立即失效)，不做读缓存。
type RedisConfig struct {
	Address  string `mapstructure:"address" json:"address" yaml:"address"`    // host:port
	Password string `mapstructure:"password" json:"password" yaml:"password"` // 为空表示无密码
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`                   // 逻辑库编号
	PoolSize int    `mapstructure:"pool_size" json:"pool_size" yaml:"pool_size"`
}
