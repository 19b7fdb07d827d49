package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Ayrshare AyrshareConfig `mapstructure:"ayrshare"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志配置，Address 为空时仅输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// AyrshareConfig 社媒聚合网关配置
type AyrshareConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Domain     string `mapstructure:"domain"`      // generateJWT 使用的业务域名
	Timeout    int    `mapstructure:"timeout"`     // 单次请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 传输层失败的重试次数
}

// SyncConfig 同步任务配置
type SyncConfig struct {
	Concurrency int    `mapstructure:"concurrency"` // 批量同步并发上限，默认 1（串行）
	LockTTL     int    `mapstructure:"lock_ttl"`    // 单帖同步锁过期时间（秒）
	CronSpec    string `mapstructure:"cron_spec"`   // 定时同步表达式，默认 @hourly
}
