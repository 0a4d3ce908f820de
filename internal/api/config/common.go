package config

// Config 配置主体
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	DB          DBConfig          `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Logstash    LogstashConfig    `mapstructure:"logstash"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Policy      PolicyConfig      `mapstructure:"policy"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
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

// LogstashConfig 远程日志上报，address 为空则关闭
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpireHours int    `mapstructure:"jwt_expire_hours"`
}

// PolicyConfig 自评与邮箱域名限制做成配置，不写死在代码里
type PolicyConfig struct {
	AllowSelfRating    bool   `mapstructure:"allow_self_rating"`
	AllowedEmailDomain string `mapstructure:"allowed_email_domain"`
}

type LeaderboardConfig struct {
	SnapshotWindowHours int `mapstructure:"snapshot_window_hours"`
	DefaultPageSize     int `mapstructure:"default_page_size"`
	MaxPageSize         int `mapstructure:"max_page_size"`
}
