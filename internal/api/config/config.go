package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	Cfg = &cfg

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Auth.JWTExpireHours == 0 {
		c.Auth.JWTExpireHours = 24
	}
	if c.Leaderboard.SnapshotWindowHours == 0 {
		c.Leaderboard.SnapshotWindowHours = 24
	}
	if c.Leaderboard.DefaultPageSize == 0 {
		c.Leaderboard.DefaultPageSize = 20
	}
	if c.Leaderboard.MaxPageSize == 0 {
		c.Leaderboard.MaxPageSize = 100
	}
}
