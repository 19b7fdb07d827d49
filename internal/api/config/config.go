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

	applyDefaults(&cfg)
	Cfg = &cfg

	return nil
}

// applyDefaults 填充未配置项的默认值
func applyDefaults(cfg *Config) {
	if cfg.Ayrshare.BaseURL == "" {
		cfg.Ayrshare.BaseURL = "https://api.ayrshare.com/api"
	}
	if cfg.Ayrshare.Timeout <= 0 {
		cfg.Ayrshare.Timeout = 30
	}
	if cfg.Ayrshare.RetryCount < 0 {
		cfg.Ayrshare.RetryCount = 0
	}
	if cfg.Sync.Concurrency <= 0 {
		cfg.Sync.Concurrency = 1
	}
	if cfg.Sync.LockTTL <= 0 {
		cfg.Sync.LockTTL = 60
	}
}
