package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// ElevenLabsConfig 外部语音 Agent 服务配置
type ElevenLabsConfig struct {
	APIKey         string `mapstructure:"api_key"`  // 服务端兜底密钥,请求体可覆盖
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// CacheConfig 公开页面查询缓存配置(Redis,可选)
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// LoadConfig 加载配置文件
func LoadConfig(configFile string) (*Config, error) {
	// 加载 .env 文件(如果存在)
	_ = godotenv.Load()

	v := viper.New()

	// 设置配置文件
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// 默认配置文件搜索路径
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.voicedesk")
		v.AddConfigPath("/etc/voicedesk")
	}

	// 支持环境变量
	v.SetEnvPrefix("VOICEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果是找不到配置文件，则使用默认配置
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 替换环境变量
	expandEnvVars(&config)

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// Server 默认配置
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.debug", false)

	// Database 默认配置
	v.SetDefault("database.path", "./data/voicedesk.db")

	// Auth 默认配置
	v.SetDefault("auth.token_ttl_hours", 24)

	// ElevenLabs 默认配置
	v.SetDefault("elevenlabs.base_url", "https://api.elevenlabs.io")
	v.SetDefault("elevenlabs.timeout_seconds", 30)

	// Cache 默认配置
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "127.0.0.1:6379")
	v.SetDefault("cache.ttl_seconds", 300)
}

// expandEnvVars 展开环境变量
func expandEnvVars(config *Config) {
	config.Auth.JWTSecret = os.ExpandEnv(config.Auth.JWTSecret)
	config.ElevenLabs.APIKey = os.ExpandEnv(config.ElevenLabs.APIKey)
	config.Cache.Password = os.ExpandEnv(config.Cache.Password)
}
