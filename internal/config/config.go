package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Cache       CacheConfig       `yaml:"cache"`
	Resolver    ResolverConfig    `yaml:"resolver"`
	Credentials CredentialsConfig `yaml:"credentials"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         int    `yaml:"port"`
	Mode         string `yaml:"mode"` // debug / release
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	TTL int `yaml:"ttl"` // 缓存TTL(秒)
}

// ResolverConfig 解析引擎配置
type ResolverConfig struct {
	RequestTimeout int    `yaml:"request_timeout"` // 单次网络请求超时(秒)
	MaxConcurrent  int    `yaml:"max_concurrent"`  // 最大并发解析数
	UserAgent      string `yaml:"user_agent"`      // 抓取页面使用的UA
}

// CredentialsConfig API凭证配置
//
// 凭证在进程启动时读取一次,通过构造函数注入各策略,
// 策略内部不允许直接读环境变量。
type CredentialsConfig struct {
	YouTubeAPIKey string `yaml:"youtube_api_key"`
	ProxyAPIKey   string `yaml:"proxy_api_key"`
	ProxyAPIHost  string `yaml:"proxy_api_host"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	GlobalRPS int `yaml:"global_rps"`
	IPRPS     int `yaml:"ip_rps"`
	Burst     int `yaml:"burst"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// 从环境变量覆盖配置
	// Redis 配置
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}

	// API 凭证
	if apiKey := os.Getenv("YOUTUBE_API_KEY"); apiKey != "" {
		cfg.Credentials.YouTubeAPIKey = apiKey
	}
	if apiKey := os.Getenv("PROXY_API_KEY"); apiKey != "" {
		cfg.Credentials.ProxyAPIKey = apiKey
	}

	// 设置默认值
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Resolver.RequestTimeout == 0 {
		cfg.Resolver.RequestTimeout = 10
	}
	if cfg.Resolver.MaxConcurrent == 0 {
		cfg.Resolver.MaxConcurrent = 10
	}
	if cfg.Resolver.UserAgent == "" {
		cfg.Resolver.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}
	if cfg.RateLimit.GlobalRPS == 0 {
		cfg.RateLimit.GlobalRPS = 100
	}
	if cfg.RateLimit.IPRPS == 0 {
		cfg.RateLimit.IPRPS = 10
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 20
	}

	return &cfg, nil
}

// GetCacheTTL 获取缓存TTL时间
func (c *CacheConfig) GetCacheTTL() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// GetRequestTimeout 获取单次请求超时时间
func (c *ResolverConfig) GetRequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
