// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（ipstack 密钥、JWT 密钥）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量可覆盖 YAML 配置
//
// 使用方式：
//   - 开发环境: APP_ENV=dev (默认)
//   - 测试环境: APP_ENV=test
//   - 生产环境: APP_ENV=prod
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server Server   `yaml:"server"`
	Mongo  Mongo    `yaml:"mongo"`
	Redis  Redis    `yaml:"redis"`
	Geo    Geo      `yaml:"geo"`
	Auth   AuthYAML `yaml:"auth"`
}

// Server 运维端口配置（/healthz、/metrics）
type Server struct {
	Port string `yaml:"port"`
}

// Mongo MongoDB 连接配置
type Mongo struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

// Redis Redis 缓存配置
type Redis struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	DB      int    `yaml:"db"`
	Enabled bool   `yaml:"enabled"`
}

// Geo 地理解析配置
type Geo struct {
	NominatimBaseURL string        `yaml:"nominatim_base_url"`
	UserAgent        string        `yaml:"user_agent"`
	IpstackBaseURL   string        `yaml:"ipstack_base_url"`
	ProviderTimeout  time.Duration `yaml:"provider_timeout"`
	CacheTTL         time.Duration `yaml:"cache_ttl"`
}

// AuthYAML 认证相关 YAML 配置（密钥来自 .env）
type AuthYAML struct {
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	BcryptCost      int           `yaml:"bcrypt_cost"`
	ObscureNotFound bool          `yaml:"obscure_not_found"`
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env           Environment
	MongoURI      string
	MongoDatabase string
	RedisURL      string
	RedisEnabled  bool
	APIPort       string
	Geo           Geo
	Auth          AuthYAML
	IpstackAPIKey string
	JWTSecret     string
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load 加载配置
// 1. 加载 .env（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 构建最终配置
func Load() *Config {
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	env := parseEnv(getEnv("APP_ENV", "dev"))

	yamlCfg := loadYAMLConfig(env)

	cfg := &Config{
		Env:           env,
		MongoURI:      getEnv("MONGO_URI", buildMongoURI(yamlCfg.Mongo)),
		MongoDatabase: getEnv("MONGO_DATABASE", yamlCfg.Mongo.Database),
		RedisURL:      getEnv("REDIS_URL", buildRedisURL(yamlCfg.Redis)),
		RedisEnabled:  yamlCfg.Redis.Enabled,
		APIPort:       getEnv("API_PORT", yamlCfg.Server.Port),
		Geo:           yamlCfg.Geo,
		Auth:          yamlCfg.Auth,
		IpstackAPIKey: os.Getenv("IPSTACK_API_KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	return cfg
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml
func loadYAMLConfig(env Environment) *YAMLConfig {
	cfg := &YAMLConfig{
		Server: Server{Port: "8080"},
		Mongo:  Mongo{Host: "localhost", Port: 27017, Database: "nassnews"},
		Redis:  Redis{Host: "localhost", Port: 6379, DB: 0, Enabled: false},
		Geo: Geo{
			NominatimBaseURL: "https://nominatim.openstreetmap.org",
			UserAgent:        "NassNewsApp/1.0",
			IpstackBaseURL:   "http://api.ipstack.com",
			ProviderTimeout:  5 * time.Second,
			CacheTTL:         24 * time.Hour,
		},
		Auth: AuthYAML{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			BcryptCost:      12,
			ObscureNotFound: false,
		},
	}

	for _, base := range configPaths {
		path := filepath.Join(base, "common.yaml")
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range configPaths {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	return cfg
}

// buildMongoURI 构建 MongoDB 连接字符串
func buildMongoURI(m Mongo) string {
	return fmt.Sprintf("mongodb://%s:%d", m.Host, m.Port)
}

// buildRedisURL 构建 Redis 连接字符串
func buildRedisURL(r Redis) string {
	return fmt.Sprintf("redis://%s:%d/%d", r.Host, r.Port, r.DB)
}

func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "test":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsTest 是否为测试环境
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// String 打印配置摘要（不含敏感信息）
func (c *Config) String() string {
	return fmt.Sprintf("env=%s mongo=%s/%s redis=%v port=%s",
		c.Env, c.MongoURI, c.MongoDatabase, c.RedisEnabled, c.APIPort)
}
