package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
	Backends BackendConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	SeedMockEvents  bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SessionConfig 模擬登入的設定：持久化的 key 名稱與人工延遲
// StorageKey 為空時使用 session.DefaultStorageKey
type SessionConfig struct {
	StorageKey    string
	Delay         time.Duration
	DefaultAvatar string
}

// AuthConfig token 只綁定目前 session，不設期限
type AuthConfig struct {
	JWTSecret string
}

// BackendConfig 決定 catalog / session slot / queue 使用哪種實作
type BackendConfig struct {
	Catalog string
	Session string
	Queue   string
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時直接使用環境變數
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Session:  GetSessionConfig(),
		Auth:     GetAuthConfig(),
		Backends: GetBackendConfig(),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server: ServerConfig{
			Port:            "0",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: time.Second,
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Session: SessionConfig{
			Delay:         0, // 測試不等待
			DefaultAvatar: DefaultAvatar,
		},
		Auth: AuthConfig{
			JWTSecret: "test-secret",
		},
		Backends: BackendConfig{
			Catalog: BackendMemory,
			Session: BackendMemory,
			Queue:   BackendMemory,
		},
		LogLevel: "debug",
	}
}

const DefaultAvatar = "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=1"

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "http://localhost:5173"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		SeedMockEvents:  getEnvAsBool("SEED_MOCK_EVENTS", true),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetSessionConfig() SessionConfig {
	return SessionConfig{
		StorageKey:    getEnv("SESSION_KEY", ""),
		Delay:         getEnvAsDuration("SESSION_DELAY", time.Second),
		DefaultAvatar: getEnv("DEFAULT_AVATAR", DefaultAvatar),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
	}
}

func GetBackendConfig() BackendConfig {
	return BackendConfig{
		Catalog: getEnv("CATALOG_BACKEND", BackendMemory),
		Session: getEnv("SESSION_BACKEND", BackendMemory),
		Queue:   getEnv("QUEUE_BACKEND", BackendMemory),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvAsList(key, fallback string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
