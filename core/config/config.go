package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App       AppConfig
	Paths     PathsConfig
	Database  DatabaseConfig
	AI        AIConfig
	LinkedIn  LinkedInConfig
	ImageGen  ImageGenConfig
	Scheduler SchedulerConfig
	Workers   WorkerPoolConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	BaseUrl            string
	CorsAllowedOrigins []string
}

type PathsConfig struct {
	BaseDir  string
	Storages string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string // File path for SQLite, DB Name for Postgres
	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

type AIConfig struct {
	Provider     string // "gemini" or "openai"
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Timezone     string
}

type LinkedInConfig struct {
	APIBase string
}

type ImageGenConfig struct {
	WorkerURL string
	APIKey    string
}

type SchedulerConfig struct {
	WindowMinutes     int
	TriggerInterval   time.Duration
	GenerationTimeout time.Duration
	PublishTimeout    time.Duration
}

type WorkerPoolConfig struct {
	Size      int
	QueueSize int
}

// Global provides access to the loaded configuration globally (Migration Helper)
var Global *Config

// LoadConfig loads configuration from Environment Variables or defaults.
func LoadConfig() (*Config, error) {
	baseDir := getEnv("APP_BASE_DIR", "storages")

	debug := false
	if v := os.Getenv("APP_DEBUG"); v == "true" || v == "1" || v == "on" {
		debug = true
	} else if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		debug = true
	}

	var basicAuth []string
	if v := os.Getenv("APP_BASIC_AUTH"); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	cors_origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("APP_CORS_ALLOWED_ORIGINS"); v != "" {
		cors_origins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.0.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              debug,
		Environment:        getEnv("APP_ENV", "development"),
		BasicAuth:          basicAuth,
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: cors_origins,
	}
	if v := os.Getenv("APP_TRUSTED_PROXIES"); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	pathsCfg := PathsConfig{
		BaseDir:  baseDir,
		Storages: baseDir,
	}

	dbCfg := DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "sqlite"),
		Name:            getEnv("DB_NAME", filepath.Join(pathsCfg.Storages, "app.db")),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "azpost:"),
	}

	aiCfg := AIConfig{
		Provider:     strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		Timezone:     getEnv("AI_TIMEZONE", ""),
	}

	schedCfg := SchedulerConfig{
		WindowMinutes:     getEnvInt("SCHEDULER_WINDOW_MINUTES", 5),
		TriggerInterval:   time.Duration(getEnvInt("SCHEDULER_TRIGGER_INTERVAL_SECONDS", 60)) * time.Second,
		GenerationTimeout: time.Duration(getEnvInt("SCHEDULER_GENERATION_TIMEOUT_SECONDS", 60)) * time.Second,
		PublishTimeout:    time.Duration(getEnvInt("SCHEDULER_PUBLISH_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	cfg := &Config{
		App:      appCfg,
		Paths:    pathsCfg,
		Database: dbCfg,
		AI:       aiCfg,
		LinkedIn: LinkedInConfig{
			APIBase: getEnv("LINKEDIN_API_BASE", "https://api.linkedin.com"),
		},
		ImageGen: ImageGenConfig{
			WorkerURL: getEnv("IMAGE_WORKER_URL", ""),
			APIKey:    getEnv("IMAGE_WORKER_API_KEY", ""),
		},
		Scheduler: schedCfg,
		Workers: WorkerPoolConfig{
			Size:      getEnvInt("PUBLISH_WORKER_POOL_SIZE", 8),
			QueueSize: getEnvInt("PUBLISH_WORKER_QUEUE_SIZE", 256),
		},
	}

	Global = cfg
	return cfg, nil
}
