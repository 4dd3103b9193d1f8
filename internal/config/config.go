package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
	StoreSheets = "sheets"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	App        AppConfig        `toml:"app"`
	Auth       AuthConfig       `toml:"auth"`
	LLM        LLMConfig        `toml:"llm"`
	Store      StoreConfig      `toml:"store"`
	MySQL      MySQLConfig      `toml:"mysql"`
	Sheets     SheetsConfig     `toml:"sheets"`
	Redis      RedisConfig      `toml:"redis"`
	RabbitMQ   RabbitMQConfig   `toml:"rabbitmq"`
	Submission SubmissionConfig `toml:"submission"`
	Teachers   []TeacherConfig  `toml:"teachers"`
}

type AppConfig struct {
	Name     string `toml:"name"`
	Env      string `toml:"env"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	GinMode  string `toml:"gin_mode"`
	LogLevel string `toml:"log_level"`
}

type AuthConfig struct {
	JWTSecret             string `toml:"jwt_secret"`
	SessionExpireMinute   int    `toml:"session_expire_minute"`
	CookieName            string `toml:"cookie_name"`
	StudentPassword       string `toml:"student_password"`
	TeacherSharedPassword string `toml:"teacher_shared_password"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type StoreConfig struct {
	Backend        string `toml:"backend"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

type SheetsConfig struct {
	SpreadsheetID   string `toml:"spreadsheet_id"`
	SheetName       string `toml:"sheet_name"`
	CredentialsFile string `toml:"credentials_file"`
}

// RedisConfig leaves Addr empty to keep revoked sessions in process memory.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RabbitMQConfig leaves URL empty to disable submission notifications.
type RabbitMQConfig struct {
	URL         string `toml:"url"`
	NotifyQueue string `toml:"notify_queue"`
}

type SubmissionConfig struct {
	AllowFreeTextRecipient bool `toml:"allow_free_text_recipient"`
	RequireStudentLogin    bool `toml:"require_student_login"`
	MaxContentRunes        int  `toml:"max_content_runes"`
}

// TeacherConfig is one row of the directory table. Password is hashed at
// startup when PasswordHash is empty.
type TeacherConfig struct {
	ID           string `toml:"id"`
	DisplayName  string `toml:"display_name"`
	Email        string `toml:"email"`
	PasswordHash string `toml:"password_hash"`
	Password     string `toml:"password"`
}

// Load resolves configuration once: defaults, then .env, then the TOML file,
// then process environment.
func Load() (*Config, error) {
	cfg := defaultConfig()

	envFile := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, &ConfigurationError{Field: "ENV_FILE", Reason: fmt.Sprintf("load %s failed: %v", envFile, err)}
		}
	}

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, &ConfigurationError{Field: "CONFIG_FILE", Reason: fmt.Sprintf("decode config file failed: %v", err)}
		}
	}

	overrideByEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	cfg := defaultConfig()
	normalize(cfg)
	return cfg
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.DB,
		c.MySQL.Params,
	)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "univoice",
			Env:      "dev",
			Host:     "0.0.0.0",
			Port:     8080,
			GinMode:  "debug",
			LogLevel: "info",
		},
		Auth: AuthConfig{
			JWTSecret:           "change-me-in-production",
			SessionExpireMinute: 120,
			CookieName:          "univoice_session",
		},
		LLM: LLMConfig{
			Provider:       ProviderGemini,
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:          "gemini-2.0-flash",
			TimeoutSeconds: 30,
		},
		Store: StoreConfig{
			Backend:        StoreMemory,
			TimeoutSeconds: 15,
		},
		MySQL: MySQLConfig{
			Host:   "127.0.0.1",
			Port:   3306,
			User:   "root",
			DB:     "univoice",
			Params: "parseTime=true&loc=Local&charset=utf8mb4",
		},
		Sheets: SheetsConfig{
			SheetName:       "Sheet1",
			CredentialsFile: "configs/service_account.json",
		},
		RabbitMQ: RabbitMQConfig{
			NotifyQueue: "univoice.submission.notify",
		},
		Submission: SubmissionConfig{
			MaxContentRunes: 2000,
		},
		Teachers: []TeacherConfig{
			{ID: "tanaka", DisplayName: "田中先生", Email: "tanaka@university.ac.jp"},
			{ID: "sato", DisplayName: "佐藤先生", Email: "sato@university.ac.jp"},
			{ID: "suzuki", DisplayName: "鈴木先生", Email: "suzuki@university.ac.jp"},
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.LogLevel = getEnv("LOG_LEVEL", cfg.App.LogLevel)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.SessionExpireMinute = getEnvAsInt("SESSION_EXPIRE_MINUTE", cfg.Auth.SessionExpireMinute)
	cfg.Auth.CookieName = getEnv("SESSION_COOKIE_NAME", cfg.Auth.CookieName)
	cfg.Auth.StudentPassword = getEnv("STUDENT_PASSWORD", cfg.Auth.StudentPassword)
	cfg.Auth.TeacherSharedPassword = getEnv("TEACHER_SHARED_PASSWORD", cfg.Auth.TeacherSharedPassword)

	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.TimeoutSeconds = getEnvAsInt("LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)
	// GOOGLE_API_KEY is the name the Gemini tooling uses; LLM_API_KEY wins.
	cfg.LLM.APIKey = getEnv("GOOGLE_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)

	cfg.Store.Backend = getEnv("STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.TimeoutSeconds = getEnvAsInt("STORE_TIMEOUT_SECONDS", cfg.Store.TimeoutSeconds)

	cfg.MySQL.Host = getEnv("MYSQL_HOST", cfg.MySQL.Host)
	cfg.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.MySQL.Port)
	cfg.MySQL.User = getEnv("MYSQL_USER", cfg.MySQL.User)
	cfg.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.MySQL.Password)
	cfg.MySQL.DB = getEnv("MYSQL_DB", cfg.MySQL.DB)
	cfg.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.MySQL.Params)

	cfg.Sheets.SpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", cfg.Sheets.SpreadsheetID)
	cfg.Sheets.SheetName = getEnv("SHEETS_SHEET_NAME", cfg.Sheets.SheetName)
	cfg.Sheets.CredentialsFile = getEnv("SHEETS_CREDENTIALS_FILE", cfg.Sheets.CredentialsFile)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.NotifyQueue = getEnv("RABBITMQ_NOTIFY_QUEUE", cfg.RabbitMQ.NotifyQueue)

	cfg.Submission.AllowFreeTextRecipient = getEnvAsBool("SUBMISSION_ALLOW_FREE_TEXT_RECIPIENT", cfg.Submission.AllowFreeTextRecipient)
	cfg.Submission.RequireStudentLogin = getEnvAsBool("SUBMISSION_REQUIRE_STUDENT_LOGIN", cfg.Submission.RequireStudentLogin)
	cfg.Submission.MaxContentRunes = getEnvAsInt("SUBMISSION_MAX_CONTENT_RUNES", cfg.Submission.MaxContentRunes)
}

func normalize(cfg *Config) {
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	cfg.LLM.APIKey = strings.TrimSpace(cfg.LLM.APIKey)
	if cfg.LLM.TimeoutSeconds <= 0 {
		cfg.LLM.TimeoutSeconds = 30
	}
	if cfg.Store.TimeoutSeconds <= 0 {
		cfg.Store.TimeoutSeconds = 15
	}
	if cfg.Auth.SessionExpireMinute <= 0 {
		cfg.Auth.SessionExpireMinute = 120
	}
	for i := range cfg.Teachers {
		cfg.Teachers[i].ID = strings.TrimSpace(cfg.Teachers[i].ID)
		cfg.Teachers[i].DisplayName = strings.TrimSpace(cfg.Teachers[i].DisplayName)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
