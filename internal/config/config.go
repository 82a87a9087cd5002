package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3001
	defaultEnv        = "development"
	defaultDSN        = "root:password@tcp(127.0.0.1:3306)/journal?charset=utf8mb4&parseTime=True&loc=UTC"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultTokenTTL   = 72
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment variable overrides for container deployments.
type AppConfig struct {
	Port           int        `yaml:"port"`
	Env            string     `yaml:"env"` // "development" | "production"
	DSN            string     `yaml:"dsn"` // MySQL DSN
	RedisURL       string     `yaml:"redis_url"`
	JWTSecret      string     `yaml:"jwt_secret"`
	TokenTTLHours  int        `yaml:"token_ttl_hours"`
	AllowedOrigins []string   `yaml:"allowed_origins"`
	AdminEmail     string     `yaml:"admin_email"` // contact-form notification recipient
	S3             S3Config   `yaml:"s3"`
	SMTP           SMTPConfig `yaml:"smtp"`
}

// S3Config points at the object-storage collaborator holding uploaded files.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"` // empty = AWS default for region
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"` // public URL prefix, e.g. CDN
	PathStyle       bool   `yaml:"path_style"`
}

// SMTPConfig configures notification mail.
type SMTPConfig struct {
	Enable        bool   `yaml:"enable"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Pass          string `yaml:"pass"`
	From          string `yaml:"from"`
	SkipTLSVerify bool   `yaml:"skip_tls_verify"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file, applies defaults and env overrides.
// A missing file is not an error: defaults plus environment still make a
// runnable development config.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          defaultPort,
		Env:           defaultEnv,
		DSN:           defaultDSN,
		RedisURL:      defaultRedisURL,
		TokenTTLHours: defaultTokenTTL,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = defaultTokenTTL
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	setIfEnv(&cfg.Env, "APP_ENV")
	setIfEnv(&cfg.DSN, "DSN")
	setIfEnv(&cfg.RedisURL, "REDIS_URL")
	setIfEnv(&cfg.JWTSecret, "JWT_SECRET")
	setIfEnv(&cfg.AdminEmail, "ADMIN_EMAIL")
	setIfEnv(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setIfEnv(&cfg.S3.Region, "S3_REGION")
	setIfEnv(&cfg.S3.Bucket, "S3_BUCKET")
	setIfEnv(&cfg.S3.AccessKeyID, "S3_ACCESS_KEY_ID")
	setIfEnv(&cfg.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY")
	setIfEnv(&cfg.S3.CustomDomain, "S3_CUSTOM_DOMAIN")
	setIfEnv(&cfg.SMTP.Host, "SMTP_HOST")
	setIfEnv(&cfg.SMTP.User, "SMTP_USER")
	setIfEnv(&cfg.SMTP.Pass, "SMTP_PASS")
	setIfEnv(&cfg.SMTP.From, "SMTP_FROM")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if os.Getenv("SMTP_ENABLE") == "1" {
		cfg.SMTP.Enable = true
	}
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
