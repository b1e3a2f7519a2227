package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups every runtime setting of the API server.
type Config struct {
	App       AppConfig
	DB        DBConfig
	HTTP      HTTPConfig
	Session   SessionConfig
	Apply     ApplyConfig
	CVLink    CVLinkConfig
	Razorpay  RazorpayConfig
	Upload    UploadConfig
	SuperUser SuperAdminConfig
}

type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig holds PostgreSQL settings. DatabaseURL wins over the discrete fields when set.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	TimeZone    string
}

// ConnectionString returns DATABASE_URL when present, otherwise a URL built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s&TimeZone=%s", c.SSLMode, url.QueryEscape(c.TimeZone)),
	}
	return u.String()
}

type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns host:port for fiber.App.Listen.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SessionConfig struct {
	TTL time.Duration
	// InternalAPIKey guards POST /auth/session when non-empty.
	InternalAPIKey string
}

// ApplyConfig drives account provisioning for public job applications.
type ApplyConfig struct {
	EmailDomain     string
	DefaultPassword string
}

type CVLinkConfig struct {
	Secret string
	TTL    time.Duration
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

type UploadConfig struct {
	Provider   string // local | s3
	Dir        string
	PublicPath string
	MaxBytes   int64
	S3         S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type SuperAdminConfig struct {
	Email    string
	Password string
}

// Load reads configuration from the environment, optionally overlaid on .env / config.env files.
// Environment variables take precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "uhs-recruit"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "uhs_recruit"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			TimeZone:    getString(v, "DB_TIMEZONE", "Asia/Kolkata"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Session: SessionConfig{
			TTL:            time.Duration(getInt(v, "SESSION_TTL_HOURS", 24*7)) * time.Hour,
			InternalAPIKey: getString(v, "INTERNAL_API_KEY", ""),
		},
		Apply: ApplyConfig{
			EmailDomain:     getString(v, "APPLY_EMAIL_DOMAIN", "apply.uhs.in"),
			DefaultPassword: getString(v, "APPLY_DEFAULT_PASSWORD", "Uhs@12345"),
		},
		CVLink: CVLinkConfig{
			Secret: getString(v, "CV_LINK_SECRET", "change-me-cv-link-secret"),
			TTL:    time.Duration(getInt(v, "CV_LINK_TTL_MINUTES", 60*24*3)) * time.Minute,
		},
		Razorpay: RazorpayConfig{
			KeyID:     getString(v, "RAZORPAY_KEY_ID", ""),
			KeySecret: getString(v, "RAZORPAY_KEY_SECRET", ""),
			BaseURL:   getString(v, "RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		},
		Upload: UploadConfig{
			Provider:   getString(v, "UPLOAD_PROVIDER", "local"),
			Dir:        getString(v, "UPLOAD_DIR", "./public/uploads"),
			PublicPath: getString(v, "UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxBytes:   int64(getInt(v, "UPLOAD_MAX_BYTES", 5*1024*1024)),
			S3: S3Config{
				Bucket:    getString(v, "S3_BUCKET", ""),
				Region:    getString(v, "S3_REGION", "ap-south-1"),
				Endpoint:  getString(v, "S3_ENDPOINT", ""),
				AccessKey: getString(v, "S3_ACCESS_KEY", ""),
				SecretKey: getString(v, "S3_SECRET_KEY", ""),
				PublicURL: getString(v, "S3_PUBLIC_URL", ""),
			},
		},
		SuperUser: SuperAdminConfig{
			Email:    getString(v, "SUPER_ADMIN_EMAIL", ""),
			Password: getString(v, "SUPER_ADMIN_PASSWORD", ""),
		},
	}

	if cfg.Upload.Provider != "local" && cfg.Upload.Provider != "s3" {
		return nil, fmt.Errorf("config: unknown UPLOAD_PROVIDER %q", cfg.Upload.Provider)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}
