package configs

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"studiotrack_backend/internals/features/workflow"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"RAILWAY_ENVIRONMENT"`
	Variant     string `env:"APP_VARIANT" envDefault:"bernie"`

	// DATABASE_URL wins over the DB_* parts when set.
	DatabaseURL          string        `env:"DATABASE_URL"`
	DBHost               string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort               string        `env:"DB_PORT" envDefault:"5432"`
	DBUser               string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword           string        `env:"DB_PASSWORD"`
	DBName               string        `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode            string        `env:"DB_SSLMODE" envDefault:"require"`
	DBStatementTimeoutMS int           `env:"DB_STATEMENT_TIMEOUT_MS" envDefault:"3000"`
	DBConnectMaxWait     time.Duration `env:"DB_CONNECT_MAX_WAIT" envDefault:"30s"`

	JWTSecret          string        `env:"JWT_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"true"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`

	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	LogDir    string `env:"LOG_DIR" envDefault:"./logs"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	SMTPHost         string        `env:"SMTP_HOST"`
	SMTPPort         int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser         string        `env:"SMTP_USER"`
	SMTPPassword     string        `env:"SMTP_PASSWORD"`
	SMTPFrom         string        `env:"SMTP_FROM" envDefault:"no-reply@studiotrack.local"`
	MailPerMinute    int           `env:"MAIL_PER_MINUTE" envDefault:"10"`
	AppBaseURL       string        `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	PasswordResetTTL time.Duration `env:"PASSWORD_RESET_TTL" envDefault:"1h"`
	RevokedTTLDays   int           `env:"REVOKED_TOKEN_TTL_DAYS" envDefault:"7"`
	CleanupSchedule  string        `env:"CLEANUP_SCHEDULE" envDefault:"@daily"`

	OSSEndpoint        string `env:"ALI_OSS_ENDPOINT"`
	OSSAccessKeyID     string `env:"ALI_OSS_ACCESS_KEY"`
	OSSAccessKeySecret string `env:"ALI_OSS_SECRET_KEY"`
	OSSBucket          string `env:"ALI_OSS_BUCKET"`
	OSSPublicBase      string `env:"ALI_OSS_PUBLIC_BASE"`
	UploadDir          string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UploadPublicPath   string `env:"UPLOAD_PUBLIC_PATH" envDefault:"/uploads"`

	SeedUsersFile string `env:"SEED_USERS_FILE"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system environment")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system environment")
	}
	return Parse()
}

// Parse reads the process environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if _, err := workflow.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) AppVariant() workflow.Variant {
	v, err := workflow.ParseVariant(c.Variant)
	if err != nil {
		return workflow.VariantBernie
	}
	return v
}

// DSN builds the connection string with a server-side statement timeout.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("application_name", "studiotrack")
	if c.DBStatementTimeoutMS > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", c.DBStatementTimeoutMS))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }

func (c *Config) OSSEnabled() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKeyID != "" && c.OSSAccessKeySecret != "" && c.OSSBucket != ""
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
