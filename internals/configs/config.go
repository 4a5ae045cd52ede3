package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is built once at startup and passed down explicitly.
type Config struct {
	AppName    string `env:"APP_NAME" envDefault:"fisiocatania"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	Port       string `env:"PORT" envDefault:"3000"`
	ClinicName string `env:"CLINIC_NAME" envDefault:"Staff Medico"`
	Timezone   string `env:"TIMEZONE" envDefault:"Europe/Rome"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTTTL       time.Duration `env:"JWT_TTL" envDefault:"12h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// purge of expired token_blacklist rows
	BlacklistCleanupCron string `env:"TOKEN_BLACKLIST_CLEANUP_CRON" envDefault:"@hourly"`

	// cascade | detach
	OperatorDeletePolicy string `env:"OPERATOR_DELETE_POLICY" envDefault:"cascade"`
	PDFLogoPath          string `env:"PDF_LOGO_PATH"`

	Database DatabaseConfig `envPrefix:"DB_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	Media    MediaConfig    `envPrefix:"MEDIA_"`
	OSS      OSSConfig      `envPrefix:"ALI_OSS_"`
	S3       S3Config       `envPrefix:"S3_"`
	Reaper   ReaperConfig   `envPrefix:"REAPER_"`
}

type DatabaseConfig struct {
	URL      string `env:"URL"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	MaxOpen  int    `env:"MAX_OPEN" envDefault:"20"`
	MaxIdle  int    `env:"MAX_IDLE" envDefault:"10"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Dir         string `env:"DIR" envDefault:"./logs"`
	FileEnabled bool   `env:"FILE_ENABLED" envDefault:"false"`
}

type MediaConfig struct {
	// oss | s3 | none
	Driver string `env:"DRIVER" envDefault:"none"`
	Prefix string `env:"PREFIX" envDefault:"fisiocatania"`
}

type OSSConfig struct {
	Endpoint      string `env:"ENDPOINT"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	SecurityToken string `env:"SECURITY_TOKEN"`
	Bucket        string `env:"BUCKET"`
	PublicBase    string `env:"PUBLIC_BASE"`
}

type S3Config struct {
	Bucket     string `env:"BUCKET"`
	Endpoint   string `env:"ENDPOINT"`
	PublicBase string `env:"PUBLIC_BASE"`
	PathStyle  bool   `env:"PATH_STYLE" envDefault:"true"`
}

type ReaperConfig struct {
	Enabled       bool   `env:"ENABLED" envDefault:"false"`
	Cron          string `env:"CRON" envDefault:"15 2 * * *"`
	RetentionDays int    `env:"RETENTION_DAYS" envDefault:"7"`
	DryRun        bool   `env:"DRY_RUN" envDefault:"false"`
}

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env (outside Railway) and parses the process environment.
func LoadEnv() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("no .env file found, using system environment")
		} else {
			log.Info().Msg(".env file loaded")
		}
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.OperatorDeletePolicy = strings.ToLower(strings.TrimSpace(cfg.OperatorDeletePolicy))
	switch cfg.OperatorDeletePolicy {
	case "cascade", "detach":
	default:
		return nil, fmt.Errorf("OPERATOR_DELETE_POLICY must be cascade or detach, got %q", cfg.OperatorDeletePolicy)
	}
	cfg.Media.Driver = strings.ToLower(strings.TrimSpace(cfg.Media.Driver))
	return &cfg, nil
}

// RequireServe checks the keys the HTTP server cannot run without.
func (c *Config) RequireServe() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	return nil
}

// DSN builds the postgres connection string; DB_URL wins when set.
func (d DatabaseConfig) DSN() string {
	if strings.TrimSpace(d.URL) != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=fisiocatania",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Location resolves TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	log.Warn().Str("timezone", c.Timezone).Msg("unknown timezone, using UTC")
	return time.UTC
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
