package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	SMTP         SMTPConfig
	Reminder     ReminderConfig
	FeatureFlags FeatureFlagsConfig
	SecretKey    string `envconfig:"FOODSAVER_SECRET_KEY" default:"dev-secret"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODSAVER_APP_ENV" default:"dev"`
	Port         string `envconfig:"FOODSAVER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FOODSAVER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODSAVER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path string `envconfig:"FOODSAVER_DB_PATH" default:"food_saver.db"`

	MaxOpenConns    int           `envconfig:"FOODSAVER_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"FOODSAVER_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"FOODSAVER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODSAVER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// SMTPConfig carries the reminder email transport settings. All fields are
// optional; an incomplete configuration disables outbound email entirely.
type SMTPConfig struct {
	Host     string        `envconfig:"FOODSAVER_SMTP_HOST"`
	Port     int           `envconfig:"FOODSAVER_SMTP_PORT" default:"587"`
	Username string        `envconfig:"FOODSAVER_SMTP_USERNAME"`
	Password string        `envconfig:"FOODSAVER_SMTP_PASSWORD"`
	From     string        `envconfig:"FOODSAVER_SMTP_FROM"`
	To       string        `envconfig:"FOODSAVER_SMTP_TO"`
	Timeout  time.Duration `envconfig:"FOODSAVER_SMTP_TIMEOUT" default:"15s"`
}

// Enabled reports whether enough settings are present to dispatch email.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Username != "" && s.Password != "" && s.To != ""
}

// FromAddress returns the sender address, falling back to the username.
func (s SMTPConfig) FromAddress() string {
	if s.From != "" {
		return s.From
	}
	return s.Username
}

// Recipients splits the comma-separated destination list.
func (s SMTPConfig) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(s.To, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

type ReminderConfig struct {
	HorizonDays     int  `envconfig:"FOODSAVER_REMINDER_HORIZON_DAYS" default:"3"`
	IntervalMinutes int  `envconfig:"FOODSAVER_REMINDER_INTERVAL_MINUTES" default:"60"`
	Auto            bool `envconfig:"FOODSAVER_AUTO_REMINDERS" default:"false"`
}

// Interval returns the scheduler cadence as a duration.
func (r ReminderConfig) Interval() time.Duration {
	if r.IntervalMinutes <= 0 {
		return 0
	}
	return time.Duration(r.IntervalMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FOODSAVER_AUTO_MIGRATE" default:"false"`
}
