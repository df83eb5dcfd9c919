package config

const (
	EnvPrefix = "FOODSAVER"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv   = "FOODSAVER_APP_ENV"
	EnvPort     = "FOODSAVER_APP_PORT"
	EnvLogLevel = "FOODSAVER_LOG_LEVEL"
	EnvDBPath   = "FOODSAVER_DB_PATH"

	EnvSMTPHost     = "FOODSAVER_SMTP_HOST"
	EnvSMTPPort     = "FOODSAVER_SMTP_PORT"
	EnvSMTPUsername = "FOODSAVER_SMTP_USERNAME"
	EnvSMTPPassword = "FOODSAVER_SMTP_PASSWORD"
	EnvSMTPFrom     = "FOODSAVER_SMTP_FROM"
	EnvSMTPTo       = "FOODSAVER_SMTP_TO"

	EnvReminderHorizonDays     = "FOODSAVER_REMINDER_HORIZON_DAYS"
	EnvReminderIntervalMinutes = "FOODSAVER_REMINDER_INTERVAL_MINUTES"
	EnvAutoReminders           = "FOODSAVER_AUTO_REMINDERS"
)
