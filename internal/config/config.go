package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Upload
		Staging
		PluginFields
		Audit
		Session
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Upload struct {
		MaxBytes int64 // Maximum accepted upload size
	}
	Staging struct {
		TTL             time.Duration // How long staged uploads survive
		CleanupSchedule string        // Cron format: "0 * * * *" = hourly
	}
	PluginFields struct {
		Enabled bool
	}
	Audit struct {
		Dir string
	}
	Session struct {
		CSRFSecret    string
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8199)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("upload_max_bytes", DefaultUploadMaxBytes)
	v.SetDefault("staging_ttl", "1h")
	v.SetDefault("staging_cleanup_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("plugin_fields_enabled", true)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("csrf_secret", "") // CSRF protection disabled if empty
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Upload: Upload{
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Staging: Staging{
			TTL:             v.GetDuration("STAGING_TTL"),
			CleanupSchedule: v.GetString("STAGING_CLEANUP_SCHEDULE"),
		},
		PluginFields: PluginFields{
			Enabled: v.GetBool("PLUGIN_FIELDS_ENABLED"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Session: Session{
			CSRFSecret:    v.GetString("CSRF_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
