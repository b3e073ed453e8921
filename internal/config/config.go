package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Server    Server         `mapstructure:"server"`
	Storage   Storage        `mapstructure:"storage"`
	Events    Events         `mapstructure:"events"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Discord   Discord        `mapstructure:"discord"`
	Retry     retry.Strategy `mapstructure:"retry"`
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Storage selects and configures the event store backend.
type Storage struct {
	Driver   string   `mapstructure:"driver"` // "file" or "postgres"
	File     File     `mapstructure:"file"`
	Postgres Postgres `mapstructure:"postgres"`
}

// File holds the file backend configuration.
type File struct {
	Path string `mapstructure:"path"` // path of the JSON record file
}

// Postgres holds connection parameters for the Postgres backend.
type Postgres struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	User    string `mapstructure:"user"`
	Pass    string `mapstructure:"pass"`
	Name    string `mapstructure:"name"`
	SSLMode string `mapstructure:"ssl_mode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Events holds policies applied when users create events.
type Events struct {
	// RolloverPast moves a fire time already in the past to the same
	// wall-clock time one year later instead of rejecting it.
	RolloverPast bool `mapstructure:"rollover_past"`
	// DefaultReminderMinutes are applied when a request specifies no
	// reminder offsets.
	DefaultReminderMinutes []int `mapstructure:"default_reminder_minutes"`
}

// Scheduler holds the polling loop timing configuration.
type Scheduler struct {
	Interval    time.Duration `mapstructure:"interval"`
	Tolerance   time.Duration `mapstructure:"tolerance"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

// Discord holds configuration for delivering channel messages.
type Discord struct {
	Token string `mapstructure:"token"`
}

// DSN returns the PostgreSQL DSN string for the configured node.
func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Pass, p.Host, p.Port, p.Name, p.SSLMode,
	)
}

// DefaultReminders returns the configured default offsets as durations.
func (e Events) DefaultReminders() []time.Duration {
	offsets := make([]time.Duration, 0, len(e.DefaultReminderMinutes))
	for _, m := range e.DefaultReminderMinutes {
		offsets = append(offsets, time.Duration(m)*time.Minute)
	}
	return offsets
}

// mustBindEnv binds critical environment variables to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"storage.postgres.host": "DB_HOST",
		"storage.postgres.port": "DB_PORT",
		"storage.postgres.user": "DB_USER",
		"storage.postgres.pass": "DB_PASSWORD",
		"storage.postgres.name": "DB_NAME",

		"discord.token": "DISCORD_TOKEN",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// Must loads and validates the configuration from file and environment
// variables.
//
// It panics if configuration cannot be read, unmarshalled or validated.
func Must() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	if err := cfg.validate(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("invalid config")
	}

	return &cfg
}

func (c *Config) validate() error {
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive")
	}
	// A tolerance narrower than the tick interval would let thresholds
	// expire between polls.
	if c.Scheduler.Tolerance < c.Scheduler.Interval {
		return fmt.Errorf("scheduler.tolerance (%s) must be at least scheduler.interval (%s)",
			c.Scheduler.Tolerance, c.Scheduler.Interval)
	}
	if c.Scheduler.SendTimeout <= 0 {
		return fmt.Errorf("scheduler.send_timeout must be positive")
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.File.Path == "" {
			return fmt.Errorf("storage.file.path is required for the file driver")
		}
	case "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	return nil
}
