package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Storage: Storage{Driver: "file", File: File{Path: "data/events.json"}},
		Scheduler: Scheduler{
			Interval:    60 * time.Second,
			Tolerance:   60 * time.Second,
			SendTimeout: 10 * time.Second,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.validate())
}

func TestValidate_ToleranceNarrowerThanInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Scheduler.Tolerance = 30 * time.Second

	err := cfg.validate()
	assert.ErrorContains(t, err, "tolerance")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "cassandra"

	err := cfg.validate()
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestValidate_FileDriverRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.File.Path = ""

	err := cfg.validate()
	assert.ErrorContains(t, err, "storage.file.path")
}

func TestDefaultReminders(t *testing.T) {
	e := Events{DefaultReminderMinutes: []int{30, 20, 10}}
	assert.Equal(t,
		[]time.Duration{30 * time.Minute, 20 * time.Minute, 10 * time.Minute},
		e.DefaultReminders(),
	)
}
