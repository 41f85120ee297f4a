package worker

import (
	"fmt"
	"log/slog"
	"time"

	"bookmap/internal/pkg/config"
)

// WorkerConfig controls the refresh worker: when the directory refresh
// runs, in which timezone, how long one run may take, and where the
// health server listens.
type WorkerConfig struct {
	// CronSchedule is a standard 5-field cron expression.
	// Default "0 * * * *", every hour on the hour.
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	// Default "Asia/Seoul".
	Timezone string

	// RefreshTimeout cancels a refresh run that exceeds it.
	// Default 5 minutes.
	RefreshTimeout time.Duration

	// HealthPort is where /health and /health/ready are served.
	// Default 9091.
	HealthPort int
}

// DefaultConfig is an hourly refresh in KST with a timeout that
// comfortably covers the upstream directory API.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:   "0 * * * *", // 毎時0分にリフレッシュ
		Timezone:       "Asia/Seoul",
		RefreshTimeout: 5 * time.Minute,
		HealthPort:     9091,
	}
}

// Validate collects every invalid field into one error so an operator
// sees all problems at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.RefreshTimeout); err != nil {
		errs = append(errs, fmt.Errorf("refresh timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv builds the worker configuration from
// REFRESH_CRON_SCHEDULE, WORKER_TIMEZONE, REFRESH_TIMEOUT and
// WORKER_HEALTH_PORT. The strategy is fail-open: an invalid value is
// replaced by its default with a warning log and a fallback metric, and
// the worker always gets a usable configuration.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()

	// noteFallback records the metrics and warnings for one field and
	// reports whether a fallback happened.
	noteFallback := func(field string, result config.ConfigLoadResult) bool {
		if !result.FallbackApplied {
			return false
		}
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
		return true
	}

	anyFallback := false

	schedule := config.LoadEnvWithFallback("REFRESH_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value.(string)
	anyFallback = noteFallback("cron_schedule", schedule) || anyFallback

	zone := config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = zone.Value.(string)
	anyFallback = noteFallback("timezone", zone) || anyFallback

	// The timeout is clamped to a sane operational window.
	timeout := config.LoadEnvDuration("REFRESH_TIMEOUT", cfg.RefreshTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, 30*time.Minute)
	})
	cfg.RefreshTimeout = timeout.Value.(time.Duration)
	anyFallback = noteFallback("refresh_timeout", timeout) || anyFallback

	port := config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = port.Value.(int)
	anyFallback = noteFallback("health_port", port) || anyFallback

	metrics.SetFallbackActive("", anyFallback)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
