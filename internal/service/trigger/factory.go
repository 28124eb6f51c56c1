package trigger

import (
	"log/slog"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/config"
)

func NewStrategy(cfg *config.SchedulingConfig) Strategy {
	if cfg == nil || !cfg.SmartSchedulingEnabled {
		slog.Info("smart scheduling disabled, using passthrough trigger strategy")
		return NewPassthroughStrategy()
	}

	slog.Info("using sleep-aware trigger strategy",
		slog.Int("sleep_start_hour", cfg.SleepStartHour),
		slog.Int("sleep_end_hour", cfg.SleepEndHour),
	)
	return NewSleepAwareStrategy(cfg.SleepStartHour, cfg.SleepEndHour)
}
