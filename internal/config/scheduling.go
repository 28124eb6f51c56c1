package config

import (
	"os"
	"strconv"
)

const (
	smartSchedulingEnabledEnv = "SMART_SCHEDULING_ENABLED"
	sleepStartHourEnv         = "SLEEP_START_HOUR"
	sleepEndHourEnv           = "SLEEP_END_HOUR"
	hourlyEndHourEnv          = "HOURLY_GENERATION_END_HOUR"
	upcomingWindowHoursEnv    = "UPCOMING_WINDOW_HOURS"

	defaultSleepStartHour      = 22
	defaultSleepEndHour        = 7
	defaultHourlyEndHour       = 22
	defaultUpcomingWindowHours = 2
)

type SchedulingConfig struct {
	SmartSchedulingEnabled bool
	SleepStartHour         int
	SleepEndHour           int
	HourlyEndHour          int
	UpcomingWindowHours    int
}

func LoadSchedulingConfig() *SchedulingConfig {
	cfg := &SchedulingConfig{
		SmartSchedulingEnabled: os.Getenv(smartSchedulingEnabledEnv) != "false",
		SleepStartHour:         defaultSleepStartHour,
		SleepEndHour:           defaultSleepEndHour,
		HourlyEndHour:          defaultHourlyEndHour,
		UpcomingWindowHours:    defaultUpcomingWindowHours,
	}

	if v := os.Getenv(sleepStartHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 23 {
			cfg.SleepStartHour = parsed
		}
	}

	if v := os.Getenv(sleepEndHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 23 {
			cfg.SleepEndHour = parsed
		}
	}

	if v := os.Getenv(hourlyEndHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 23 {
			cfg.HourlyEndHour = parsed
		}
	}

	if v := os.Getenv(upcomingWindowHoursEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.UpcomingWindowHours = parsed
		}
	}

	return cfg
}
