package mealtimes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/config"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

const userMealKeyPrefix = "mealtimes:"

var _ domain.MealTimeSource = (*Source)(nil)

// Source resolves meal times by overlaying per-user overrides, stored as a
// redis hash keyed by meal name, on the service-wide defaults. A nil redis
// client serves defaults only.
type Source struct {
	defaults *config.MealTimeConfig
	client   *redis.Client
}

func NewSource(defaults *config.MealTimeConfig, client *redis.Client) *Source {
	if defaults == nil {
		defaults = config.DefaultMealTimes()
	}
	return &Source{
		defaults: defaults,
		client:   client,
	}
}

func (s *Source) ResolvedTime(ctx context.Context, userID string, meal domain.MealTime, _ time.Time) (domain.TimeOfDay, error) {
	if err := meal.Validate(); err != nil {
		return domain.TimeOfDay{}, err
	}

	if s.client == nil {
		return s.defaults.Time(meal), nil
	}

	raw, err := s.client.HGet(ctx, userMealKeyPrefix+userID, meal.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return s.defaults.Time(meal), nil
		}
		return domain.TimeOfDay{}, err
	}

	parsed, err := config.ParseClockTime(raw)
	if err != nil {
		slog.WarnContext(ctx, "invalid user meal time override, using default",
			slog.String("user_id", userID),
			slog.String("meal", meal.String()),
			slog.String("value", raw),
		)
		return s.defaults.Time(meal), nil
	}

	return parsed, nil
}

// SetUserMealTime stores one per-user override in "HH:MM" form.
func (s *Source) SetUserMealTime(ctx context.Context, userID string, meal domain.MealTime, tod domain.TimeOfDay) error {
	if err := meal.Validate(); err != nil {
		return err
	}
	if err := tod.Validate(); err != nil {
		return err
	}
	if s.client == nil {
		return errors.New("meal time overrides require redis")
	}
	return s.client.HSet(ctx, userMealKeyPrefix+userID, meal.String(), tod.String()).Err()
}
