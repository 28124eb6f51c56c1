package trigger

import (
	"context"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

// Strategy reshapes the daily triggers derived from an hourly rule before
// they are handed to delivery. Only hourly expansion is redistributed;
// coarser rules map to single triggers and pass through untouched.
type Strategy interface {
	// Redistribute returns the triggers with possibly reassigned hours.
	// Implementations must preserve each trigger's minute and the number
	// of triggers.
	Redistribute(ctx context.Context, schedules []domain.DailyTrigger) []domain.DailyTrigger
}
