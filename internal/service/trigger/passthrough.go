package trigger

import (
	"context"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

var _ Strategy = (*PassthroughStrategy)(nil)

// PassthroughStrategy leaves hourly triggers where the rule put them. Used
// when smart scheduling is disabled.
type PassthroughStrategy struct{}

func NewPassthroughStrategy() *PassthroughStrategy {
	return &PassthroughStrategy{}
}

func (p *PassthroughStrategy) Redistribute(_ context.Context, schedules []domain.DailyTrigger) []domain.DailyTrigger {
	return schedules
}
