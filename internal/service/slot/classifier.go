package slot

import (
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

// Slot hour boundaries. Night is the only wrapping range.
const (
	MorningStartHour   = 6
	MiddayStartHour    = 11
	AfternoonStartHour = 14
	EveningStartHour   = 17
	NightStartHour     = 21
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify maps an instant to its period-of-day bucket. Total over all
// hours: anything at or after 21:00 or before 06:00 is night.
func (c *Classifier) Classify(t time.Time) domain.TimeSlot {
	hour := t.Hour()

	switch {
	case hour >= NightStartHour || hour < MorningStartHour:
		return domain.SlotNight
	case hour < MiddayStartHour:
		return domain.SlotMorning
	case hour < AfternoonStartHour:
		return domain.SlotMidday
	case hour < EveningStartHour:
		return domain.SlotAfternoon
	default:
		return domain.SlotEvening
	}
}
