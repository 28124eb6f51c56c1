package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/client"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/infra/deliveryqueue"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/generate"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/nextoccur"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/trigger"
)

const historyRecordTimeout = 5 * time.Second

type Service struct {
	medicationStore client.MedicationStore
	generator       *generate.Generator
	deriver         *trigger.Deriver
	calculator      *nextoccur.Calculator
	statusRepo      domain.DoseStatusRepository
	historyRecorder domain.DoseHistoryRecorder
	deliveryQueue   deliveryqueue.DeliveryQueue
	scheduleMetrics *metrics.ScheduleMetrics
	upcomingWindow  time.Duration

	mu     sync.RWMutex
	cached map[string]*DaySchedule
}

func NewService(
	medicationStore client.MedicationStore,
	generator *generate.Generator,
	deriver *trigger.Deriver,
	calculator *nextoccur.Calculator,
	statusRepo domain.DoseStatusRepository,
	historyRecorder domain.DoseHistoryRecorder,
	deliveryQueue deliveryqueue.DeliveryQueue,
	scheduleMetrics *metrics.ScheduleMetrics,
	upcomingWindowHours int,
) *Service {
	if upcomingWindowHours <= 0 {
		upcomingWindowHours = 2
	}
	return &Service{
		medicationStore: medicationStore,
		generator:       generator,
		deriver:         deriver,
		calculator:      calculator,
		statusRepo:      statusRepo,
		historyRecorder: historyRecorder,
		deliveryQueue:   deliveryQueue,
		scheduleMetrics: scheduleMetrics,
		upcomingWindow:  time.Duration(upcomingWindowHours) * time.Hour,
		cached:          make(map[string]*DaySchedule),
	}
}

// ComputeDaySchedule regenerates the user's full dose list for the date,
// rehydrates any statuses persisted earlier in the day, and swaps the result
// into the cache. Validation is all-or-nothing: one invalid medication
// rejects the whole batch before any dose is generated.
func (s *Service) ComputeDaySchedule(ctx context.Context, userID string, date, now time.Time) (*DaySchedule, error) {
	ctx, span := tracing.StartScheduleComputationSpan(ctx, userID, date)
	defer span.End()
	started := time.Now()

	medications, err := s.fetchValidatedMedications(ctx, userID)
	if err != nil {
		tracing.RecordScheduleComputationResult(span, 0, 0, err)
		return nil, err
	}

	var doses []domain.ScheduledDose
	for _, med := range medications {
		doses = append(doses, s.generator.GenerateAll(ctx, userID, med, date)...)
	}

	if err := s.rehydrateStatuses(ctx, userID, date, doses); err != nil {
		slog.WarnContext(ctx, "failed to rehydrate dose statuses, serving fresh schedule",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	daySchedule := newDaySchedule(userID, date, doses, now)

	if err := s.persistSnapshots(ctx, userID, daySchedule, now); err != nil {
		slog.WarnContext(ctx, "failed to persist dose status snapshots",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.mu.Lock()
	s.cached[cacheKey(userID, daySchedule.Date)] = daySchedule
	s.mu.Unlock()

	if s.scheduleMetrics != nil {
		for slot, slotDoses := range daySchedule.ByTimeSlot {
			s.scheduleMetrics.RecordDosesGenerated(ctx, slot.String(), len(slotDoses))
		}
		s.scheduleMetrics.RecordComputationDuration(ctx, time.Since(started))
	}

	slog.InfoContext(ctx, "day schedule computed",
		slog.String("user_id", userID),
		slog.String("date", daySchedule.Date),
		slog.Int("medication_count", len(medications)),
		slog.Int("dose_count", len(daySchedule.Doses)),
	)

	tracing.RecordScheduleComputationResult(span, len(medications), len(daySchedule.Doses), nil)
	return daySchedule, nil
}

// Overdue lists still-scheduled doses whose time has passed, judged against
// a single sampled instant.
func (s *Service) Overdue(ctx context.Context, userID string, date, now time.Time) (*OverdueResult, error) {
	daySchedule, err := s.scheduleFor(ctx, userID, date, now)
	if err != nil {
		return nil, err
	}

	overdue := make([]domain.ScheduledDose, 0)
	for _, dose := range daySchedule.Doses {
		if dose.IsOverdue(now) {
			overdue = append(overdue, dose)
		}
	}

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordOverdueDoses(ctx, len(overdue))
	}

	return &OverdueResult{AsOf: now, Doses: overdue}, nil
}

// Upcoming lists still-scheduled doses falling in [now, now+window]. A
// non-positive windowHours falls back to the configured window.
func (s *Service) Upcoming(ctx context.Context, userID string, date, now time.Time, windowHours int) (*UpcomingResult, error) {
	daySchedule, err := s.scheduleFor(ctx, userID, date, now)
	if err != nil {
		return nil, err
	}

	window := s.upcomingWindow
	if windowHours > 0 {
		window = time.Duration(windowHours) * time.Hour
	}

	windowEnd := now.Add(window)
	upcoming := make([]domain.ScheduledDose, 0)
	for _, dose := range daySchedule.Doses {
		if dose.Status != domain.StatusScheduled {
			continue
		}
		if !dose.ScheduledTime.Before(now) && !dose.ScheduledTime.After(windowEnd) {
			upcoming = append(upcoming, dose)
		}
	}

	return &UpcomingResult{
		AsOf:        now,
		WindowHours: int(window.Hours()),
		Doses:       upcoming,
	}, nil
}

// Metrics summarizes the day's adherence counters at the sampled instant.
func (s *Service) Metrics(ctx context.Context, userID string, date, now time.Time) (*Summary, error) {
	daySchedule, err := s.scheduleFor(ctx, userID, date, now)
	if err != nil {
		return nil, err
	}

	summary := summarize(daySchedule, now, s.upcomingWindow)
	return &summary, nil
}

// UpdateDoseStatus moves one dose through the status state machine,
// persists the new status, and swaps an updated aggregate into the cache.
// History recording is fire-and-forget. takenAt overrides the recorded
// taking time for taken transitions; nil means now.
func (s *Service) UpdateDoseStatus(ctx context.Context, userID, doseID string, next domain.DoseStatus, now time.Time, takenAt *time.Time) (*domain.ScheduledDose, error) {
	ctx, span := tracing.StartDoseTransitionSpan(ctx, doseID, next.String())
	defer span.End()

	if err := next.Validate(); err != nil {
		tracing.RecordDoseTransitionResult(span, "", next.String(), err)
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransition, err)
	}

	daySchedule, err := s.scheduleFor(ctx, userID, now, now)
	if err != nil {
		tracing.RecordDoseTransitionResult(span, "", next.String(), err)
		return nil, err
	}

	index := -1
	for i, dose := range daySchedule.Doses {
		if dose.ID == doseID {
			index = i
			break
		}
	}
	if index < 0 {
		err := fmt.Errorf("%w: dose %q", domain.ErrDoseNotFound, doseID)
		tracing.RecordDoseTransitionResult(span, "", next.String(), err)
		return nil, err
	}

	previous := daySchedule.Doses[index]
	if !previous.CanTransitionTo(next) {
		err := fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, previous.Status, next)
		tracing.RecordDoseTransitionResult(span, previous.Status.String(), next.String(), err)
		return nil, err
	}

	updated := previous
	updated.Status = next
	if next == domain.StatusTaken {
		when := now
		if takenAt != nil {
			when = *takenAt
		}
		updated.ActualTakenTime = &when
	} else {
		updated.ActualTakenTime = nil
	}

	record := domain.DoseStatusRecord{
		DoseID:          updated.ID,
		MedicationID:    updated.MedicationID,
		ScheduledTime:   updated.ScheduledTime,
		Status:          updated.Status,
		ActualTakenTime: updated.ActualTakenTime,
		UpdatedAt:       now,
	}
	if err := s.statusRepo.SaveStatus(ctx, userID, daySchedule.Date, record); err != nil {
		tracing.RecordDoseTransitionResult(span, previous.Status.String(), next.String(), err)
		return nil, fmt.Errorf("failed to persist dose status: %w", err)
	}

	s.swapDose(userID, daySchedule, index, updated)

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordDoseTransition(ctx, previous.Status.String(), next.String())
	}

	s.recordHistoryAsync(userID, previous, updated, now)

	slog.InfoContext(ctx, "dose status updated",
		slog.String("user_id", userID),
		slog.String("dose_id", doseID),
		slog.String("from_status", previous.Status.String()),
		slog.String("to_status", next.String()),
	)

	tracing.RecordDoseTransitionResult(span, previous.Status.String(), next.String(), nil)
	return &updated, nil
}

// RegisterTriggers derives every medication's notification triggers and,
// when register is set, hands each one to the delivery queue. A queue
// failure marks that trigger and moves on; derivation itself is atomic.
func (s *Service) RegisterTriggers(ctx context.Context, userID string, register bool, now time.Time) (*TriggerResult, error) {
	medications, err := s.fetchValidatedMedications(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &TriggerResult{UserID: userID, Triggers: make([]TriggerRegistration, 0)}

	for _, med := range medications {
		for _, rule := range med.Rules {
			schedules, err := s.deriver.DeriveTriggers(ctx, userID, rule)
			if err != nil {
				return nil, err
			}

			for _, schedule := range schedules {
				hour, minute := schedule.TriggerTime()
				registration := TriggerRegistration{
					MedicationID: med.ID,
					Kind:         schedule.Kind(),
					Hour:         hour,
					Minute:       minute,
				}

				if register && s.deliveryQueue != nil {
					registration = s.registerTrigger(ctx, userID, med, schedule, now, registration)
				}

				result.Triggers = append(result.Triggers, registration)
			}
		}
	}

	return result, nil
}

// NextDose reports the earliest future occurrence across all of the
// medication's rules.
func (s *Service) NextDose(ctx context.Context, userID, medicationID string, from time.Time) (*NextDoseResult, error) {
	medResp, err := s.medicationStore.GetMedication(ctx, userID, medicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medication: %w", err)
	}
	if medResp == nil {
		return nil, fmt.Errorf("%w: medication %q", domain.ErrInvalidMedication, medicationID)
	}

	med, err := medResp.ToDomain()
	if err != nil {
		return nil, err
	}
	if err := med.Validate(); err != nil {
		return nil, err
	}

	var best *NextDoseResult
	for _, rule := range med.Rules {
		occurrence, err := s.calculator.NextOccurrence(ctx, userID, rule, from)
		if err != nil {
			return nil, err
		}
		if best == nil || occurrence.Before(best.Time) {
			best = &NextDoseResult{
				MedicationID:   med.ID,
				MedicationName: med.Name,
				Time:           occurrence,
				FrequencyKind:  rule.Kind(),
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: medication %q has no rules", domain.ErrInvalidFrequency, medicationID)
	}
	return best, nil
}

// fetchValidatedMedications loads the user's medications and validates the
// whole batch before anything downstream runs.
func (s *Service) fetchValidatedMedications(ctx context.Context, userID string) ([]domain.Medication, error) {
	responses, err := s.medicationStore.GetMedications(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch medications",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to fetch medications: %w", err)
	}

	medications := make([]domain.Medication, 0, len(responses))
	for _, resp := range responses {
		med, err := resp.ToDomain()
		if err != nil {
			return nil, err
		}
		medications = append(medications, med)
	}

	for _, med := range medications {
		if err := med.Validate(); err != nil {
			return nil, fmt.Errorf("medication %q: %w", med.Name, err)
		}
	}

	return medications, nil
}

// scheduleFor returns the cached aggregate for the date or computes a fresh
// one.
func (s *Service) scheduleFor(ctx context.Context, userID string, date, now time.Time) (*DaySchedule, error) {
	key := cacheKey(userID, domain.DayKey(date))

	s.mu.RLock()
	cached, ok := s.cached[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	return s.ComputeDaySchedule(ctx, userID, date, now)
}

// persistSnapshots writes the day's full status set so a restarted instance
// can rehydrate it. Records already rehydrated keep their earlier UpdatedAt
// content under the same dose ID.
func (s *Service) persistSnapshots(ctx context.Context, userID string, daySchedule *DaySchedule, now time.Time) error {
	if s.statusRepo == nil || len(daySchedule.Doses) == 0 {
		return nil
	}

	records := make([]domain.DoseStatusRecord, 0, len(daySchedule.Doses))
	for _, dose := range daySchedule.Doses {
		records = append(records, domain.DoseStatusRecord{
			DoseID:          dose.ID,
			MedicationID:    dose.MedicationID,
			ScheduledTime:   dose.ScheduledTime,
			Status:          dose.Status,
			ActualTakenTime: dose.ActualTakenTime,
			UpdatedAt:       now,
		})
	}

	return s.statusRepo.SaveStatuses(ctx, userID, daySchedule.Date, records)
}

func (s *Service) rehydrateStatuses(ctx context.Context, userID string, date time.Time, doses []domain.ScheduledDose) error {
	if s.statusRepo == nil {
		return nil
	}

	records, err := s.statusRepo.GetStatuses(ctx, userID, domain.DayKey(date))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for i := range doses {
		record, ok := records[doses[i].ID]
		if !ok {
			continue
		}
		doses[i].Status = record.Status
		doses[i].ActualTakenTime = record.ActualTakenTime
	}
	return nil
}

// swapDose replaces one dose in the cached aggregate copy-on-write, so
// readers holding the old snapshot never observe a partial update.
func (s *Service) swapDose(userID string, daySchedule *DaySchedule, index int, updated domain.ScheduledDose) {
	doses := daySchedule.Chronological()
	doses[index] = updated

	byTimeSlot := make(map[domain.TimeSlot][]domain.ScheduledDose)
	for _, dose := range doses {
		byTimeSlot[dose.TimeSlot] = append(byTimeSlot[dose.TimeSlot], dose)
	}

	next := &DaySchedule{
		UserID:      daySchedule.UserID,
		Date:        daySchedule.Date,
		GeneratedAt: daySchedule.GeneratedAt,
		Doses:       doses,
		ByTimeSlot:  byTimeSlot,
	}

	s.mu.Lock()
	s.cached[cacheKey(userID, daySchedule.Date)] = next
	s.mu.Unlock()
}

func (s *Service) recordHistoryAsync(userID string, previous, updated domain.ScheduledDose, now time.Time) {
	if s.historyRecorder == nil {
		return
	}

	record := domain.DoseHistoryRecord{
		UserID:         userID,
		DoseID:         updated.ID,
		MedicationID:   updated.MedicationID,
		MedicationName: updated.MedicationName,
		FromStatus:     previous.Status,
		ToStatus:       updated.Status,
		ScheduledTime:  updated.ScheduledTime,
		TakenTime:      updated.ActualTakenTime,
		RecordedAt:     now,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), historyRecordTimeout)
		defer cancel()

		if err := s.historyRecorder.RecordTransition(ctx, record); err != nil {
			slog.Warn("failed to record dose transition history",
				slog.String("dose_id", record.DoseID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *Service) registerTrigger(
	ctx context.Context,
	userID string,
	med domain.Medication,
	schedule domain.NotificationSchedule,
	now time.Time,
	registration TriggerRegistration,
) TriggerRegistration {
	task := &deliveryqueue.ReminderTask{
		UserID:         userID,
		ScheduleAt:     nextFire(now, schedule),
		MedicationID:   med.ID,
		MedicationName: med.Name,
		Dosage:         med.Dosage,
		TriggerKind:    string(schedule.Kind()),
		TriggerHour:    registration.Hour,
		TriggerMinute:  registration.Minute,
	}

	resp, err := s.deliveryQueue.RegisterReminder(ctx, task)
	if err != nil {
		registration.Error = err.Error()
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordTriggerRegistered(ctx, string(schedule.Kind()), "failed")
		}
		return registration
	}

	registration.Registered = true
	registration.TaskName = resp.Name
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordTriggerRegistered(ctx, string(schedule.Kind()), "success")
	}
	return registration
}

// nextFire finds the first instant strictly after now at which the trigger
// fires. The delivery layer owns the repetition; only the initial schedule
// time is computed here.
func nextFire(now time.Time, schedule domain.NotificationSchedule) time.Time {
	hour, minute := schedule.TriggerTime()
	tod := domain.TimeOfDay{Hour: hour, Minute: minute}

	switch t := schedule.(type) {
	case domain.DailyTrigger:
		candidate := tod.On(now)
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate

	case domain.WeeklyTrigger:
		return nextWeekdayFire(now, t.Weekday, tod)

	case domain.BiweeklyTrigger:
		return nextWeekdayFire(now, t.Weekday, tod)

	case domain.MonthlyTrigger:
		for months := 0; months <= 2; months++ {
			base := now.AddDate(0, months, 0)
			day := t.Day
			if last := daysIn(base.Year(), base.Month(), base.Location()); day > last {
				day = last
			}
			candidate := time.Date(base.Year(), base.Month(), day, tod.Hour, tod.Minute, 0, 0, now.Location())
			if candidate.After(now) {
				return candidate
			}
		}
		return tod.On(now).AddDate(0, 3, 0)

	default:
		candidate := tod.On(now)
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate
	}
}

func nextWeekdayFire(now time.Time, weekday domain.Weekday, tod domain.TimeOfDay) time.Time {
	for days := 0; days <= 7; days++ {
		date := now.AddDate(0, 0, days)
		if domain.FromGoWeekday(date.Weekday()) != weekday {
			continue
		}
		candidate := tod.On(date)
		if candidate.After(now) {
			return candidate
		}
	}
	return tod.On(now).AddDate(0, 0, 7)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func cacheKey(userID, dayKey string) string {
	return userID + "|" + dayKey
}
