package domain

import "fmt"

// TriggerKind discriminates the NotificationSchedule variants.
type TriggerKind string

const (
	TriggerDaily    TriggerKind = "daily"
	TriggerWeekly   TriggerKind = "weekly"
	TriggerBiweekly TriggerKind = "biweekly"
	TriggerMonthly  TriggerKind = "monthly"
)

// NotificationSchedule is one repeating trigger handed to the delivery
// layer. It is a coarser union than FrequencyRule: a single rule may derive
// several triggers (one per daily time, or one per hourly step).
type NotificationSchedule interface {
	Kind() TriggerKind
	// TriggerTime returns the trigger's hour and minute of day.
	TriggerTime() (hour, minute int)

	isNotificationSchedule()
}

// DailyTrigger fires every day at Hour:Minute.
type DailyTrigger struct {
	Hour   int
	Minute int
}

func (t DailyTrigger) Kind() TriggerKind       { return TriggerDaily }
func (t DailyTrigger) TriggerTime() (int, int) { return t.Hour, t.Minute }
func (t DailyTrigger) isNotificationSchedule() {}
func (t DailyTrigger) String() string          { return fmt.Sprintf("daily %02d:%02d", t.Hour, t.Minute) }

// WeeklyTrigger fires every week on Weekday at Hour:Minute.
type WeeklyTrigger struct {
	Weekday Weekday
	Hour    int
	Minute  int
}

func (t WeeklyTrigger) Kind() TriggerKind       { return TriggerWeekly }
func (t WeeklyTrigger) TriggerTime() (int, int) { return t.Hour, t.Minute }
func (t WeeklyTrigger) isNotificationSchedule() {}

// BiweeklyTrigger fires every second week on Weekday at Hour:Minute.
type BiweeklyTrigger struct {
	Weekday Weekday
	Hour    int
	Minute  int
}

func (t BiweeklyTrigger) Kind() TriggerKind       { return TriggerBiweekly }
func (t BiweeklyTrigger) TriggerTime() (int, int) { return t.Hour, t.Minute }
func (t BiweeklyTrigger) isNotificationSchedule() {}

// MonthlyTrigger fires every month on Day at Hour:Minute.
type MonthlyTrigger struct {
	Day    int
	Hour   int
	Minute int
}

func (t MonthlyTrigger) Kind() TriggerKind       { return TriggerMonthly }
func (t MonthlyTrigger) TriggerTime() (int, int) { return t.Hour, t.Minute }
func (t MonthlyTrigger) isNotificationSchedule() {}
