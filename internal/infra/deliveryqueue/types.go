package deliveryqueue

import "time"

type ReminderTask struct {
	UserID     string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	MedicationID   string `json:"medication_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage,omitempty"`
	TriggerKind    string `json:"trigger_kind"`
	TriggerHour    int    `json:"trigger_hour"`
	TriggerMinute  int    `json:"trigger_minute"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type gatewayTaskRequest struct {
	Task gatewayTask `json:"task"`
}

type gatewayTask struct {
	HTTPRequest  gatewayHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type gatewayHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type gatewayTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
