package deliveryqueue

import "context"

//go:generate mockgen -source=queue.go -destination=mock.go -package=deliveryqueue

// DeliveryQueue registers derived reminder triggers with the delivery
// gateway that fans them out to user devices.
type DeliveryQueue interface {
	RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error)
	DeleteReminder(ctx context.Context, taskID string) error
}
