package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

const (
	doseStatusKeyPrefix = "doses:status:"

	// Statuses outlive the day they belong to so a schedule recomputed just
	// after midnight can still rehydrate yesterday's records.
	doseStatusTTL = 48 * time.Hour
)

type statusRecord struct {
	DoseID          string     `json:"dose_id"`
	MedicationID    string     `json:"medication_id"`
	ScheduledTime   time.Time  `json:"scheduled_time"`
	Status          string     `json:"status"`
	ActualTakenTime *time.Time `json:"actual_taken_time,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type doseStatusRepository struct {
	client *redis.Client
}

func NewDoseStatusRepository(client *redis.Client) domain.DoseStatusRepository {
	return &doseStatusRepository{
		client: client,
	}
}

// statusKey addresses one user's statuses for one calendar day. Each day is
// a single redis hash keyed by dose ID.
func statusKey(userID, dayKey string) string {
	return doseStatusKeyPrefix + userID + ":" + dayKey
}

func (r *doseStatusRepository) SaveStatuses(ctx context.Context, userID, dayKey string, records []domain.DoseStatusRecord) error {
	if len(records) == 0 {
		return nil
	}

	key := statusKey(userID, dayKey)

	fields := make(map[string]interface{}, len(records))
	for _, record := range records {
		data, err := marshalRecord(record)
		if err != nil {
			return err
		}
		fields[record.DoseID] = data
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, doseStatusTTL)

	_, err := pipe.Exec(ctx)
	return err
}

func (r *doseStatusRepository) SaveStatus(ctx context.Context, userID, dayKey string, record domain.DoseStatusRecord) error {
	key := statusKey(userID, dayKey)

	data, err := marshalRecord(record)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, record.DoseID, data)
	pipe.Expire(ctx, key, doseStatusTTL)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *doseStatusRepository) GetStatuses(ctx context.Context, userID, dayKey string) (map[string]domain.DoseStatusRecord, error) {
	key := statusKey(userID, dayKey)

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	records := make(map[string]domain.DoseStatusRecord, len(fields))
	for doseID, data := range fields {
		var record statusRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, ErrInvalidRecordData
		}
		records[doseID] = domain.DoseStatusRecord{
			DoseID:          record.DoseID,
			MedicationID:    record.MedicationID,
			ScheduledTime:   record.ScheduledTime,
			Status:          domain.DoseStatus(record.Status),
			ActualTakenTime: record.ActualTakenTime,
			UpdatedAt:       record.UpdatedAt,
		}
	}

	return records, nil
}

func (r *doseStatusRepository) DeleteDay(ctx context.Context, userID, dayKey string) error {
	return r.client.Del(ctx, statusKey(userID, dayKey)).Err()
}

func marshalRecord(record domain.DoseStatusRecord) ([]byte, error) {
	data, err := json.Marshal(statusRecord{
		DoseID:          record.DoseID,
		MedicationID:    record.MedicationID,
		ScheduledTime:   record.ScheduledTime,
		Status:          record.Status.String(),
		ActualTakenTime: record.ActualTakenTime,
		UpdatedAt:       record.UpdatedAt,
	})
	if err != nil {
		return nil, ErrInvalidRecordData
	}
	return data, nil
}
