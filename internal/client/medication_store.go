package client

import "context"

//go:generate mockgen -source=medication_store.go -destination=medication_store_mock.go -package=client

// MedicationStore is the persistence boundary: it owns medications and
// receives the engine's schedules read-only. The engine never writes
// medications back.
type MedicationStore interface {
	GetMedications(ctx context.Context, userID string) ([]MedicationResponse, error)
	GetMedication(ctx context.Context, userID, medicationID string) (*MedicationResponse, error)
}
