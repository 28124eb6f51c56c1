package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/testutil"
)

func TestSaveAndGetStatuses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDoseStatusRepository(client)

	scheduledTime := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	takenAt := scheduledTime.Add(10 * time.Minute)

	records := []domain.DoseStatusRecord{
		{
			DoseID:          "dose-1",
			MedicationID:    "med-a",
			ScheduledTime:   scheduledTime,
			Status:          domain.StatusTaken,
			ActualTakenTime: &takenAt,
			UpdatedAt:       takenAt,
		},
		{
			DoseID:        "dose-2",
			MedicationID:  "med-a",
			ScheduledTime: scheduledTime.Add(12 * time.Hour),
			Status:        domain.StatusSkipped,
			UpdatedAt:     takenAt,
		},
	}

	if err := repo.SaveStatuses(ctx, "user-1", "2024-03-11", records); err != nil {
		t.Fatalf("SaveStatuses() error = %v", err)
	}

	got, err := repo.GetStatuses(ctx, "user-1", "2024-03-11")
	if err != nil {
		t.Fatalf("GetStatuses() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("record count = %d, want 2", len(got))
	}

	taken, ok := got["dose-1"]
	if !ok {
		t.Fatalf("dose-1 missing from result")
	}
	if taken.Status != domain.StatusTaken {
		t.Errorf("dose-1 status = %s, want taken", taken.Status)
	}
	if taken.ActualTakenTime == nil || !taken.ActualTakenTime.Equal(takenAt) {
		t.Errorf("dose-1 taken time = %v, want %v", taken.ActualTakenTime, takenAt)
	}
	if !taken.ScheduledTime.Equal(scheduledTime) {
		t.Errorf("dose-1 scheduled time = %v, want %v", taken.ScheduledTime, scheduledTime)
	}

	skipped := got["dose-2"]
	if skipped.Status != domain.StatusSkipped {
		t.Errorf("dose-2 status = %s, want skipped", skipped.Status)
	}
	if skipped.ActualTakenTime != nil {
		t.Errorf("dose-2 taken time = %v, want nil", skipped.ActualTakenTime)
	}
}

func TestSaveStatusOverwritesField(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDoseStatusRepository(client)

	scheduledTime := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	first := domain.DoseStatusRecord{
		DoseID:        "dose-1",
		MedicationID:  "med-a",
		ScheduledTime: scheduledTime,
		Status:        domain.StatusMissed,
		UpdatedAt:     scheduledTime.Add(2 * time.Hour),
	}
	if err := repo.SaveStatus(ctx, "user-1", "2024-03-11", first); err != nil {
		t.Fatalf("SaveStatus() error = %v", err)
	}

	takenAt := scheduledTime.Add(3 * time.Hour)
	corrected := first
	corrected.Status = domain.StatusTaken
	corrected.ActualTakenTime = &takenAt
	corrected.UpdatedAt = takenAt
	if err := repo.SaveStatus(ctx, "user-1", "2024-03-11", corrected); err != nil {
		t.Fatalf("SaveStatus() correction error = %v", err)
	}

	got, err := repo.GetStatuses(ctx, "user-1", "2024-03-11")
	if err != nil {
		t.Fatalf("GetStatuses() error = %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("record count = %d, want 1", len(got))
	}
	if got["dose-1"].Status != domain.StatusTaken {
		t.Errorf("status after correction = %s, want taken", got["dose-1"].Status)
	}
}

func TestGetStatusesEmptyDay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDoseStatusRepository(client)

	got, err := repo.GetStatuses(ctx, "user-1", "2024-03-11")
	if err != nil {
		t.Fatalf("GetStatuses() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("record count = %d, want 0", len(got))
	}
}

func TestDeleteDay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDoseStatusRepository(client)

	record := domain.DoseStatusRecord{
		DoseID:        "dose-1",
		MedicationID:  "med-a",
		ScheduledTime: time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
		Status:        domain.StatusTaken,
		UpdatedAt:     time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveStatus(ctx, "user-1", "2024-03-11", record); err != nil {
		t.Fatalf("SaveStatus() error = %v", err)
	}

	if err := repo.DeleteDay(ctx, "user-1", "2024-03-11"); err != nil {
		t.Fatalf("DeleteDay() error = %v", err)
	}

	got, err := repo.GetStatuses(ctx, "user-1", "2024-03-11")
	if err != nil {
		t.Fatalf("GetStatuses() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("record count after delete = %d, want 0", len(got))
	}
}

func TestStatusesIsolatedPerUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDoseStatusRepository(client)

	record := domain.DoseStatusRecord{
		DoseID:        "dose-1",
		MedicationID:  "med-a",
		ScheduledTime: time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
		Status:        domain.StatusTaken,
		UpdatedAt:     time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveStatus(ctx, "user-1", "2024-03-11", record); err != nil {
		t.Fatalf("SaveStatus() error = %v", err)
	}

	got, err := repo.GetStatuses(ctx, "user-2", "2024-03-11")
	if err != nil {
		t.Fatalf("GetStatuses() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("other user's record count = %d, want 0", len(got))
	}
}
