package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

func seedTrip(repo *stubTripRepo, id, runnerID string, status domain.TripStatus, start time.Time, distance, parking, payment float64) {
	end := start.Add(time.Hour)
	repo.trips[id] = &domain.Trip{
		ID:        id,
		RunnerID:  runnerID,
		ManagerID: "mgr_1",
		Status:    status,
		StartTime: start,
		EndTime:   &end,
		Distance:  distance,
		Parking:   parking,
		Payment:   payment,
	}
}

func TestReportService_Summarize_DeclinedExcludedFromFinancials(t *testing.T) {
	repo := newStubTripRepo()
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedTrip(repo, "t1", "run_1", domain.StatusApproved, base, 10, 5, 105)
	seedTrip(repo, "t2", "run_1", domain.StatusPending, base.Add(time.Hour), 4, 0, 40)
	seedTrip(repo, "t3", "run_1", domain.StatusDeclined, base.Add(2*time.Hour), 50, 20, 520)

	svc := NewReportService(repo, newStubUserRepo(testManager()), zerolog.Nop())

	sum, err := svc.Summarize(context.Background(), "run_1", base.Add(-time.Hour), base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if sum.TotalTrips != 3 {
		t.Fatalf("expected 3 total trips, got %d", sum.TotalTrips)
	}
	if sum.DeclinedTrips != 1 {
		t.Fatalf("expected 1 declined trip, got %d", sum.DeclinedTrips)
	}
	if sum.TotalDistance != 14 {
		t.Fatalf("declined distance must be excluded, got %v", sum.TotalDistance)
	}
	if sum.TotalParking != 5 {
		t.Fatalf("declined parking must be excluded, got %v", sum.TotalParking)
	}
	if sum.TotalPayment != 145 {
		t.Fatalf("declined payment must be excluded, got %v", sum.TotalPayment)
	}
}

func TestReportService_Summarize_WindowBounds(t *testing.T) {
	repo := newStubTripRepo()
	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	seedTrip(repo, "before", "run_1", domain.StatusApproved, from.Add(-time.Second), 1, 0, 10)
	seedTrip(repo, "at_from", "run_1", domain.StatusApproved, from, 2, 0, 20)
	seedTrip(repo, "inside", "run_1", domain.StatusApproved, from.Add(12*time.Hour), 3, 0, 30)
	seedTrip(repo, "at_to", "run_1", domain.StatusApproved, to, 4, 0, 40)

	svc := NewReportService(repo, newStubUserRepo(testManager()), zerolog.Nop())

	sum, err := svc.Summarize(context.Background(), "run_1", from, to)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	// [from, to): at_from counts, at_to does not.
	if sum.TotalTrips != 2 {
		t.Fatalf("expected 2 trips inside window, got %d", sum.TotalTrips)
	}
	if sum.TotalDistance != 5 {
		t.Fatalf("expected distance 5, got %v", sum.TotalDistance)
	}
}

func TestReportService_Summarize_EmptyWindow(t *testing.T) {
	svc := NewReportService(newStubTripRepo(), newStubUserRepo(), zerolog.Nop())

	sum, err := svc.Summarize(context.Background(), "run_1", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if sum.TotalTrips != 0 || sum.TotalDistance != 0 || sum.TotalParking != 0 || sum.TotalPayment != 0 || sum.DeclinedTrips != 0 {
		t.Fatalf("expected all-zero summary, got %+v", sum)
	}
}

func TestReportService_SummarizePreset_UnknownPreset(t *testing.T) {
	svc := NewReportService(newStubTripRepo(), newStubUserRepo(), zerolog.Nop())

	_, err := svc.SummarizePreset(context.Background(), "run_1", "fortnightly")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReportService_SummarizePreset_MonthlyWindow(t *testing.T) {
	repo := newStubTripRepo()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	seedTrip(repo, "this_month", "run_1", domain.StatusApproved, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 5, 0, 50)
	seedTrip(repo, "last_month", "run_1", domain.StatusApproved, time.Date(2026, 7, 31, 23, 0, 0, 0, time.UTC), 7, 0, 70)

	svc := NewReportService(repo, newStubUserRepo(), zerolog.Nop())
	svc.now = func() time.Time { return now }

	sum, err := svc.SummarizePreset(context.Background(), "run_1", ports.WindowMonthly)
	if err != nil {
		t.Fatalf("SummarizePreset returned error: %v", err)
	}
	if sum.TotalTrips != 1 || sum.TotalDistance != 5 {
		t.Fatalf("monthly window must start at the 1st, got %+v", sum)
	}
}

func TestReportService_PendingCounts_ResolvesManagerNames(t *testing.T) {
	repo := newStubTripRepo()
	base := time.Now().UTC()
	seedTrip(repo, "t1", "run_1", domain.StatusPending, base, 3, 0, 30)
	seedTrip(repo, "t2", "run_1", domain.StatusPending, base.Add(time.Minute), 4, 0, 40)
	seedTrip(repo, "t3", "run_1", domain.StatusApproved, base.Add(2*time.Minute), 5, 0, 50)

	svc := NewReportService(repo, newStubUserRepo(testManager()), zerolog.Nop())

	counts, err := svc.PendingCounts(context.Background(), "run_1")
	if err != nil {
		t.Fatalf("PendingCounts returned error: %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("expected one manager bucket, got %d", len(counts))
	}
	if counts[0].Count != 2 {
		t.Fatalf("expected 2 pending trips, got %d", counts[0].Count)
	}
	if counts[0].ManagerName != "Meera" {
		t.Fatalf("expected resolved manager name, got %q", counts[0].ManagerName)
	}
}

func TestReportService_AdminStats(t *testing.T) {
	repo := newStubTripRepo()
	base := time.Now().UTC()
	seedTrip(repo, "t1", "run_1", domain.StatusApproved, base, 1, 0, 10)
	seedTrip(repo, "t2", "run_1", domain.StatusDeclined, base, 2, 0, 20)
	seedTrip(repo, "t3", "run_2", domain.StatusPending, base, 3, 0, 30)

	users := newStubUserRepo(
		testManager(),
		&domain.User{ID: "run_1", Role: domain.RoleRunner},
		&domain.User{ID: "run_2", Role: domain.RoleRunner},
		&domain.User{ID: "adm_1", Role: domain.RoleAdmin},
	)
	svc := NewReportService(repo, users, zerolog.Nop())

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats returned error: %v", err)
	}
	if stats.TotalRunners != 2 || stats.TotalManagers != 1 {
		t.Fatalf("unexpected user counts: %+v", stats)
	}
	if stats.TotalTrips != 3 || stats.ApprovedTrips != 1 || stats.DeclinedTrips != 1 || stats.PendingTrips != 1 {
		t.Fatalf("unexpected trip counts: %+v", stats)
	}
}

func TestReportService_BillingExport_OnlyApprovedTrips(t *testing.T) {
	repo := newStubTripRepo()
	base := time.Now().UTC()
	seedTrip(repo, "t1", "run_1", domain.StatusApproved, base, 10, 5, 105)
	seedTrip(repo, "t2", "run_1", domain.StatusPending, base, 4, 0, 40)
	seedTrip(repo, "t3", "run_1", domain.StatusDeclined, base, 9, 0, 90)

	adjusted := 8.0
	repo.trips["t1"].AdjustedDistance = &adjusted

	users := newStubUserRepo(testManager(), &domain.User{ID: "run_1", Name: "Ravi", Phone: "222", Role: domain.RoleRunner})
	svc := NewReportService(repo, users, zerolog.Nop())

	export, err := svc.BillingExport(context.Background())
	if err != nil {
		t.Fatalf("BillingExport returned error: %v", err)
	}
	if export.BatchID == "" {
		t.Fatalf("expected a batch id")
	}
	if len(export.Rows) != 1 {
		t.Fatalf("expected only the approved trip, got %d rows", len(export.Rows))
	}

	row := export.Rows[0]
	if row.TripID != "t1" {
		t.Fatalf("unexpected trip in export: %s", row.TripID)
	}
	if row.Distance != 8 {
		t.Fatalf("export must bill the adjusted distance, got %v", row.Distance)
	}
	if row.Runner == nil || row.Runner.Name != "Ravi" {
		t.Fatalf("expected resolved runner, got %+v", row.Runner)
	}
	if row.Manager == nil || row.Manager.Name != "Meera" {
		t.Fatalf("expected resolved manager, got %+v", row.Manager)
	}
}

func TestPresetWindow_Bounds(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	from, to, err := ports.PresetWindow(ports.WindowDaily, now)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if from != now.Add(-24*time.Hour) || to != now {
		t.Fatalf("unexpected daily window: [%v, %v)", from, to)
	}

	from, to, err = ports.PresetWindow(ports.WindowWeekly, now)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if from != now.AddDate(0, 0, -7) || to != now {
		t.Fatalf("unexpected weekly window: [%v, %v)", from, to)
	}

	from, _, err = ports.PresetWindow(ports.WindowMonthly, now)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if from != time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("monthly window must start at the 1st, got %v", from)
	}

	if _, _, err := ports.PresetWindow("yearly", now); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}
