package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// Window presets accepted by the reporting endpoints.
const (
	WindowDaily   = "daily"
	WindowWeekly  = "weekly"
	WindowMonthly = "monthly"
)

// PresetWindow resolves a named window against now: daily is the trailing 24
// hours, weekly the trailing 7 days, monthly the calendar month to date. The
// empty preset defaults to weekly. Bounds are [from, to).
func PresetWindow(preset string, now time.Time) (from, to time.Time, err error) {
	switch preset {
	case WindowDaily:
		return now.Add(-24 * time.Hour), now, nil
	case WindowWeekly, "":
		return now.AddDate(0, 0, -7), now, nil
	case WindowMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown window preset %q", domain.ErrInvalidInput, preset)
	}
}

// Summary aggregates trips over a time window. Declined trips are excluded
// from the financial totals but surfaced in DeclinedTrips.
type Summary struct {
	TotalTrips    int64
	TotalDistance float64
	TotalParking  float64
	TotalPayment  float64
	DeclinedTrips int64
}

// AdminStats is the system-wide aggregate view.
type AdminStats struct {
	TotalRunners  int64
	TotalManagers int64
	TotalTrips    int64
	ApprovedTrips int64
	DeclinedTrips int64
	PendingTrips  int64
}

// BillingRow is one payable line of the billing export.
type BillingRow struct {
	TripID         string
	Runner         *domain.User
	Manager        *domain.User
	Distance       float64
	ParkingCharges float64
	Payment        float64
}

// BillingExport is a deterministic snapshot of all payable (approved) trips.
type BillingExport struct {
	BatchID     string
	GeneratedAt time.Time
	Rows        []BillingRow
}

// ReportService is the single aggregation engine all summary endpoints share.
type ReportService interface {
	// Summarize aggregates a runner's trips whose start time falls in [from, to).
	Summarize(ctx context.Context, runnerID string, from, to time.Time) (*Summary, error)
	// SummarizePreset resolves a window preset against the current time.
	SummarizePreset(ctx context.Context, runnerID, preset string) (*Summary, error)
	// PendingCounts returns the runner's trips-pending-for-approval per manager.
	PendingCounts(ctx context.Context, runnerID string) ([]PendingCount, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
	BillingExport(ctx context.Context) (*BillingExport, error)
}
