package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DBXDWARKA/office-runner-api/internal/core/billing"
	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// ReportService is the single aggregation engine behind every summary screen.
// It recomputes on demand; nothing is cached.
type ReportService struct {
	trips ports.TripRepository
	users ports.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewReportService(trips ports.TripRepository, users ports.UserRepository, log zerolog.Logger) *ReportService {
	return &ReportService{trips: trips, users: users, log: log, now: time.Now}
}

// Summarize aggregates a runner's trips whose start time falls in [from, to).
// Declined trips are excluded from the financial totals but counted in
// DeclinedTrips; TotalTrips counts every trip in the window.
func (s *ReportService) Summarize(ctx context.Context, runnerID string, from, to time.Time) (*ports.Summary, error) {
	trips, err := s.trips.List(ctx, ports.TripFilter{RunnerID: runnerID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	return summarize(trips), nil
}

// SummarizePreset resolves a window preset against the current time.
func (s *ReportService) SummarizePreset(ctx context.Context, runnerID, preset string) (*ports.Summary, error) {
	from, to, err := ports.PresetWindow(preset, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.Summarize(ctx, runnerID, from, to)
}

// PendingCounts returns the runner's trips-pending-for-approval per manager,
// with manager names resolved for display.
func (s *ReportService) PendingCounts(ctx context.Context, runnerID string) ([]ports.PendingCount, error) {
	counts, err := s.trips.PendingCountsByRunner(ctx, runnerID)
	if err != nil {
		return nil, err
	}

	for i := range counts {
		manager, err := s.users.FindByID(ctx, counts[i].ManagerID)
		if err != nil {
			s.log.Warn().Err(err).Str("manager_id", counts[i].ManagerID).Msg("pending count for unknown manager")
			continue
		}
		counts[i].ManagerName = manager.Name
	}
	return counts, nil
}

// AdminStats returns the system-wide aggregate view.
func (s *ReportService) AdminStats(ctx context.Context) (*ports.AdminStats, error) {
	runners, err := s.users.CountByRole(ctx, domain.RoleRunner)
	if err != nil {
		return nil, err
	}
	managers, err := s.users.CountByRole(ctx, domain.RoleManager)
	if err != nil {
		return nil, err
	}
	trips, err := s.trips.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.AdminStats{
		TotalRunners:  runners,
		TotalManagers: managers,
		TotalTrips:    trips.Total,
		ApprovedTrips: trips.Approved,
		DeclinedTrips: trips.Declined,
		PendingTrips:  trips.Pending,
	}, nil
}

// BillingExport snapshots every approved trip as a payable line. Only approved
// trips carry frozen, reconcilable figures, so pending and declined trips are
// excluded.
func (s *ReportService) BillingExport(ctx context.Context) (*ports.BillingExport, error) {
	trips, err := s.trips.List(ctx, ports.TripFilter{Status: string(domain.StatusApproved)})
	if err != nil {
		return nil, err
	}

	users := make(map[string]*domain.User)
	lookup := func(id string) *domain.User {
		if u, ok := users[id]; ok {
			return u
		}
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			u = &domain.User{ID: id}
		}
		users[id] = u
		return u
	}

	rows := make([]ports.BillingRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, ports.BillingRow{
			TripID:         t.ID,
			Runner:         lookup(t.RunnerID),
			Manager:        lookup(t.ManagerID),
			Distance:       t.EffectiveDistance(),
			ParkingCharges: t.Parking,
			Payment:        t.Payment,
		})
	}

	export := &ports.BillingExport{
		BatchID:     uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Rows:        rows,
	}
	s.log.Info().Str("batch_id", export.BatchID).Int("rows", len(rows)).Msg("billing export generated")
	return export, nil
}

func summarize(trips []*domain.Trip) *ports.Summary {
	sum := &ports.Summary{}
	for _, t := range trips {
		sum.TotalTrips++
		if t.Status == domain.StatusDeclined {
			sum.DeclinedTrips++
			continue
		}
		sum.TotalDistance += t.EffectiveDistance()
		sum.TotalParking += t.Parking
		sum.TotalPayment += t.Payment
	}
	// Distances keep input precision individually; totals are rounded for display.
	sum.TotalDistance = billing.Round2(sum.TotalDistance)
	sum.TotalParking = billing.Round2(sum.TotalParking)
	sum.TotalPayment = billing.Round2(sum.TotalPayment)
	return sum
}
