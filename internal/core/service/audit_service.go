package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DBXDWARKA/office-runner-api/internal/api/metrics"
	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis). Mobile clients retry
// on flaky networks; replayed lifecycle events must not duplicate audit rows.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, tripID string, action domain.TripAction, ts time.Time) (bool, error)
	Mark(ctx context.Context, tripID string, action domain.TripAction, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single lifecycle event.
func (s *auditService) Process(ctx context.Context, in ports.TripEventInput) error {
	start := time.Now()

	isDup, err := s.dedup.IsDuplicate(ctx, in.TripID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("trip_id", in.TripID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.AuditDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("trip_id", in.TripID).Str("action", string(in.Action)).Msg("duplicate event skipped")
		return nil
	}
	metrics.AuditDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so a retried delivery is skipped even if the insert
	// below races with it.
	if markErr := s.dedup.Mark(ctx, in.TripID, in.Action, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("trip_id", in.TripID).Msg("failed to set dedup key")
	}

	event := &domain.TripEvent{
		ID:        uuid.NewString(),
		TripID:    in.TripID,
		Action:    in.Action,
		ActorID:   in.ActorID,
		Distance:  in.Distance,
		Parking:   in.Parking,
		Payment:   in.Payment,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		metrics.AuditProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.AuditEventsProcessedTotal.WithLabelValues(string(in.Action)).Inc()
	metrics.AuditProcessingDuration.WithLabelValues(string(in.Action)).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("trip_id", in.TripID).
		Str("action", string(in.Action)).
		Str("event_id", event.ID).
		Msg("audit event recorded")

	return nil
}
