package handler

import (
	"context"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

// nameCache memoizes user lookups within a single request so list responses
// do not refetch the same runner/manager per row.
type nameCache struct {
	users ports.UserService
	seen  map[string]string
}

func newNameCache(users ports.UserService) *nameCache {
	return &nameCache{users: users, seen: make(map[string]string)}
}

func (n *nameCache) name(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	if cached, ok := n.seen[id]; ok {
		return cached
	}
	resolved := ""
	if u, err := n.users.GetUser(ctx, id); err == nil {
		resolved = u.Name
	}
	n.seen[id] = resolved
	return resolved
}

func toTripResponse(ctx context.Context, t *domain.Trip, names *nameCache) tripResponse {
	return tripResponse{
		ID:               t.ID,
		RunnerID:         t.RunnerID,
		RunnerName:       names.name(ctx, t.RunnerID),
		ManagerID:        t.ManagerID,
		ManagerName:      names.name(ctx, t.ManagerID),
		Status:           string(t.Status),
		StartTime:        t.StartTime.UTC(),
		EndTime:          t.EndTime,
		StartLat:         t.StartLat,
		StartLng:         t.StartLng,
		EndLat:           t.EndLat,
		EndLng:           t.EndLng,
		Distance:         t.Distance,
		AdjustedDistance: t.AdjustedDistance,
		FinalKm:          t.EffectiveDistance(),
		Parking:          t.Parking,
		Payment:          t.Payment,
	}
}

func toTripListResponse(ctx context.Context, trips []*domain.Trip, names *nameCache) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = toTripResponse(ctx, t, names)
	}
	return out
}

func toSummaryResponse(s *ports.Summary) summaryResponse {
	return summaryResponse{
		TotalTrips:    s.TotalTrips,
		TotalDistance: s.TotalDistance,
		TotalParking:  s.TotalParking,
		TotalPayment:  s.TotalPayment,
		DeclinedTrips: s.DeclinedTrips,
	}
}

func toPendingCountResponse(counts []ports.PendingCount) []pendingCountResponse {
	out := make([]pendingCountResponse, len(counts))
	for i, c := range counts {
		out[i] = pendingCountResponse{ManagerName: c.ManagerName, Count: c.Count}
	}
	return out
}
