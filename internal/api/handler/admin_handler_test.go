package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

func TestAdminHandler_CreateRunner(t *testing.T) {
	users := directoryUsers()
	handler := NewAdminHandler(users, &stubAuthService{}, &stubReportService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/admin/create-runner", `{"name":"Sunil","phone":"9000000003","password":"secret1"}`)
	asRole(c, "adm_1", domain.RoleAdmin)

	if err := handler.CreateRunner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "Sunil" || resp["role"] != domain.RoleRunner {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_CreateManager_SetsRole(t *testing.T) {
	users := directoryUsers()
	handler := NewAdminHandler(users, &stubAuthService{}, &stubReportService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/admin/create-manager", `{"name":"Asha","phone":"9000000004","password":"secret1"}`)
	asRole(c, "adm_1", domain.RoleAdmin)

	if err := handler.CreateManager(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != domain.RoleManager {
		t.Fatalf("expected manager role, got %v", resp["role"])
	}
}

func TestAdminHandler_CreateRunner_ShortPassword(t *testing.T) {
	handler := NewAdminHandler(directoryUsers(), &stubAuthService{}, &stubReportService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/admin/create-runner", `{"name":"X","phone":"9000000005","password":"abc"}`)
	asRole(c, "adm_1", domain.RoleAdmin)

	if code := httpCode(t, handler.CreateRunner(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAdminHandler_ResetPassword(t *testing.T) {
	called := false
	auth := &stubAuthService{
		resetFn: func(ctx context.Context, phone, newPassword string) error {
			called = true
			if phone != "9000000001" || newPassword != "newpass" {
				t.Fatalf("unexpected args: %s %s", phone, newPassword)
			}
			return nil
		},
	}
	handler := NewAdminHandler(directoryUsers(), auth, &stubReportService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/admin/reset-password", `{"phone":"9000000001","newPassword":"newpass"}`)
	asRole(c, "adm_1", domain.RoleAdmin)

	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("auth service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	reports := &stubReportService{
		adminStatsFn: func(ctx context.Context) (*ports.AdminStats, error) {
			return &ports.AdminStats{TotalRunners: 5, TotalManagers: 2, TotalTrips: 40, ApprovedTrips: 30, DeclinedTrips: 4, PendingTrips: 6}, nil
		},
	}
	handler := NewAdminHandler(directoryUsers(), &stubAuthService{}, reports)

	c, rec := newTestContext(t, http.MethodGet, "/api/admin/stats", "")
	asRole(c, "adm_1", domain.RoleAdmin)

	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalRunners"] != 5.0 || resp["pendingTrips"] != 6.0 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_BillingExport(t *testing.T) {
	reports := &stubReportService{
		billingExportFn: func(ctx context.Context) (*ports.BillingExport, error) {
			return &ports.BillingExport{
				BatchID:     "batch-1",
				GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
				Rows: []ports.BillingRow{
					{
						TripID:         "trip_1",
						Runner:         &domain.User{Name: "Ravi", Phone: "9000000001"},
						Manager:        &domain.User{Name: "Meera"},
						Distance:       8,
						ParkingCharges: 5,
						Payment:        85,
					},
				},
			}, nil
		},
	}
	handler := NewAdminHandler(directoryUsers(), &stubAuthService{}, reports)

	c, rec := newTestContext(t, http.MethodGet, "/api/admin/billing-export", "")
	asRole(c, "adm_1", domain.RoleAdmin)

	if err := handler.BillingExport(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["batchId"] != "batch-1" {
		t.Fatalf("expected batch id, got %v", resp["batchId"])
	}
	rows, ok := resp["rows"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one row, got %+v", resp["rows"])
	}
	row := rows[0].(map[string]any)
	if row["payment"] != 85.0 {
		t.Fatalf("unexpected row: %+v", row)
	}
	runner := row["runner"].(map[string]any)
	if runner["name"] != "Ravi" || runner["phone"] != "9000000001" {
		t.Fatalf("unexpected runner: %+v", runner)
	}
}
