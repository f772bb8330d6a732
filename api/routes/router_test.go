package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/internal/auth"
	phonesvc "github.com/phonedesk/phonedesk-backend/internal/phones"
	"github.com/phonedesk/phonedesk-backend/internal/reports"
	salesvc "github.com/phonedesk/phonedesk-backend/internal/sales"
	"github.com/phonedesk/phonedesk-backend/internal/users"
	pkgAuth "github.com/phonedesk/phonedesk-backend/pkg/auth"
	"github.com/phonedesk/phonedesk-backend/pkg/config"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
	"github.com/phonedesk/phonedesk-backend/pkg/metrics"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

type routerPhoneService struct {
	phonesvc.Service
}

func (routerPhoneService) ListPhones(context.Context, phonesvc.ListPhonesInput) (*phonesvc.ListPhonesResult, error) {
	return &phonesvc.ListPhonesResult{Phones: []phonesvc.PhoneDTO{}, Pagination: pagination.Meta{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 10}}, nil
}

func (routerPhoneService) SearchPhones(context.Context, string) ([]phonesvc.PhoneDTO, error) {
	return []phonesvc.PhoneDTO{}, nil
}

func (routerPhoneService) GetPhone(context.Context, uuid.UUID) (*phonesvc.PhoneDTO, error) {
	return &phonesvc.PhoneDTO{ID: uuid.New()}, nil
}

func (routerPhoneService) StatusSummary(context.Context, uuid.UUID) (*phonesvc.StatusSummary, error) {
	return &phonesvc.StatusSummary{}, nil
}

type routerSalesService struct {
	salesvc.Service
}

func (routerSalesService) ListSales(context.Context, uuid.UUID, salesvc.ListSalesInput) (*salesvc.ListSalesResult, error) {
	return &salesvc.ListSalesResult{Sales: []phonesvc.PhoneDTO{}}, nil
}

type routerReportsService struct{}

func (routerReportsService) SalesReport(context.Context, uuid.UUID, reports.DateRange) (*reports.SalesReport, error) {
	return &reports.SalesReport{}, nil
}

type routerAuthService struct {
	auth.Service
}

func (routerAuthService) GetProfile(context.Context, uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

type routerSessionManager struct{}

func (routerSessionManager) HasSession(context.Context, string) (bool, error) { return true, nil }
func (routerSessionManager) Rotate(context.Context, string, string) (string, string, error) {
	return uuid.NewString(), "refresh", nil
}
func (routerSessionManager) Revoke(context.Context, string) error { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "router-secret", Issuer: "phonedesk-test", ExpirationMinutes: 15},
	}
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		Metrics:        metrics.NewRequestMetrics(),
		SessionManager: routerSessionManager{},
		AuthService:    routerAuthService{},
		PhoneService:   routerPhoneService{},
		SalesService:   routerSalesService{},
		ReportsService: routerReportsService{},
	})
}

func mintRouterToken(t *testing.T) string {
	t.Helper()
	cfg := config.JWTConfig{Secret: "router-secret", Issuer: "phonedesk-test", ExpirationMinutes: 15}
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "owner@example.com",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterPublicRoutes(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "health live", target: "/health/live", want: http.StatusOK},
		{name: "metrics", target: "/metrics", want: http.StatusOK},
		{name: "phones list", target: "/api/v1/phones", want: http.StatusOK},
		{name: "phones search", target: "/api/v1/phones/search/galaxy", want: http.StatusOK},
		{name: "phone detail", target: "/api/v1/phones/" + uuid.NewString(), want: http.StatusOK},
		{name: "unknown route", target: "/api/v1/nope", want: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("GET %s: expected %d, got %d: %s", tc.target, tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouterPrivateRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		method string
		target string
	}{
		{method: http.MethodPost, target: "/api/v1/phones"},
		{method: http.MethodGet, target: "/api/v1/phones/stats/summary"},
		{method: http.MethodGet, target: "/api/v1/sales"},
		{method: http.MethodGet, target: "/api/v1/sales/summary"},
		{method: http.MethodGet, target: "/api/v1/owner/profile"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRouterAuthorizedAccess(t *testing.T) {
	router := testRouter(t)
	token := mintRouterToken(t)

	tests := []struct {
		target string
	}{
		{target: "/api/v1/phones/stats/summary"},
		{target: "/api/v1/sales"},
		{target: "/api/v1/sales/summary"},
		{target: "/api/v1/owner/profile"},
	}
	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
