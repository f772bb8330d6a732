package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/internal/auth"
	"github.com/phonedesk/phonedesk-backend/internal/users"
	pkgAuth "github.com/phonedesk/phonedesk-backend/pkg/auth"
	"github.com/phonedesk/phonedesk-backend/pkg/auth/session"
	"github.com/phonedesk/phonedesk-backend/pkg/config"
)

type stubAuthService struct {
	registered *auth.RegisterRequest
	loggedIn   *auth.LoginRequest
	profile    *users.UserDTO
	err        error
}

func (s *stubAuthService) Register(_ context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	s.registered = &req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.RegisterResponse{
		TokenPair: auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		User:      s.profile,
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.loggedIn = &req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.LoginResponse{
		TokenPair: auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		User:      s.profile,
	}, nil
}

func (s *stubAuthService) GetProfile(context.Context, uuid.UUID) (*users.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubAuthService) UpdateProfile(context.Context, uuid.UUID, auth.UpdateProfileRequest) (*users.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubAuthService) ChangePassword(context.Context, uuid.UUID, auth.ChangePasswordRequest) error {
	return s.err
}

type stubRotator struct {
	rotatedFrom string
	revoked     string
	rotateErr   error
}

func (s *stubRotator) Rotate(_ context.Context, oldAccessID, _ string) (string, string, error) {
	s.rotatedFrom = oldAccessID
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return uuid.NewString(), "new-refresh", nil
}

func (s *stubRotator) Revoke(_ context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}

func sampleUserDTO() *users.UserDTO {
	return &users.UserDTO{
		ID:       uuid.New(),
		Name:     "Ravish Kumar",
		Email:    "owner@example.com",
		Mobile:   "9876543210",
		ShopName: "Kumar Mobiles",
		IsActive: true,
	}
}

func TestAuthRegisterCreatesAccount(t *testing.T) {
	stub := &stubAuthService{profile: sampleUserDTO()}
	payload := `{"name":"Ravish Kumar","email":"owner@example.com","password":"hunter2boat","mobile":"9876543210","shopName":"Kumar Mobiles"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	AuthRegister(stub, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.registered == nil || stub.registered.Email != "owner@example.com" {
		t.Fatalf("expected register payload, got %+v", stub.registered)
	}

	var body struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.AccessToken == "" || body.Data.RefreshToken == "" {
		t.Fatalf("expected token pair in response, got %+v", body.Data)
	}
}

func TestAuthRegisterRejectsInvalidPayload(t *testing.T) {
	stub := &stubAuthService{}
	payload := `{"name":"R","email":"not-an-email","password":"short","mobile":"","shopName":""}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	AuthRegister(stub, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if stub.registered != nil {
		t.Fatal("service should not be called on invalid payload")
	}
}

func TestAuthLoginPassesCredentials(t *testing.T) {
	stub := &stubAuthService{profile: sampleUserDTO()}
	payload := `{"email":"owner@example.com","password":"hunter2boat"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	AuthLogin(stub, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.loggedIn == nil || stub.loggedIn.Email != "owner@example.com" {
		t.Fatalf("expected login payload, got %+v", stub.loggedIn)
	}
}

func TestAuthRefreshRotatesSession(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "phonedesk-test", ExpirationMinutes: 15}
	accessID := uuid.NewString()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "owner@example.com",
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rotator := &stubRotator{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refreshToken":"old-refresh"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthRefresh(rotator, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rotator.rotatedFrom != accessID {
		t.Fatalf("expected rotation from %s, got %s", accessID, rotator.rotatedFrom)
	}

	var body struct {
		Data auth.TokenPair `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.AccessToken == "" || body.Data.RefreshToken != "new-refresh" {
		t.Fatalf("expected fresh token pair, got %+v", body.Data)
	}
}

func TestAuthRefreshRejectsBadRefreshToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "phonedesk-test", ExpirationMinutes: 15}
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refreshToken":"stolen"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthRefresh(rotator, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "phonedesk-test", ExpirationMinutes: 15}
	accessID := uuid.NewString()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rotator := &stubRotator{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthLogout(rotator, cfg, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rotator.revoked != accessID {
		t.Fatalf("expected revoke of %s, got %s", accessID, rotator.revoked)
	}
}

func TestAuthProfileRequiresContext(t *testing.T) {
	stub := &stubAuthService{profile: sampleUserDTO()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	rec := httptest.NewRecorder()
	AuthProfile(stub, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without owner context, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req = req.WithContext(ownerContext(uuid.New()))
	rec = httptest.NewRecorder()
	AuthProfile(stub, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthChangePasswordSurfacesServiceError(t *testing.T) {
	stub := &stubAuthService{err: errors.New("boom")}
	payload := `{"currentPassword":"hunter2boat","newPassword":"hunter3plane"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/change-password", strings.NewReader(payload))
	req = req.WithContext(ownerContext(uuid.New()))
	rec := httptest.NewRecorder()
	AuthChangePassword(stub, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for untyped error, got %d", rec.Code)
	}
}
