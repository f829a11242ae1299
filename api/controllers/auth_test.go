package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/canchapp/canchapp-backend/internal/auth"
	"github.com/canchapp/canchapp-backend/pkg/config"
	"github.com/canchapp/canchapp-backend/internal/users"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "canchapp-test",
		ExpirationMinutes: 15,
	}
}

type stubRegisterService struct {
	got *auth.RegisterRequest
	err error
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.got = &req
	return &users.UserDTO{ID: uuid.New(), Email: req.Email, Name: req.Name}, nil
}

type stubAuthService struct {
	loginErr  error
	loggedOut string
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = accessID
	return nil
}

func TestAuthRegisterSuccess(t *testing.T) {
	svc := &stubRegisterService{}
	body := `{"name":"Lucia","email":"lucia@example.com","password":"hunter2!","role":"player"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthRegister(svc, nil)(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.got == nil || svc.got.Email != "lucia@example.com" {
		t.Fatalf("unexpected register request: %+v", svc.got)
	}
}

func TestAuthRegisterRejectsUnknownFields(t *testing.T) {
	svc := &stubRegisterService{}
	body := `{"name":"Lucia","email":"lucia@example.com","password":"hunter2!","role":"player","admin":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthRegister(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.got != nil {
		t.Fatal("service should not be called for a rejected payload")
	}
}

func TestAuthLoginPropagatesError(t *testing.T) {
	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	body := `{"email":"lucia@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil)(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
}

func TestAuthLogoutRequiresToken(t *testing.T) {
	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	AuthLogout(svc, testJWTConfig(), nil)(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if svc.loggedOut != "" {
		t.Fatal("logout should not run without a token")
	}
}
