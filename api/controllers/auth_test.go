package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contactdesk/contactdesk-backend/internal/identity"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
	"github.com/contactdesk/contactdesk-backend/pkg/types"
)

type testIdentityService struct {
	registerFn func(ctx context.Context, username, email, password string) (identity.SessionDTO, error)
	loginFn    func(ctx context.Context, email, password string) (identity.SessionDTO, error)
	logoutFn   func(ctx context.Context) bool
	sessionFn  func() identity.SessionDTO
}

func (s *testIdentityService) Register(ctx context.Context, username, email, password string) (identity.SessionDTO, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, username, email, password)
	}
	return identity.SessionDTO{}, nil
}

func (s *testIdentityService) Login(ctx context.Context, email, password string) (identity.SessionDTO, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, email, password)
	}
	return identity.SessionDTO{}, nil
}

func (s *testIdentityService) Logout(ctx context.Context) bool {
	if s.logoutFn != nil {
		return s.logoutFn(ctx)
	}
	return false
}

func (s *testIdentityService) Session() identity.SessionDTO {
	if s.sessionFn != nil {
		return s.sessionFn()
	}
	return identity.SessionDTO{}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAuthRegisterSuccess(t *testing.T) {
	svc := &testIdentityService{
		registerFn: func(ctx context.Context, username, email, password string) (identity.SessionDTO, error) {
			if username != "jane.doe.1" {
				t.Fatalf("unexpected username %q", username)
			}
			return identity.SessionDTO{
				LoggedIn: true,
				User:     &identity.UserDTO{Username: username, Email: email},
			}, nil
		},
	}

	body := `{"username":"jane.doe.1","email":"jane@example.com","password":"s3cret!pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data identity.SessionDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data.LoggedIn {
		t.Fatal("expected logged_in session")
	}
}

func TestAuthRegisterRejectsWeakBody(t *testing.T) {
	svc := &testIdentityService{
		registerFn: func(ctx context.Context, username, email, password string) (identity.SessionDTO, error) {
			t.Fatal("service must not be called")
			return identity.SessionDTO{}, nil
		},
	}

	// short username, bad email, password without digits or symbols
	body := `{"username":"short","email":"nope","password":"password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected field details, got %v", envelope.Error.Details)
	}
	for _, field := range []string{"username", "email", "password"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected violation for %q in %v", field, details)
		}
	}
}

func TestAuthLoginFailureIsGeneric(t *testing.T) {
	svc := &testIdentityService{
		loginFn: func(ctx context.Context, email, password string) (identity.SessionDTO, error) {
			return identity.SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "Incorrect email or password!")
		},
	}

	body := `{"email":"jane@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Message != "Incorrect email or password!" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestAuthLogoutAccepted(t *testing.T) {
	svc := &testIdentityService{
		logoutFn: func(ctx context.Context) bool { return true },
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	AuthLogout(svc, testLogger())(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", resp.Code)
	}

	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data["logout_started"] {
		t.Fatal("expected logout_started flag")
	}
}

func TestAuthSessionSnapshot(t *testing.T) {
	svc := &testIdentityService{
		sessionFn: func() identity.SessionDTO {
			return identity.SessionDTO{LoggedIn: true, User: &identity.UserDTO{Username: "jane.doe.1", Email: "jane@example.com"}}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	resp := httptest.NewRecorder()
	AuthSession(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}

	var envelope struct {
		Data identity.SessionDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != "jane@example.com" {
		t.Fatalf("unexpected session %+v", envelope.Data)
	}
}
