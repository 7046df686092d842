package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactdesk/contactdesk-backend/internal/location"
)

func TestLocationResolveSuccess(t *testing.T) {
	svc := location.NewService(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/location/resolve?lat=-6.2&lng=106.8", nil)
	resp := httptest.NewRecorder()
	LocationResolve(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data location.Point `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Lat != -6.2 || envelope.Data.Lng != 106.8 {
		t.Fatalf("unexpected point %+v", envelope.Data)
	}
}

func TestLocationResolveMissingParams(t *testing.T) {
	svc := location.NewService(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/location/resolve?lat=1", nil)
	resp := httptest.NewRecorder()
	LocationResolve(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLocationResolveNonNumericParams(t *testing.T) {
	svc := location.NewService(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/location/resolve?lat=abc&lng=106.8", nil)
	resp := httptest.NewRecorder()
	LocationResolve(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLocationResolveOutOfRange(t *testing.T) {
	svc := location.NewService(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/location/resolve?lat=95&lng=10", nil)
	resp := httptest.NewRecorder()
	LocationResolve(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
