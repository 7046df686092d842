package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contactdesk/contactdesk-backend/internal/notify"
)

func TestNotificationsCurrentEmptySlot(t *testing.T) {
	notifier := notify.New()
	defer notifier.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/current", nil)
	resp := httptest.NewRecorder()
	NotificationsCurrent(notifier, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}

	var envelope struct {
		Data map[string]*notify.Notification `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["notification"] != nil {
		t.Fatalf("expected null notification, got %+v", envelope.Data["notification"])
	}
}

func TestNotificationsCurrentVisibleMessage(t *testing.T) {
	notifier := notify.New()
	defer notifier.Close()
	notifier.Show(notify.KindSuccess, "Contact successfully added!", time.Minute, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/current", nil)
	resp := httptest.NewRecorder()
	NotificationsCurrent(notifier, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}

	var envelope struct {
		Data map[string]*notify.Notification `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	got := envelope.Data["notification"]
	if got == nil || got.Message != "Contact successfully added!" || got.Kind != notify.KindSuccess {
		t.Fatalf("unexpected notification %+v", got)
	}
}
