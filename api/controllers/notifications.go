package controllers

import (
	"net/http"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	"github.com/contactdesk/contactdesk-backend/internal/notify"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

type notificationSource interface {
	Current() (notify.Notification, bool)
}

// NotificationsCurrent returns the visible banner, or a null notification
// when the slot is empty.
func NotificationsCurrent(src notificationSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifier unavailable"))
			return
		}

		current, ok := src.Current()
		if !ok {
			responses.WriteSuccess(w, map[string]any{"notification": nil})
			return
		}
		responses.WriteSuccess(w, map[string]any{"notification": current})
	}
}
