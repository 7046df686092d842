package middleware

import (
	"net/http"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

// SessionChecker reports whether the account is currently signed in.
type SessionChecker interface {
	LoggedIn() bool
}

// RequireSession rejects requests made while the account is signed out.
func RequireSession(checker SessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if checker == nil || !checker.LoggedIn() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
