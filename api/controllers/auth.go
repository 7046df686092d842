package controllers

import (
	"context"
	"net/http"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	"github.com/contactdesk/contactdesk-backend/api/validators"
	"github.com/contactdesk/contactdesk-backend/internal/identity"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

type identityService interface {
	Register(ctx context.Context, username, email, password string) (identity.SessionDTO, error)
	Login(ctx context.Context, email, password string) (identity.SessionDTO, error)
	Logout(ctx context.Context) bool
	Session() identity.SessionDTO
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=8,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password_strength"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthRegister overwrites the single stored account and signs the caller in.
func AuthRegister(svc identityService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Register(r.Context(), body.Username, body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// AuthLogin checks the submitted credentials against the stored account.
func AuthLogin(svc identityService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// AuthLogout starts the deferred session clear. The 202 reflects that the
// session stays alive until the confirmation has been displayed.
func AuthLogout(svc identityService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		started := svc.Logout(r.Context())
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]bool{"logout_started": started})
	}
}

// AuthSession reports the current session state.
func AuthSession(svc identityService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.Session())
	}
}
