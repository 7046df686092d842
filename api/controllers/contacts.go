package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	"github.com/contactdesk/contactdesk-backend/api/validators"
	"github.com/contactdesk/contactdesk-backend/internal/contacts"
	"github.com/contactdesk/contactdesk-backend/internal/notify"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

const (
	checkFormMessage      = "Check the form data first"
	contactAddedMessage   = "Contact successfully added!"
	contactUpdatedMessage = "Contact successfully updated!"
	contactDeletedMessage = "Contact successfully deleted!"
	saveFailedMessage     = "Failed to save data. Please try again."
)

type contactStore interface {
	Add(ctx context.Context, draft contacts.Draft) (contacts.Contact, error)
	Update(ctx context.Context, id uuid.UUID, draft contacts.Draft) (contacts.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) []contacts.Contact
	Get(ctx context.Context, id uuid.UUID) (contacts.Contact, error)
}

// ContactsList returns the contact list, optionally filtered by the search
// term against contact names.
func ContactsList(store contactStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		list := store.List(r.Context(), r.URL.Query().Get("search"))
		responses.WriteSuccess(w, map[string]any{"contacts": list})
	}
}

// ContactsGet returns a single contact by id.
func ContactsGet(store contactStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		id, err := contactIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := store.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contact)
	}
}

// ContactsCreate validates the draft and appends it to the list.
func ContactsCreate(store contactStore, notifier *notify.Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		draft, err := decodeDraft(r, notifier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := store.Add(r.Context(), draft)
		if err != nil {
			notifySaveFailure(notifier, err)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if notifier != nil {
			notifier.Show(notify.KindSuccess, contactAddedMessage, 0, nil)
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, contact)
	}
}

// ContactsUpdate validates the draft and replaces the addressed contact in
// place, keeping its list position.
func ContactsUpdate(store contactStore, notifier *notify.Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		id, err := contactIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := decodeDraft(r, notifier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := store.Update(r.Context(), id, draft)
		if err != nil {
			notifySaveFailure(notifier, err)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if notifier != nil {
			notifier.Show(notify.KindSuccess, contactUpdatedMessage, 0, nil)
		}
		responses.WriteSuccess(w, contact)
	}
}

// ContactsDelete removes the addressed contact.
func ContactsDelete(store contactStore, notifier *notify.Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact store unavailable"))
			return
		}

		id, err := contactIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Delete(r.Context(), id); err != nil {
			notifySaveFailure(notifier, err)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if notifier != nil {
			notifier.Show(notify.KindSuccess, contactDeletedMessage, 0, nil)
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func contactIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "contactId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid contact id")
	}
	return id, nil
}

// decodeDraft runs the form-level checks so every violation is reported in
// one response, mirrored by the banner.
func decodeDraft(r *http.Request, notifier *notify.Notifier) (contacts.Draft, error) {
	var draft contacts.Draft
	if err := validators.DecodeJSON(r, &draft); err != nil {
		return contacts.Draft{}, err
	}
	if violations := draft.Validate(); violations != nil {
		if notifier != nil {
			notifier.Show(notify.KindError, checkFormMessage, 0, nil)
		}
		return contacts.Draft{}, pkgerrors.New(pkgerrors.CodeValidation, checkFormMessage).WithDetails(violations)
	}
	return draft, nil
}

// notifySaveFailure surfaces persistence failures on the banner; a plain
// not-found is not a save failure.
func notifySaveFailure(notifier *notify.Notifier, err error) {
	if notifier == nil {
		return
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return
	}
	notifier.Show(notify.KindError, saveFailedMessage, 0, nil)
}
