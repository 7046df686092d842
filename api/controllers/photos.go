package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

type photoService interface {
	Add(data []byte) (string, error)
	Get(id string) ([]byte, string, error)
	MaxBytes() int64
}

// PhotosUpload accepts a multipart upload under the "photo" field and returns
// the reference a contact draft carries. The body is read up to one byte past
// the accepted maximum so oversized files are rejected by the intake rules
// rather than a truncated read.
func PhotosUpload(svc photoService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(svc.MaxBytes() + 1); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, _, err := r.FormFile("photo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "photo field required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, svc.MaxBytes()+1))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload"))
			return
		}

		id, err := svc.Add(data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"photo_id": id})
	}
}

// PhotosServe streams a stored photo back with its detected content type.
func PhotosServe(svc photoService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		data, contentType, err := svc.Get(chi.URLParam(r, "photoId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil && logg != nil {
			logg.Error(r.Context(), "write photo response", err)
		}
	}
}
