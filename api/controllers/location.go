package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	"github.com/contactdesk/contactdesk-backend/internal/location"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

// LocationResolve turns a map pick into a point, with a display address when
// the geocoder can provide one.
func LocationResolve(svc location.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "location service unavailable"))
			return
		}

		lat, err := coordinateParam(r, "lat")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lng, err := coordinateParam(r, "lng")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		point, err := svc.Resolve(r.Context(), lat, lng)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, point)
	}
}

func coordinateParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" must be a number")
	}
	return value, nil
}
