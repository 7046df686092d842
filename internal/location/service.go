package location

import (
	"context"

	"github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/geocode"
)

// Point is a map-picked coordinate pair, optionally enriched with the
// display address the geocoder found for it.
type Point struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

type Service interface {
	Resolve(ctx context.Context, lat, lng float64) (Point, error)
}

type service struct {
	geo *geocode.Client
}

// NewService builds the location service. A nil geocode client is allowed;
// resolution then degrades to coordinates only.
func NewService(client *geocode.Client) Service {
	return &service{geo: client}
}

func (s *service) Resolve(ctx context.Context, lat, lng float64) (Point, error) {
	if lat < -90 || lat > 90 {
		return Point{}, errors.New(errors.CodeValidation, "latitude out of range")
	}
	if lng < -180 || lng > 180 {
		return Point{}, errors.New(errors.CodeValidation, "longitude out of range")
	}

	point := Point{Lat: lat, Lng: lng}
	if s.geo == nil {
		return point, nil
	}

	result, err := s.geo.Reverse(ctx, lat, lng)
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
			// nothing nearby; the pick is still usable
			return point, nil
		}
		return Point{}, err
	}
	point.Address = result.FormattedAddress
	return point, nil
}
