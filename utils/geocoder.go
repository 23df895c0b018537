package utils

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"
)

const geocodeTimeout = 5 * time.Second

var ErrNoAddressFound = errors.New("no address found for coordinates")

// Geocoder resolves coordinates to a postal address. Assessment creation
// falls back to it when the field crew drops a pin instead of typing the
// address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// GoogleGeocoder wraps the Google Maps geocoding API. Every call carries a
// bounded timeout; a slow or failing lookup fails the request instead of
// letting an assessment through without an address.
type GoogleGeocoder struct {
	client *maps.Client
	log    *logrus.Logger
}

func NewGoogleGeocoder(apiKey string, log *logrus.Logger) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleGeocoder{client: client, log: log}, nil
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		g.log.WithError(err).WithFields(logrus.Fields{
			"lat": lat,
			"lng": lng,
		}).Warn("reverse geocoding failed")
		return "", err
	}
	if len(results) == 0 {
		return "", ErrNoAddressFound
	}
	return results[0].FormattedAddress, nil
}
