// Package location acquires a coarse, human-readable place name used to
// personalize requests. Resolution is best-effort: denial or failure leaves
// the location unset and never blocks onboarding.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Unavailable is recorded when resolution was attempted but failed.
const Unavailable = "Location not available"

// PermissionGate answers whether the user allows location access.
type PermissionGate interface {
	Allowed(ctx context.Context) bool
}

// PositionSource produces device coordinates.
type PositionSource interface {
	Position(ctx context.Context) (lat, lon float64, err error)
}

// Place is a reverse-geocoded location.
type Place struct {
	City    string
	Country string
}

// Geocoder resolves coordinates to a place.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}

// Resolver composes the three collaborators into a single best-effort lookup.
type Resolver struct {
	gate PermissionGate
	pos  PositionSource
	geo  Geocoder
	log  *slog.Logger
}

// NewResolver wires a Resolver. A nil logger falls back to slog.Default.
func NewResolver(gate PermissionGate, pos PositionSource, geo Geocoder, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{gate: gate, pos: pos, geo: geo, log: log}
}

// Resolve returns "<city>, <country>" with missing parts omitted. Permission
// denial returns an empty string silently; any failure after permission was
// granted returns the Unavailable placeholder. Resolve never returns an
// error.
func (r *Resolver) Resolve(ctx context.Context) string {
	if !r.gate.Allowed(ctx) {
		r.log.Debug("location permission denied, leaving location unset")
		return ""
	}

	lat, lon, err := r.pos.Position(ctx)
	if err != nil {
		r.log.Warn("position fetch failed", "error", err)
		return Unavailable
	}

	place, err := r.geo.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		r.log.Warn("reverse geocoding failed", "error", err)
		return Unavailable
	}

	return Compose(place)
}

// Compose renders a place as "city, country", omitting unavailable parts.
func Compose(p Place) string {
	var parts []string
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	if len(parts) == 0 {
		return Unavailable
	}
	return strings.Join(parts, ", ")
}

// FixedGate is a PermissionGate backed by a config flag.
type FixedGate bool

func (g FixedGate) Allowed(context.Context) bool { return bool(g) }

// StaticPosition is a PositionSource with fixed coordinates, e.g. from
// configuration on platforms without a location service.
type StaticPosition struct {
	Lat, Lon float64
}

func (s StaticPosition) Position(context.Context) (float64, float64, error) {
	if s.Lat == 0 && s.Lon == 0 {
		return 0, 0, fmt.Errorf("no coordinates configured")
	}
	return s.Lat, s.Lon, nil
}
