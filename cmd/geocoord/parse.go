package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
	"github.com/kailas-cloud/geocoord/internal/domain/geo"
)

const pointUsage = "want c:x,y,z, s:phi,theta,r or g:lat,lon"

// parsePoint reads a point written as c:x,y,z (Cartesian), s:phi,theta,r (spherical)
// or g:lat,lon (degrees, placed on the Earth sphere in meters).
func parsePoint(reg *coord.Registry, s string) (coord.Coordinate, error) {
	prefix, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return nil, fmt.Errorf("point %q: %w: %s", s, coord.ErrInvalidArgument, pointUsage)
	}

	parts := strings.Split(rest, ",")
	want := 3
	if isGeodetic(prefix) {
		want = 2
	}
	if len(parts) != want {
		return nil, fmt.Errorf("point %q: %w: expected %d components, got %d", s, coord.ErrInvalidArgument, want, len(parts))
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w: component %d: %v", s, coord.ErrInvalidArgument, i+1, err)
		}
		v[i] = f
	}

	switch strings.ToLower(prefix) {
	case "g", "geo":
		c, err := geo.FromLatLon(reg, v[0], v[1], geo.EarthRadiusMeters)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", s, err)
		}
		return c, nil
	case "c", "cartesian":
		c, err := reg.Cartesian(v[0], v[1], v[2])
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", s, err)
		}
		return c, nil
	case "s", "spherical":
		sp, err := reg.Spherical(v[0], v[1], v[2])
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", s, err)
		}
		return sp, nil
	default:
		return nil, fmt.Errorf("point %q: %w: unknown prefix %q, %s", s, coord.ErrInvalidArgument, prefix, pointUsage)
	}
}

func isGeodetic(prefix string) bool {
	p := strings.ToLower(prefix)
	return p == "g" || p == "geo"
}

func parsePair(reg *coord.Registry, args []string) (coord.Coordinate, coord.Coordinate, error) {
	a, err := parsePoint(reg, args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := parsePoint(reg, args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func formatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
