package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
)

// Reference point used by the registry checks. It has a spherical form.
const refX, refY, refZ = 3.0, 4.0, 6.7

var errNoRegistry = errors.New("no registry configured")

// InterningCheck verifies that repeated factory calls share one instance.
func InterningCheck(reg *coord.Registry) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reg == nil {
			return errNoRegistry
		}
		a, err := reg.Cartesian(refX, refY, refZ)
		if err != nil {
			return fmt.Errorf("interning: %w", err)
		}
		b, err := reg.Cartesian(refX, refY, refZ)
		if err != nil {
			return fmt.Errorf("interning: %w", err)
		}
		if a != b {
			return fmt.Errorf("interning: repeated calls for %s returned distinct instances", a)
		}
		return nil
	})
}

// ConversionCheck verifies a Cartesian-spherical round trip of the reference point.
func ConversionCheck(reg *coord.Registry) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := reg.Cartesian(refX, refY, refZ)
		if err != nil {
			return fmt.Errorf("conversion: %w", err)
		}
		s, err := c.AsSpherical()
		if err != nil {
			return fmt.Errorf("conversion: %w", err)
		}
		back, err := s.AsCartesian()
		if err != nil {
			return fmt.Errorf("conversion: %w", err)
		}
		if !c.Equal(back) {
			return fmt.Errorf("conversion: %s came back as %s", c, back)
		}
		return nil
	})
}

// ForRegistry returns a Service with the interning and conversion checks for reg.
func ForRegistry(reg *coord.Registry) *Service {
	return New().
		WithCheck("interning", InterningCheck(reg)).
		WithCheck("conversion", ConversionCheck(reg))
}
