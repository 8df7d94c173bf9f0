package coord

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals a non-finite, out-of-range or absent input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConversionFailed signals a Cartesian to spherical conversion that hit a singularity.
	ErrConversionFailed = errors.New("conversion failed")
	// ErrComputationFailed signals a derived distance or angle that failed its postcondition.
	ErrComputationFailed = errors.New("computation failed")
)

// OpError describes a failed operation on a specific coordinate.
// It unwraps to Kind, so callers match it with errors.Is against the sentinels above.
type OpError struct {
	Op    string
	Coord Coordinate
	Kind  error
	Cause error
}

func (e *OpError) Error() string {
	msg := fmt.Sprintf("%s on %s: %s", e.Op, describe(e.Coord), e.Kind.Error())
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error { return e.Kind }

func newOpError(op string, c Coordinate, kind, cause error) error {
	return &OpError{Op: op, Coord: c, Kind: kind, Cause: cause}
}

func describe(c Coordinate) string {
	if !present(c) {
		return "<nil coordinate>"
	}
	return c.String()
}
