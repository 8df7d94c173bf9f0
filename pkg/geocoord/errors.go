package geocoord

import "github.com/kailas-cloud/geocoord/internal/domain/coord"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArgument   = coord.ErrInvalidArgument
	ErrConversionFailed  = coord.ErrConversionFailed
	ErrComputationFailed = coord.ErrComputationFailed
)

// OpError carries the failing operation and coordinate. Use errors.As() to extract it.
type OpError = coord.OpError
