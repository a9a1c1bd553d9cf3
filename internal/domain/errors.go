package domain

import "errors"

// Error taxonomy shared by the calculation engine and its callers. Concrete
// errors wrap one of these with context; match them with errors.Is.
var (
	// ErrInvalidInput reports a scenario input that is missing, negative where
	// disallowed, or otherwise unusable. Raised before any year is projected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputationDivergence reports a value that left the representable
	// range mid-projection (a zero divisor or a float overflow). The whole
	// projection for that scenario is aborted.
	ErrComputationDivergence = errors.New("computation diverged")

	// ErrRangeMisconfiguration reports a sweep axis whose range cannot be
	// expanded (max < min, non-positive step, duplicate or unknown parameter).
	ErrRangeMisconfiguration = errors.New("range misconfiguration")
)
