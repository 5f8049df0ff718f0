package surface

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain reports an unusable parameter domain: a non-positive step,
	// an empty span, or sampling that reaches a singularity.
	ErrDomain = errors.New("invalid parameter domain")

	// ErrSingularity is an ErrDomain raised when a sample falls within the
	// finite-difference guard of a declared singular point.
	ErrSingularity = fmt.Errorf("%w: sample too close to a singularity", ErrDomain)

	// ErrDegenerateNormal reports collinear or zero finite-difference tangents.
	ErrDegenerateNormal = errors.New("degenerate surface normal")

	// ErrUnknownFamily is returned when parsing an unrecognised family name.
	ErrUnknownFamily = errors.New("unknown surface family")
)
