package stream

import "github.com/pkg/errors"

var (
	ErrNotInStream     = errors.New("element not in stream")
	ErrNoTimeSignature = errors.New("no time signature")
	ErrCannotPlace     = errors.New("cannot place element within any measure")
	ErrNoRenderSurface = errors.New("no rendered elements")
	ErrBadElement      = errors.New("malformed element")
)
