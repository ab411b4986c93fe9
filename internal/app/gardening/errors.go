package gardening

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid garden request")
	ErrInvalidActionParams = errors.New("invalid action params")
	ErrGardenNotLoaded     = errors.New("garden not loaded")
	ErrNoGarden            = errors.New("user has no garden")
)
