package gmprocess

import "errors"

// Domain errors for process configuration.
var (
	// ErrInvalidParameter indicates a rejected parameter set; the process keeps
	// its previous parameters.
	ErrInvalidParameter = errors.New("gmprocess: invalid parameter")
)
