package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound = errors.New("not found")

	// Recipe validation. These never reach the network.
	ErrCapacityExceeded    = errors.New("a blend may hold at most 5 components")
	ErrMinimumSize         = errors.New("a blend needs at least 2 components")
	ErrDuplicateComponent  = errors.New("component is already in the recipe")
	ErrOutOfRange          = errors.New("percentage must be between 0 and 100")
	ErrComponentNotFound   = errors.New("component not in recipe")
	ErrUnknownComponent    = errors.New("component is not in the catalog")
	ErrRecipeTooSmall      = errors.New("a blend requires at least two components")
	ErrRecipeNotNormalized = errors.New("total percentage is not 100%")

	ErrBusy               = errors.New("a prediction is already in flight")
	ErrNoResult           = errors.New("no prediction result yet")
	ErrCatalogUnavailable = errors.New("component catalog is unavailable")
	ErrUnknownFuelType    = errors.New("unknown fuel type")
)
