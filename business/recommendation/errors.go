package recommendation

import "errors"

var (
	ErrInvalidUserID          = errors.New("user id must be greater than 0")
	ErrInvalidProductID       = errors.New("product id must be greater than 0")
	ErrInvalidLimit           = errors.New("limit out of range")
	ErrInvalidActionType      = errors.New("invalid action type")
	ErrInvalidStrategy        = errors.New("invalid strategy")
	ErrInvalidSort            = errors.New("invalid sort")
	ErrEmptyInteractionUpdate = errors.New("interaction update has no fields")
	ErrInvalidScore           = errors.New("score must be between 0 and 1")
)

// IsValidationError reports whether err was caused by bad caller input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidUserID,
		ErrInvalidProductID,
		ErrInvalidLimit,
		ErrInvalidActionType,
		ErrInvalidStrategy,
		ErrInvalidSort,
		ErrEmptyInteractionUpdate,
		ErrInvalidScore,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
