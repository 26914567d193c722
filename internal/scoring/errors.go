package scoring

import "errors"

// Errors returned by the scoring engine. All of them indicate input that violates the
// fixed data shape; callers should surface them rather than retry.
var (
	// ErrDataIntegrity indicates malformed fixed-length input or validation flags that
	// disagree with the scores they are supposed to describe.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrUnknownFormat indicates a competition format or scoring basis the engine has no rule for.
	ErrUnknownFormat = errors.New("unknown competition format")
)
