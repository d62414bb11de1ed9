package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify publishing failures. Config class errors skip
// the current platform task; the rest abort the run.
var (
	// ErrTagConfig marks a missing or invalid configuration field,
	// detected before any network call
	ErrTagConfig = goerr.NewTag("config")

	// ErrTagNotFound marks a missing local resource such as an
	// artifact file that was configured but does not exist
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagAPI marks an unexpected remote API failure
	ErrTagAPI = goerr.NewTag("api")

	// ErrTagUnexplained marks an operation that returned no result and
	// no error where a result was required
	ErrTagUnexplained = goerr.NewTag("unexplained")
)
