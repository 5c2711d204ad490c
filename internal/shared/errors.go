package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Identity errors
	ErrDuplicateEmail     = fmt.Errorf("an account with this email already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotLoggedIn        = fmt.Errorf("not logged in")

	// Catalog and service errors
	ErrCatalogUnavailable = fmt.Errorf("movie catalog unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
