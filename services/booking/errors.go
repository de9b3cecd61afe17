package booking

import "fmt"

// ValidationError indicates the request itself was malformed or violates a
// booking rule. Maps to a 400 at the HTTP layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// AuthorizationError indicates the acting user is not permitted to perform
// the operation on this booking. Maps to a 403.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// ConflictError indicates the booking's persisted state no longer permits the
// requested transition, or that the requested dates collide with another
// booking. Maps to a 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError indicates the referenced booking, venue or menu item does not
// exist. Maps to a 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ProviderError indicates an upstream provider (checkout, holiday calendar)
// failed. Maps to a 502.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
