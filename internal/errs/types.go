package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// UnauthorizedError covers the whole session-gate taxonomy: missing or
// malformed header, invalid or expired token, token with no matching user.
// The message carries the distinction; the HTTP class is always the same.
type UnauthorizedError struct {
	ErrorMessage
}

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// DatabaseError marks a store write or read that failed; Operation names the
// logical operation for logging, never exposed to the caller.
type DatabaseError struct {
	ErrorMessage
	Operation string
}

// ExternalServiceError is only ever surfaced by the relay path. The fail-soft
// gateways absorb their failures into degraded values instead.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
	}
}

func NewExternalServiceError(service, message string, transient bool) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}
