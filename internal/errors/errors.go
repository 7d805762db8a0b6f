package errors

import (
	"errors"
	"fmt"
	"time"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
	Context   map[string]any
}

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorUnknown ErrorType = iota
	ErrorNetwork
	ErrorConfiguration
	ErrorDiscovery
	ErrorCache
	ErrorResolution
	ErrorRemote
	ErrorInternal
)

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:      errorType,
		Message:   message,
		Timestamp: time.Now(),
		Context:   make(map[string]any),
	}
}

// Wrap creates a new AppError wrapping an existing error
func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errorType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   make(map[string]any),
	}
}

// WithContext adds context to an AppError
func (e *AppError) WithContext(key string, value any) *AppError {
	e.Context[key] = value
	return e
}

// GetTypeString returns a human-readable string for the error type
func (e *AppError) GetTypeString() string {
	switch e.Type {
	case ErrorNetwork:
		return "Network Error"
	case ErrorConfiguration:
		return "Configuration Error"
	case ErrorDiscovery:
		return "Discovery Error"
	case ErrorCache:
		return "Cache Error"
	case ErrorResolution:
		return "Resolution Error"
	case ErrorRemote:
		return "API Error"
	case ErrorInternal:
		return "Internal Error"
	default:
		return "Unknown Error"
	}
}

// IsRecoverable returns true if retrying the command later might succeed
func (e *AppError) IsRecoverable() bool {
	switch e.Type {
	case ErrorNetwork, ErrorDiscovery:
		return true
	case ErrorConfiguration, ErrorResolution, ErrorCache:
		return false
	default:
		return false
	}
}

// As extracts the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Common error constructors
func NewNetworkError(message string, cause error) *AppError {
	return Wrap(ErrorNetwork, message, cause)
}

func NewConfigError(message string, cause error) *AppError {
	return Wrap(ErrorConfiguration, message, cause)
}

func NewDiscoveryError(message string, cause error) *AppError {
	return Wrap(ErrorDiscovery, message, cause)
}

func NewResolutionError(message string, cause error) *AppError {
	return Wrap(ErrorResolution, message, cause)
}

func NewRemoteError(message string, cause error) *AppError {
	return Wrap(ErrorRemote, message, cause)
}
