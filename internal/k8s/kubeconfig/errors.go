package kubeconfig

import "fmt"

// Error types reported by Reader
const (
	ErrTypeLoadFailed       = "kubeconfig_load_failed"
	ErrTypeNoCurrentContext = "no_current_context"
	ErrTypeContextNotFound  = "context_not_found"
	ErrTypeConfigBuild      = "config_build_failed"
)

// KubeconfigError represents kubeconfig-related errors
type KubeconfigError struct {
	Type    string
	Message string
	Cause   error
}

func (e *KubeconfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *KubeconfigError) Unwrap() error {
	return e.Cause
}

// NewKubeconfigError creates a new kubeconfig error
func NewKubeconfigError(errType, message string, cause error) *KubeconfigError {
	return &KubeconfigError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}
