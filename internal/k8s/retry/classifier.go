package retry

import (
	"errors"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/katyella/kubex/internal/constants"
)

// Classifier reports whether a failed attempt should be retried.
type Classifier func(err error) bool

// RetryableError marks an error explicitly as retryable or not, overriding
// the status code inspection of DefaultClassifier.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Transient marks err as retryable.
func Transient(err error) error {
	return &RetryableError{Err: err, Retryable: true}
}

// Permanent marks err as fatal.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// DefaultClassifier retries Kubernetes status errors with code 408, 429 or
// 5xx and fails fast on every other status code. Errors without a status,
// such as transport or decode failures, are retried.
func DefaultClassifier(err error) bool {
	if err == nil {
		return false
	}

	var marked *RetryableError
	if errors.As(err, &marked) {
		return marked.Retryable
	}

	var status apierrors.APIStatus
	if errors.As(err, &status) {
		if code := status.Status().Code; code != 0 {
			return IsRetryableStatusCode(int(code))
		}
	}

	return true
}

// IsRetryableStatusCode reports whether an HTTP status code is transient.
func IsRetryableStatusCode(code int) bool {
	switch {
	case code == constants.HTTPStatusRequestTimeout:
		return true
	case code == constants.HTTPStatusTooManyRequests:
		return true
	case code >= constants.HTTPStatusServerErrorMin && code <= constants.HTTPStatusServerErrorMax:
		return true
	default:
		return false
	}
}
