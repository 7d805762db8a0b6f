package constants

// HTTP status codes
const (
	// HTTPStatusRequestTimeout represents a 408 Request Timeout error
	HTTPStatusRequestTimeout = 408

	// HTTPStatusTooManyRequests represents a 429 Too Many Requests error
	HTTPStatusTooManyRequests = 429

	// HTTPStatusServerErrorMin is the first code of the 5xx server error range
	HTTPStatusServerErrorMin = 500

	// HTTPStatusServerErrorMax is the last code of the 5xx server error range
	HTTPStatusServerErrorMax = 599

	// HTTPStatusServiceUnavailable represents a 503 Service Unavailable error
	HTTPStatusServiceUnavailable = 503
)
