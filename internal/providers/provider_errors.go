package providers

import "fmt"

const (
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeUpstreamError     = "UPSTREAM_ERROR"
	ErrCodeFlightNotFound    = "FLIGHT_NOT_FOUND"
)

type ProviderError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
