package httpx

import (
	"context"
	"errors"
	"net"
)

// HTTPStatusCoder is implemented by typed client errors that carry the
// upstream HTTP status.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// IsTransportStatus reports whether an upstream status code indicates a
// connectivity/service problem rather than a business rejection.
func IsTransportStatus(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	return code >= 500 && code <= 599
}

// IsTransportError reports whether err is a connectivity-level failure:
// a timeout, a cancelled or refused connection, or an upstream 5xx. Business
// errors (4xx with a structured body) are not transport errors.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return IsTransportStatus(sc.HTTPStatusCode())
	}
	return false
}
