package store

import "fmt"

// RangeErrorKind distinguishes the store's two business-rule rejections.
type RangeErrorKind string

const (
	// RangeBelowZero: the change would drive the item's count negative.
	RangeBelowZero RangeErrorKind = "insufficient_stock"
	// RangeAboveCap: the change magnitude exceeds the store's configured cap.
	RangeAboveCap RangeErrorKind = "change_too_large"
)

// RangeError is a structured business rejection from the store. The numbers
// come from the store's error body, never from local arithmetic.
type RangeError struct {
	Kind      RangeErrorKind
	Item      string
	Current   int
	Attempted int
	Cap       int
}

func (e *RangeError) Error() string {
	switch e.Kind {
	case RangeAboveCap:
		return fmt.Sprintf("store rejected %s: change %d exceeds cap %d", e.Item, e.Attempted, e.Cap)
	default:
		return fmt.Sprintf("store rejected %s: change %d with current count %d", e.Item, e.Attempted, e.Current)
	}
}

// UnknownItemError is the store's malformed-request rejection for an item it
// does not track. The engine validates items against the catalog up front,
// so seeing this at runtime means the catalog snapshot is stale.
type UnknownItemError struct {
	Item string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("store does not track item %q", e.Item)
}

// HTTPError is a non-2xx store response that did not decode into a known
// business error.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("store http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("store http error: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}
