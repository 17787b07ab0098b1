package customerrors

import "errors"

// ErrMissingOrderID describes a view or request that got no order identifier at all,
// it's detected locally and no request is sent
var ErrMissingOrderID = errors.New("missing order identifier")

// ErrOrderNotFound describes an error when the remote API
// was successfully reached but answered that no order with given ID exists
var ErrOrderNotFound = errors.New("order not found")

// ErrUnexpectedStatus is returned for any non-2xx answer of the remote API
var ErrUnexpectedStatus = errors.New("unexpected response status")

// ErrMalformedResponse is returned when a 2xx body can't be decoded or is structurally unusable
var ErrMalformedResponse = errors.New("malformed response body")

// ErrSponsorNotFound describes an unknown sponsor ID
var ErrSponsorNotFound = errors.New("sponsor not found")

// ErrInvalidContact wraps contact form validation failures
var ErrInvalidContact = errors.New("invalid contact message")
