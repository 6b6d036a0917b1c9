package lead

import "errors"

var (
	ErrEmptyCart      = errors.New("draft has no services in the cart")
	ErrContactMissing = errors.New("draft has no contact payload")
	ErrLeadNotFound   = errors.New("lead not found")
)
