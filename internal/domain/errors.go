package domain

import "errors"

var (
	ErrItemNotBookable = errors.New("item cannot be booked")
	ErrMissingExpiry   = errors.New("missing expiration date")
	ErrInvalidExpiry   = errors.New("invalid date format")
)
