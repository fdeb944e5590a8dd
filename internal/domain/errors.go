package domain

import "errors"

var (
	ErrSchema   = errors.New("response does not match product schema")
	ErrDelivery = errors.New("notification delivery failed")
)
