package service

import "errors"

var (
	ErrFeeNotFound     = errors.New("fee not found")
	ErrPaymentNotFound = errors.New("payment entry not found")
	ErrBadAmount       = errors.New("payment_amount must be a positive decimal")
)
