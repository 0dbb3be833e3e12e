package entity

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrVenueHasBookings = errors.New("venue has future bookings")
)

var (
	ErrGateway           = errors.New("payment gateway rejected the request")
	ErrGatewayTimeout    = errors.New("payment gateway call timed out")
	ErrPaymentNotPending = errors.New("payment is not in pending status")
	ErrAlreadyRefunded   = errors.New("payment is already refunded")
)
