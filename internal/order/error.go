package order

import "errors"

var (
	ErrUnauthorized  = errors.New("login required to place an order")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrValidation    = errors.New("invalid order details")
	ErrInvalidStatus = errors.New("invalid status transition")
	ErrOrderNotFound = errors.New("order not found")
)
