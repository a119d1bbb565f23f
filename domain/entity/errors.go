package entity

import "errors"

var (
	ErrOutOfStock           = errors.New("out of stock")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrExpressPaymentFailed = errors.New("express payment failed")
)

// Errors raised by the HTTP and CLI surfaces and by status reads. The processing
// core never returns these.
var (
	ErrInvalidOrder     = errors.New("invalid order")
	ErrUnknownOrderType = errors.New("unknown order type")
	ErrStatusNotFound   = errors.New("order status not found")
)
