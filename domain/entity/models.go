package entity

import "time"

type OrderType string

const (
	OrderTypeStandard OrderType = "standard"
	OrderTypeExpress  OrderType = "express"
)

// Valid reports whether t is one of the supported order types.
func (t OrderType) Valid() bool {
	return t == OrderTypeStandard || t == OrderTypeExpress
}

type OrderStatus string

const (
	OrderStatusProcessed OrderStatus = "processed"
)

// Priority is passed through to the payment gateway for express orders.
type Priority string

const (
	PriorityHigh Priority = "highPriority"
)

// NotificationMessage is the fixed text sent once an order has been processed.
const NotificationMessage = "Your order has been processed."

// Order is owned by the caller and is not modified while it is processed.
type Order struct {
	ID            string    `json:"id"`
	Type          OrderType `json:"type"`
	Quantity      int       `json:"quantity"`
	Amount        float64   `json:"amount"`
	CustomerEmail string    `json:"customer_email"`
}

// EmailNotification is the message handed to the mail transport.
type EmailNotification struct {
	ID      string    `json:"id"`
	Address string    `json:"address"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}
