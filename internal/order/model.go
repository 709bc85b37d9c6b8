package order

import (
	"fmt"
	"strings"
	"time"
)

// Status is the order lifecycle state. The storefront only ever creates
// orders as pending or paid; every later transition belongs to the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// Item is a line-item snapshot: name and price are captured at checkout
// time and do not follow later product edits.
type Item struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"price"`
	Quantity       int    `json:"quantity"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// Order is the terminal artifact of a checkout attempt. TotalCents is in
// integer minor units, consistent with the payment processor.
type Order struct {
	ID              string    `json:"id,omitempty"`
	Username        string    `json:"username,omitempty"`
	Email           string    `json:"email"`
	Items           []Item    `json:"items"`
	TotalCents      int64     `json:"totalAmount"`
	PaymentMethod   string    `json:"paymentMethod"`
	ShippingAddress *Address  `json:"shippingAddress,omitempty"`
	Pickup          bool      `json:"pickup,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
