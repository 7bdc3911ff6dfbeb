package order

import "time"

// Status is the fulfilment state of an order. Orders move forward only:
// Processing -> Shipped -> Delivered, with Cancelled reachable from any
// non-terminal state.
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case StatusCancelled:
		return true
	case StatusShipped:
		return s == StatusProcessing
	case StatusDelivered:
		return s == StatusShipped
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "COD"
	PaymentBkash PaymentMethod = "Bkash"
)

type PaymentDetails struct {
	Method      PaymentMethod `json:"method"`
	BkashNumber string        `json:"bkashNumber,omitempty"`
	BkashTxID   string        `json:"bkashTxId,omitempty"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Item is a snapshot of a cart line at checkout. It carries its own copy
// of the product name and price so later catalog edits never touch placed
// orders.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Order struct {
	ID          string         `json:"id"`
	UserID      uint           `json:"userId"`
	Customer    CustomerInfo   `json:"customer"`
	Items       []Item         `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
	Status      Status         `json:"status"`
	Payment     PaymentDetails `json:"payment"`
	ClientIP    string         `json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// PlaceParams is everything the buyer supplies at checkout; the items and
// total come from their cart, never from the request.
type PlaceParams struct {
	Customer CustomerInfo
	Payment  PaymentDetails
	ClientIP string
}
