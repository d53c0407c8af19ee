package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the subset of a catalog product the cart needs.
type Product struct {
	ID     string
	Name   string
	Price  decimal.Decimal
	Stock  int
	Status string
}

// CartItem is one product line of a user's cart.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	AddedAt   time.Time       `json:"addedAt"`
}

// CartDetails is the whole cart of a user.
type CartDetails struct {
	UserID        uint            `json:"userId"`
	Items         []CartItem      `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// OperationResult is the envelope every cart mutation returns.
// Data is nil when Success is false.
type OperationResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *CartItem `json:"data"`
}

type AddCartItemParams struct {
	UserID    uint
	ProductID string
	Quantity  int
}
