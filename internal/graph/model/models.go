package model

import "ecommerce-be/internal/cart"

// CartResponse is the envelope returned by the cart mutations.
type CartResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *cart.CartItem `json:"data,omitempty"`
}
