// Package messages is the catalog of user-facing strings returned by the
// cart service and the GraphQL layer.
package messages

// Generic errors.
const (
	CreateProductError = "Error while creating the product."
	Unauthorized       = "unauthorized"
	InternalError      = "internal server error"
)

// Cart service envelope messages.
const (
	ProductAddedToCart     = "Product added to cart"
	ProductRemovedFromCart = "Product removed from cart"
	RemoveFromCartError    = "Error while removing the product from cart."
	InvalidQuantity        = "Invalid quantity"
	InvalidProductInput    = "Product ID is required"
	ProductNotFound        = "Product not found"
	ProductNotInCart       = "Product not found in cart"
	InsufficientStock      = "Insufficient stock"
)

// Resolver messages sent instead of the underlying cause.
const (
	AddProductCartResolverError    = "Error from Resolver while adding product to cart."
	RemoveProductCartResolverError = "Error from Resolver while removing product to cart."
)
