package cart

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// Storage failures.
	ErrFailedGetProduct     = errors.New("failed to get product")
	ErrFailedGetCartItem    = errors.New("failed to get cart item")
	ErrFailedGetCartRows    = errors.New("failed to get cart rows")
	ErrFailedAddCartItem    = errors.New("failed to add cart item")
	ErrFailedRemoveCartItem = errors.New("failed to remove cart item")

	// errProductGone is returned by the repository when the product row
	// disappears between lookup and insert.
	errProductGone = errors.New("product no longer exists")
)

// Postgres error codes.
const pgForeignKeyViolation = "23503"
