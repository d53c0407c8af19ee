package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ecommerce-be/internal/logger"
	"ecommerce-be/internal/messages"

	"go.uber.org/zap"
)

// Service owns the cart business rules. Rule violations are reported as
// OperationResult{Success: false}; a returned error means storage failed.
type Service interface {
	GetCartDetails(ctx context.Context, userID uint) (*CartDetails, error)
	AddProductCart(ctx context.Context, userID uint, productID, quantity string) (*OperationResult, error)
	RemoveProductCart(ctx context.Context, userID uint, productID string) (*OperationResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func failure(message string) *OperationResult {
	return &OperationResult{Success: false, Message: message}
}

func success(message string, item *CartItem) *OperationResult {
	return &OperationResult{Success: true, Message: message, Data: item}
}

func (s *service) GetCartDetails(ctx context.Context, userID uint) (*CartDetails, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	items, err := s.repo.GetCartRows(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedGetCartRows, err)
	}

	return newCartDetails(userID, items), nil
}

func (s *service) AddProductCart(ctx context.Context, userID uint, productID, quantity string) (*OperationResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddProductCart"),
		zap.Uint("user_id", userID),
		zap.String("product_id", productID),
	)

	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	if strings.TrimSpace(productID) == "" {
		return failure(messages.InvalidProductInput), nil
	}

	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || qty <= 0 {
		log.Debug("rejected quantity", zap.String("quantity", quantity))
		return failure(messages.InvalidQuantity), nil
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedGetProduct, err)
	}
	if product == nil {
		return failure(messages.ProductNotFound), nil
	}

	existing, err := s.repo.GetCartItem(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedGetCartItem, err)
	}

	finalQty := qty
	if existing != nil {
		finalQty += existing.Quantity
	}
	if finalQty > product.Stock {
		log.Info("insufficient stock",
			zap.Int("requested", finalQty),
			zap.Int("stock", product.Stock),
		)
		return failure(messages.InsufficientStock), nil
	}

	item, err := s.repo.AddCartItem(ctx, AddCartItemParams{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	})
	if errors.Is(err, errProductGone) {
		return failure(messages.ProductNotFound), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedAddCartItem, err)
	}

	log.Info("product added to cart", zap.Int("quantity", item.Quantity))
	return success(messages.ProductAddedToCart, item), nil
}

func (s *service) RemoveProductCart(ctx context.Context, userID uint, productID string) (*OperationResult, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	if strings.TrimSpace(productID) == "" {
		return failure(messages.InvalidProductInput), nil
	}

	item, err := s.repo.DeleteCartItem(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedRemoveCartItem, err)
	}
	if item == nil {
		return failure(messages.ProductNotInCart), nil
	}

	logger.FromCtx(ctx).Info("product removed from cart",
		zap.Uint("user_id", userID),
		zap.String("product_id", productID),
	)
	return success(messages.ProductRemovedFromCart, item), nil
}
