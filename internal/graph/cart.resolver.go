package graph

import (
	"context"
	"errors"

	"ecommerce-be/internal/cart"
	"ecommerce-be/internal/graph/model"
	"ecommerce-be/internal/logger"
	"ecommerce-be/internal/messages"
	"ecommerce-be/internal/metrics"
	"ecommerce-be/internal/utils"

	"go.uber.org/zap"
)

const (
	opAddProductCart    = "addProductCart"
	opRemoveProductCart = "removeProductCart"
)

var errEmptyResult = errors.New("cart service returned no result")

// failureFields adds the service's own message for upstream failures.
func failureFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		fields = append(fields, zap.String("service_message", upstream.ServiceMessage))
	}
	return fields
}

func countFailure(rerr *ResolverError) {
	if rerr.Kind == KindUpstreamFailure {
		metrics.Cart.UpstreamFailures.Inc()
		return
	}
	metrics.Cart.AdapterFailures.Inc()
}

// GetCartDetails is the resolver for the getCartDetails field. The userID
// argument is ignored; the cart always belongs to the caller. Service
// errors are returned untouched.
func (r *queryResolver) GetCartDetails(ctx context.Context, userID *string) (*cart.CartDetails, error) {
	rc, err := requestContextFrom(ctx)
	if err != nil {
		return nil, err
	}

	details, err := r.CartSvc.GetCartDetails(ctx, rc.UserID)
	if err != nil {
		return nil, err
	}

	if details != nil {
		logger.FromCtx(ctx).Debug("cart details fetched",
			zap.Uint("user_id", rc.UserID),
			zap.Int("items", len(details.Items)),
		)
	}

	return details, nil
}

// AddProductCart is the resolver for the addProductCart field.
func (r *mutationResolver) AddProductCart(ctx context.Context, productID *string, quantity *string) (*model.CartResponse, error) {
	rc, err := requestContextFrom(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", rc.UserID),
		zap.String("product_id", utils.PtrString(productID)),
	)
	log.Debug("addProductCart called", zap.String("quantity", utils.PtrString(quantity)))

	timer := metrics.StartTimer()
	res, err := r.addProductCart(ctx, rc, utils.PtrString(productID), utils.PtrString(quantity))
	if err != nil {
		log.Error("failed to add product to cart", append(failureFields(err), zap.Duration("duration", timer.Duration()))...)
		rerr := wrapResolverError(opAddProductCart, messages.AddProductCartResolverError, err)
		countFailure(rerr)
		return nil, rerr
	}

	metrics.Cart.Added.Inc()

	return res, nil
}

func (r *mutationResolver) addProductCart(ctx context.Context, rc RequestContext, productID, quantity string) (*model.CartResponse, error) {
	result, err := r.CartSvc.AddProductCart(ctx, rc.UserID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errEmptyResult
	}
	if !result.Success {
		return nil, &UpstreamError{
			Op:             opAddProductCart,
			Message:        messages.CreateProductError,
			ServiceMessage: result.Message,
		}
	}

	return &model.CartResponse{
		Success: result.Success,
		Message: result.Message,
		Data:    result.Data,
	}, nil
}

// RemoveProductCart is the resolver for the removeProductCart field.
func (r *mutationResolver) RemoveProductCart(ctx context.Context, productID *string) (*model.CartResponse, error) {
	rc, err := requestContextFrom(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", rc.UserID),
		zap.String("product_id", utils.PtrString(productID)),
	)
	log.Debug("removeProductCart called")

	timer := metrics.StartTimer()
	res, err := r.removeProductCart(ctx, rc, utils.PtrString(productID))
	if err != nil {
		log.Error("failed to remove product from cart", append(failureFields(err), zap.Duration("duration", timer.Duration()))...)
		rerr := wrapResolverError(opRemoveProductCart, messages.RemoveProductCartResolverError, err)
		countFailure(rerr)
		return nil, rerr
	}

	metrics.Cart.Removed.Inc()

	return res, nil
}

func (r *mutationResolver) removeProductCart(ctx context.Context, rc RequestContext, productID string) (*model.CartResponse, error) {
	result, err := r.CartSvc.RemoveProductCart(ctx, rc.UserID, productID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errEmptyResult
	}
	if !result.Success {
		return nil, &UpstreamError{
			Op:             opRemoveProductCart,
			Message:        messages.RemoveFromCartError,
			ServiceMessage: result.Message,
		}
	}

	return &model.CartResponse{
		Success: result.Success,
		Message: result.Message,
		Data:    result.Data,
	}, nil
}
