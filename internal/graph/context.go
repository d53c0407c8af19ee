package graph

import (
	"context"

	"ecommerce-be/internal/utils"
)

// RequestContext is the caller identity every cart resolver works with.
type RequestContext struct {
	UserID uint
}

// requestContextFrom fails with an UNAUTHENTICATED error when the auth
// middleware put no (or a zero) user id in ctx.
func requestContextFrom(ctx context.Context) (RequestContext, error) {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok || id == 0 {
		return RequestContext{}, errUnauthenticated
	}
	return RequestContext{UserID: id}, nil
}
