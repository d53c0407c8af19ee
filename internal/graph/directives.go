package graph

import (
	"context"

	"ecommerce-be/internal/logger"

	"github.com/99designs/gqlgen/graphql"
	"go.uber.org/zap"
)

// AuthDirective implements @auth: the field resolver only runs for an
// authenticated caller.
func AuthDirective(ctx context.Context, obj interface{}, next graphql.Resolver) (interface{}, error) {
	if _, err := requestContextFrom(ctx); err != nil {
		field := ""
		if fc := graphql.GetFieldContext(ctx); fc != nil && fc.Field.Field != nil {
			field = fc.Field.Name
		}
		logger.FromCtx(ctx).Warn("unauthenticated access", zap.String("field", field))
		return nil, err
	}
	return next(ctx)
}
