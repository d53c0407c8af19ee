package graph

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ecommerce-be/internal/cart"
	"ecommerce-be/internal/graph/model"
	"ecommerce-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/shopspring/decimal"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema/cart.graphqls
var cartSchemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema/cart.graphqls",
	Input: cartSchemaSource,
})

// Config binds the schema to its resolvers and directives.
type Config struct {
	Resolvers  ResolverRoot
	Directives DirectiveRoot
}

type ResolverRoot interface {
	Mutation() MutationResolver
	Query() QueryResolver
}

type DirectiveRoot struct {
	Auth func(ctx context.Context, obj interface{}, next graphql.Resolver) (res interface{}, err error)
}

type MutationResolver interface {
	AddProductCart(ctx context.Context, productID *string, quantity *string) (*model.CartResponse, error)
	RemoveProductCart(ctx context.Context, productID *string) (*model.CartResponse, error)
}

type QueryResolver interface {
	GetCartDetails(ctx context.Context, userID *string) (*cart.CartDetails, error)
}

type executableSchema struct {
	schema     *ast.Schema
	resolvers  ResolverRoot
	directives DirectiveRoot
}

var errIntrospectionDisabled = errors.New("introspection disabled")

// NewExecutableSchema returns the schema gqlgen's handler executes.
// __schema and __type are answered only when the operation context allows
// introspection (extension.Introspection).
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{
		schema:     parsedSchema,
		resolvers:  cfg.Resolvers,
		directives: cfg.Directives,
	}
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

// Complexity reports no field costs; complexity limits are not configured.
func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, rawArgs map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	var marshalRoot func(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler
	switch opCtx.Operation.Operation {
	case ast.Query:
		marshalRoot = e.marshalQuery
	case ast.Mutation:
		marshalRoot = e.marshalMutation
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		var buf bytes.Buffer
		marshalRoot(ctx, opCtx.Operation.SelectionSet).MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

type (
	resolveFunc func(ctx context.Context, args map[string]any) (any, error)
	marshalFunc func(ctx context.Context, sel ast.SelectionSet, v any) graphql.Marshaler
)

// resolveField runs a root field through its directives and resolver.
// Errors and panics are recorded on the response and the field becomes null.
func (e *executableSchema) resolveField(ctx context.Context, object string, field graphql.CollectedField, resolve resolveFunc, marshal marshalFunc) (ret graphql.Marshaler) {
	opCtx := graphql.GetOperationContext(ctx)
	args := field.ArgumentMap(opCtx.Variables)

	fc := &graphql.FieldContext{
		Object:     object,
		Field:      field,
		Args:       args,
		IsMethod:   true,
		IsResolver: true,
	}
	ctx = graphql.WithFieldContext(ctx, fc)

	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, opCtx.Recover(ctx, r))
			ret = graphql.Null
		}
	}()

	next := func(ctx context.Context) (interface{}, error) {
		return resolve(ctx, args)
	}

	var (
		res any
		err error
	)
	if e.directives.Auth != nil && field.Definition != nil && field.Definition.Directives.ForName("auth") != nil {
		res, err = e.directives.Auth(ctx, nil, next)
	} else {
		res, err = next(ctx)
	}

	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}
	if res == nil {
		return graphql.Null
	}

	fc.Result = res
	return marshal(ctx, field.Selections, res)
}

func (e *executableSchema) marshalQuery(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"Query"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Query")
		case "__schema":
			out.Values[i] = e.resolveField(ctx, "Query", field,
				func(ctx context.Context, args map[string]any) (any, error) {
					return e.introspectSchema(ctx)
				},
				func(ctx context.Context, sel ast.SelectionSet, v any) graphql.Marshaler {
					return marshalIntroSchema(ctx, sel, v.(*introspection.Schema))
				},
			)
		case "__type":
			out.Values[i] = e.resolveField(ctx, "Query", field,
				func(ctx context.Context, args map[string]any) (any, error) {
					name, err := stringArg(args, "name")
					if err != nil {
						return nil, err
					}
					return e.introspectType(ctx, utils.PtrString(name))
				},
				func(ctx context.Context, sel ast.SelectionSet, v any) graphql.Marshaler {
					return marshalIntroType(ctx, sel, v.(*introspection.Type))
				},
			)
		case "getCartDetails":
			out.Values[i] = e.resolveField(ctx, "Query", field,
				func(ctx context.Context, args map[string]any) (any, error) {
					userID, err := stringArg(args, "userID")
					if err != nil {
						return nil, err
					}
					details, err := e.resolvers.Query().GetCartDetails(ctx, userID)
					if err != nil || details == nil {
						return nil, err
					}
					return details, nil
				},
				func(ctx context.Context, sel ast.SelectionSet, v any) graphql.Marshaler {
					return marshalCartDetails(ctx, sel, v.(*cart.CartDetails))
				},
			)
		default:
			out.Values[i] = unknownField(ctx, "Query", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

// marshalMutation resolves mutation fields one after another, in document order.
func (e *executableSchema) marshalMutation(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"Mutation"})
	out := graphql.NewFieldSet(fields)

	marshalResponse := func(ctx context.Context, sel ast.SelectionSet, v any) graphql.Marshaler {
		return marshalCartResponse(ctx, sel, v.(*model.CartResponse))
	}

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Mutation")
		case "addProductCart":
			out.Values[i] = e.resolveField(ctx, "Mutation", field,
				func(ctx context.Context, args map[string]any) (any, error) {
					productID, err := stringArg(args, "product_id")
					if err != nil {
						return nil, err
					}
					quantity, err := stringArg(args, "quantity")
					if err != nil {
						return nil, err
					}
					res, err := e.resolvers.Mutation().AddProductCart(ctx, productID, quantity)
					if err != nil || res == nil {
						return nil, err
					}
					return res, nil
				},
				marshalResponse,
			)
		case "removeProductCart":
			out.Values[i] = e.resolveField(ctx, "Mutation", field,
				func(ctx context.Context, args map[string]any) (any, error) {
					productID, err := stringArg(args, "product_id")
					if err != nil {
						return nil, err
					}
					res, err := e.resolvers.Mutation().RemoveProductCart(ctx, productID)
					if err != nil || res == nil {
						return nil, err
					}
					return res, nil
				},
				marshalResponse,
			)
		default:
			out.Values[i] = unknownField(ctx, "Mutation", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func (e *executableSchema) introspectSchema(ctx context.Context) (*introspection.Schema, error) {
	if graphql.GetOperationContext(ctx).DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapSchema(e.schema), nil
}

func (e *executableSchema) introspectType(ctx context.Context, name string) (*introspection.Type, error) {
	if graphql.GetOperationContext(ctx).DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapTypeFromDef(e.schema, e.schema.Types[name]), nil
}

// unknownField reports a selected field this executor has no resolver for.
func unknownField(ctx context.Context, object string, field graphql.CollectedField) graphql.Marshaler {
	fc := &graphql.FieldContext{Object: object, Field: field}
	graphql.AddError(graphql.WithFieldContext(ctx, fc),
		fmt.Errorf("field %s.%s is not served", object, field.Name))
	return graphql.Null
}

func marshalCartResponse(ctx context.Context, sel ast.SelectionSet, v *model.CartResponse) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}

	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"CartResponse"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("CartResponse")
		case "success":
			out.Values[i] = graphql.MarshalBoolean(v.Success)
		case "message":
			out.Values[i] = graphql.MarshalString(v.Message)
		case "data":
			out.Values[i] = marshalCartItem(ctx, field.Selections, v.Data)
		default:
			out.Values[i] = unknownField(ctx, "CartResponse", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalCartDetails(ctx context.Context, sel ast.SelectionSet, v *cart.CartDetails) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}

	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"CartDetails"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("CartDetails")
		case "userId":
			out.Values[i] = graphql.MarshalID(strconv.FormatUint(uint64(v.UserID), 10))
		case "items":
			items := make(graphql.Array, 0, len(v.Items))
			for j := range v.Items {
				items = append(items, marshalCartItem(ctx, field.Selections, &v.Items[j]))
			}
			out.Values[i] = items
		case "totalQuantity":
			out.Values[i] = graphql.MarshalInt(v.TotalQuantity)
		case "totalPrice":
			out.Values[i] = graphql.MarshalString(formatMoney(v.TotalPrice))
		default:
			out.Values[i] = unknownField(ctx, "CartDetails", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalCartItem(ctx context.Context, sel ast.SelectionSet, v *cart.CartItem) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}

	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"CartItem"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("CartItem")
		case "productId":
			out.Values[i] = graphql.MarshalID(v.ProductID)
		case "name":
			out.Values[i] = graphql.MarshalString(v.Name)
		case "price":
			out.Values[i] = graphql.MarshalString(formatMoney(v.Price))
		case "quantity":
			out.Values[i] = graphql.MarshalInt(v.Quantity)
		case "subtotal":
			out.Values[i] = graphql.MarshalString(formatMoney(v.Subtotal))
		case "addedAt":
			out.Values[i] = graphql.MarshalString(v.AddedAt.UTC().Format(time.RFC3339))
		default:
			out.Values[i] = unknownField(ctx, "CartItem", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func stringArg(args map[string]any, name string) (*string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	s, err := graphql.UnmarshalString(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
