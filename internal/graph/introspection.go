package graph

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

func marshalIntroSchema(ctx context.Context, sel ast.SelectionSet, v *introspection.Schema) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}

	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"__Schema"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Schema")
		case "description":
			out.Values[i] = marshalOptString(v.Description())
		case "types":
			out.Values[i] = marshalIntroTypes(ctx, field.Selections, v.Types())
		case "queryType":
			out.Values[i] = marshalIntroType(ctx, field.Selections, v.QueryType())
		case "mutationType":
			out.Values[i] = marshalIntroType(ctx, field.Selections, v.MutationType())
		case "subscriptionType":
			out.Values[i] = marshalIntroType(ctx, field.Selections, v.SubscriptionType())
		case "directives":
			directives := v.Directives()
			list := make(graphql.Array, 0, len(directives))
			for j := range directives {
				list = append(list, marshalIntroDirective(ctx, field.Selections, &directives[j]))
			}
			out.Values[i] = list
		default:
			out.Values[i] = unknownField(ctx, "__Schema", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalIntroType(ctx context.Context, sel ast.SelectionSet, v *introspection.Type) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}

	opCtx := graphql.GetOperationContext(ctx)
	fields := graphql.CollectFields(opCtx, sel, []string{"__Type"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Type")
		case "kind":
			out.Values[i] = graphql.MarshalString(v.Kind())
		case "name":
			out.Values[i] = marshalOptString(v.Name())
		case "description":
			out.Values[i] = marshalOptString(v.Description())
		case "specifiedByURL":
			out.Values[i] = marshalOptString(v.SpecifiedByURL())
		case "fields":
			typeFields := v.Fields(boolArg(field.ArgumentMap(opCtx.Variables), "includeDeprecated"))
			if typeFields == nil {
				out.Values[i] = graphql.Null
				continue
			}
			list := make(graphql.Array, 0, len(typeFields))
			for j := range typeFields {
				list = append(list, marshalIntroField(ctx, field.Selections, &typeFields[j]))
			}
			out.Values[i] = list
		case "interfaces":
			out.Values[i] = marshalIntroTypes(ctx, field.Selections, v.Interfaces())
		case "possibleTypes":
			out.Values[i] = marshalIntroTypes(ctx, field.Selections, v.PossibleTypes())
		case "enumValues":
			values := v.EnumValues(boolArg(field.ArgumentMap(opCtx.Variables), "includeDeprecated"))
			if values == nil {
				out.Values[i] = graphql.Null
				continue
			}
			list := make(graphql.Array, 0, len(values))
			for j := range values {
				list = append(list, marshalIntroEnumValue(ctx, field.Selections, &values[j]))
			}
			out.Values[i] = list
		case "inputFields":
			out.Values[i] = marshalIntroInputValues(ctx, field.Selections, v.InputFields())
		case "ofType":
			out.Values[i] = marshalIntroType(ctx, field.Selections, v.OfType())
		case "isOneOf":
			// The cart schema declares no @oneOf input objects.
			if v.Kind() == "INPUT_OBJECT" {
				out.Values[i] = graphql.MarshalBoolean(false)
			} else {
				out.Values[i] = graphql.Null
			}
		default:
			out.Values[i] = unknownField(ctx, "__Type", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalIntroTypes(ctx context.Context, sel ast.SelectionSet, types []introspection.Type) graphql.Marshaler {
	if types == nil {
		return graphql.Null
	}

	list := make(graphql.Array, 0, len(types))
	for i := range types {
		list = append(list, marshalIntroType(ctx, sel, &types[i]))
	}
	return list
}

func marshalIntroField(ctx context.Context, sel ast.SelectionSet, v *introspection.Field) graphql.Marshaler {
	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"__Field"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Field")
		case "name":
			out.Values[i] = graphql.MarshalString(v.Name)
		case "description":
			out.Values[i] = marshalOptString(v.Description())
		case "args":
			out.Values[i] = marshalIntroInputValues(ctx, field.Selections, v.Args)
		case "type":
			out.Values[i] = marshalIntroType(ctx, field.Selections, v.Type)
		case "isDeprecated":
			out.Values[i] = graphql.MarshalBoolean(v.IsDeprecated())
		case "deprecationReason":
			out.Values[i] = marshalOptString(v.DeprecationReason())
		default:
			out.Values[i] = unknownField(ctx, "__Field", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalIntroInputValues(ctx context.Context, sel ast.SelectionSet, values []introspection.InputValue) graphql.Marshaler {
	if values == nil {
		return graphql.Null
	}

	list := make(graphql.Array, 0, len(values))
	for i := range values {
		list = append(list, marshalIntroInputValue(ctx, sel, &values[i]))
	}
	return list
}

func marshalIntroInputValue(ctx context.Context, sel ast.SelectionSet, v *introspection.InputValue) graphql.Marshaler {
	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"__InputValue"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__InputValue")
		case "name":
			out.Values[i] = graphql.MarshalString(v.Name)
		case "description":
			out.Values[i] = marshalOptString(v.Description())
		case "type":
			out.Values[i] = marshalIntroType(ctx, field.Selections, v.Type)
		case "defaultValue":
			out.Values[i] = marshalOptString(v.DefaultValue)
		case "isDeprecated":
			// No argument in the cart schema is deprecated.
			out.Values[i] = graphql.MarshalBoolean(false)
		case "deprecationReason":
			out.Values[i] = graphql.Null
		default:
			out.Values[i] = unknownField(ctx, "__InputValue", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalIntroEnumValue(ctx context.Context, sel ast.SelectionSet, v *introspection.EnumValue) graphql.Marshaler {
	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"__EnumValue"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__EnumValue")
		case "name":
			out.Values[i] = graphql.MarshalString(v.Name)
		case "description":
			out.Values[i] = marshalOptString(v.Description())
		case "isDeprecated":
			out.Values[i] = graphql.MarshalBoolean(v.IsDeprecated())
		case "deprecationReason":
			out.Values[i] = marshalOptString(v.DeprecationReason())
		default:
			out.Values[i] = unknownField(ctx, "__EnumValue", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalIntroDirective(ctx context.Context, sel ast.SelectionSet, v *introspection.Directive) graphql.Marshaler {
	fields := graphql.CollectFields(graphql.GetOperationContext(ctx), sel, []string{"__Directive"})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("__Directive")
		case "name":
			out.Values[i] = graphql.MarshalString(v.Name)
		case "description":
			out.Values[i] = marshalOptString(v.Description())
		case "locations":
			list := make(graphql.Array, 0, len(v.Locations))
			for _, loc := range v.Locations {
				list = append(list, graphql.MarshalString(loc))
			}
			out.Values[i] = list
		case "args":
			out.Values[i] = marshalIntroInputValues(ctx, field.Selections, v.Args)
		case "isRepeatable":
			out.Values[i] = graphql.MarshalBoolean(v.IsRepeatable)
		default:
			out.Values[i] = unknownField(ctx, "__Directive", field)
		}
	}

	out.Dispatch(ctx)
	return out
}

func marshalOptString(s *string) graphql.Marshaler {
	if s == nil {
		return graphql.Null
	}
	return graphql.MarshalString(*s)
}

func boolArg(args map[string]any, name string) bool {
	raw, ok := args[name]
	if !ok || raw == nil {
		return false
	}
	b, err := graphql.UnmarshalBoolean(raw)
	return err == nil && b
}
