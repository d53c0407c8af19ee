package graph

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-be/internal/logger"
	"ecommerce-be/internal/messages"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

// ErrorKind is sent to clients as extensions.code.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindUpstreamFailure ErrorKind = "UPSTREAM_FAILURE"
	KindAdapterFailure  ErrorKind = "ADAPTER_FAILURE"
	KindInternal        ErrorKind = "INTERNAL"
)

// UpstreamError reports a cart service envelope with success=false.
// Message is the fixed, operation-specific text; ServiceMessage is what the
// service said and is only logged.
type UpstreamError struct {
	Op             string
	Message        string
	ServiceMessage string
}

func (e *UpstreamError) Error() string { return e.Message }

// ResolverError is the only error type a cart resolver hands to gqlgen.
// Message is safe to show; Cause stays server-side.
type ResolverError struct {
	Op      string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ResolverError) Error() string { return e.Message }

func (e *ResolverError) Unwrap() error { return e.Cause }

var errUnauthenticated = &ResolverError{
	Op:      "auth",
	Kind:    KindUnauthenticated,
	Message: messages.Unauthorized,
}

// wrapResolverError hides cause behind message. The kind records whether
// the service refused the operation or the call itself failed.
func wrapResolverError(op, message string, cause error) *ResolverError {
	kind := KindAdapterFailure
	var upstream *UpstreamError
	if errors.As(cause, &upstream) {
		kind = KindUpstreamFailure
	}

	return &ResolverError{Op: op, Kind: kind, Message: message, Cause: cause}
}

// ErrorPresenter renders ResolverErrors with their kind and, for upstream
// failures, the fixed upstream message as extensions.reason. Anything else
// goes through gqlgen's default presenter.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	var rerr *ResolverError
	if !errors.As(err, &rerr) {
		return gqlErr
	}

	gqlErr.Message = rerr.Message
	if gqlErr.Extensions == nil {
		gqlErr.Extensions = map[string]interface{}{}
	}
	gqlErr.Extensions["code"] = string(rerr.Kind)

	var upstream *UpstreamError
	if errors.As(rerr.Cause, &upstream) {
		gqlErr.Extensions["reason"] = upstream.Message
	}

	if rerr.Kind != KindUnauthenticated {
		logger.FromCtx(ctx).Warn("resolver error",
			zap.String("op", rerr.Op),
			zap.String("code", string(rerr.Kind)),
			zap.Error(rerr.Cause),
		)
	}

	return gqlErr
}

// RecoverFunc turns a resolver panic into an INTERNAL error.
func RecoverFunc(ctx context.Context, p interface{}) error {
	logger.FromCtx(ctx).Error("resolver panic", zap.Any("panic", p), zap.Stack("stack"))

	return &ResolverError{
		Op:      "recover",
		Kind:    KindInternal,
		Message: messages.InternalError,
		Cause:   fmt.Errorf("panic: %v", p),
	}
}
