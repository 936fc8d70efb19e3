package middleware

import "context"

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxCashierID contextKey = "cashier_id"
)

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRequestID).(string); ok {
		return v
	}
	return ""
}

func CashierIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCashierID).(string); ok {
		return v
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

// WithCashierID injects the operating cashier into the context.
func WithCashierID(ctx context.Context, cashierID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCashierID, cashierID)
}
