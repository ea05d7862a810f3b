package domain

import "context"

type ctxKey int

const (
	ctxKeyAuthToken ctxKey = iota
	ctxKeyRequestID
)

// WithAuthToken attaches the bearer token forwarded to the backend.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyAuthToken, token)
}

func AuthTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(ctxKeyAuthToken).(string)
	return token
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
