package backend

import "context"

type ctxKey string

// TokenKey is the context key for the cashier's backend bearer token
const TokenKey ctxKey = "backend_token"

// WithToken adds the backend bearer token to ctx. Every client call made
// with the returned context is authenticated as that cashier.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// GetToken extracts the backend bearer token from ctx
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}
