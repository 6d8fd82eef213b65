package ctxutil

import (
	"context"
	"strings"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	tokenKey     ctxKey = "bearer_token"
	localeKey    ctxKey = "locale"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithBearerToken stores the caller's raw bearer token so outgoing backend
// requests can be made on their behalf.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// BearerTokenFromCtx extracts the bearer token from the context.
// Returns an empty string if absent.
func BearerTokenFromCtx(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// WithLocale stores the display locale (a language code such as "vi").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, strings.ToLower(strings.TrimSpace(locale)))
}

// LocaleFromCtx extracts the locale from the context.
// Returns an empty string if absent.
func LocaleFromCtx(ctx context.Context) string {
	l, _ := ctx.Value(localeKey).(string)
	return l
}
