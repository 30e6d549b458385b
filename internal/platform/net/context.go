// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUserID    ctxKey = "user_id"
	keyCallerKey ctxKey = "caller_key"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithUser annotates context with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// WithCallerKey annotates context with the rate-limit identity of the caller
func WithCallerKey(ctx context.Context, key string) context.Context {
	if key != "" {
		ctx = context.WithValue(ctx, keyCallerKey, key)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// CallerKey returns the caller identity on the context if present
func CallerKey(ctx context.Context) string {
	if v, ok := ctx.Value(keyCallerKey).(string); ok {
		return v
	}
	return ""
}
