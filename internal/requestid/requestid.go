// Package requestid carries the per-request correlation id through contexts.
package requestid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Header is echoed on every response
const Header = "X-Request-Id"

type key struct{}

// With returns a context carrying id
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// From extracts the request id from ctx, or "" when absent
func From(ctx context.Context) string {
	if rid, ok := ctx.Value(key{}).(string); ok {
		return rid
	}
	return ""
}

// New generates a request id
func New() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	// fallback (should be rare)
	return time.Now().Format("20060102T150405.000000000")
}
