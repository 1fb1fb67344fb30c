// Package urlresolver turns stored object keys into client-usable image URLs.
package urlresolver

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultExpiry is the presigned-URL lifetime used when the caller does not
// supply one.
const DefaultExpiry = time.Hour

// Signer produces time-limited read URLs for stored objects. The S3 blob
// store satisfies it.
type Signer interface {
	PresignGet(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Resolver resolves storage keys in order: empty keys to nothing, already
// fully-qualified URLs unchanged, a configured public base by concatenation,
// and everything else through a presigned URL from the signer. Presign
// failures degrade to the raw key so a gateway hiccup never fails a read.
type Resolver struct {
	signer        Signer
	publicBase    string
	defaultExpiry time.Duration
	log           *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPublicBase sets a static public base URL that bypasses presigning.
func WithPublicBase(base string) ResolverOption {
	return func(r *Resolver) {
		r.publicBase = strings.TrimSuffix(base, "/")
	}
}

// WithDefaultExpiry overrides the default presigned-URL lifetime.
func WithDefaultExpiry(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.defaultExpiry = d
		}
	}
}

// WithLogger sets the logger used for presign-failure reports.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// New creates a Resolver backed by the given signer.
func New(signer Signer, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		signer:        signer,
		defaultExpiry: DefaultExpiry,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands key into a URL using the default expiry. An empty key
// resolves to the empty string.
func (r *Resolver) Resolve(ctx context.Context, key string) string {
	return r.ResolveWithExpiry(ctx, key, r.defaultExpiry)
}

// ResolveWithExpiry is Resolve with a caller-specified presign lifetime.
func (r *Resolver) ResolveWithExpiry(ctx context.Context, key string, expiry time.Duration) string {
	if key == "" {
		return ""
	}
	// Legacy rows and externally hosted images carry full URLs already.
	if strings.HasPrefix(key, "http") {
		return key
	}
	if r.publicBase != "" {
		return r.publicBase + "/" + strings.TrimPrefix(key, "/")
	}

	url, err := r.signer.PresignGet(ctx, strings.TrimPrefix(key, "/"), expiry)
	if err != nil {
		r.log.Error("presign failed, returning raw key", "key", key, "error", err)
		return key
	}
	return url
}
