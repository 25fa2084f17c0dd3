package filestore

import (
	"context"
	"io"
	"time"
)

// Object describes one stored asset as reported by List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// AssetStore is the gateway to the blob service holding uploaded images.
// The relational store and the asset store share no transaction: callers
// sequence their calls explicitly and live with the gap.
type AssetStore interface {
	// EnsureBucket creates the bucket and makes its objects publicly
	// readable. Creation racing an existing bucket folds into success.
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
	// PublicURL resolves a key to its stable public address of form
	// {endpoint}/{bucket}/{key}.
	PublicURL(key string) string
}
