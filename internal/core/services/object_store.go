package services

import (
	"context"
	"time"
)

// WriteGrantIssuer signs a time-limited authorization to PUT one object.
// The returned URL must be scoped to exactly bucket/key and reject any other
// verb or any use after ttl elapses.
type WriteGrantIssuer interface {
	IssueWriteGrant(ctx context.Context, bucket, key, contentType string, metadata map[string]string, ttl time.Duration) (string, error)
}

// ObjectFetcher reads objects from a store. FetchObject returns
// ErrObjectNotExist when the key is absent; any other error is a store fault.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, bucket, key string) ([]byte, error)
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
}

// ObjectLister enumerates keys under a prefix.
type ObjectLister interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
}
