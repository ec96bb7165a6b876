package objectstore

import "context"

// Factory creates stores for a scheme.
type Factory interface {
	Create(ctx context.Context, scheme Scheme, opts Options) (Store, error)
}

// DefaultFactory implements Factory using NewStore.
type DefaultFactory struct{}

// Create builds the store for scheme.
//
//nolint:ireturn // callers select the backend by scheme
func (DefaultFactory) Create(ctx context.Context, scheme Scheme, opts Options) (Store, error) {
	return NewStore(ctx, scheme, opts)
}
