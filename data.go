package viewbind

import (
	"context"

	"howett.net/viewbind/observable"
)

// DataService owns the observable tree bound views render from. Every
// read or change of the tree, and every render of a view bound to it,
// goes through the service so that they never overlap.
type DataService interface {
	Get(ctx context.Context, path string) (interface{}, error)
	Set(ctx context.Context, path string, value interface{}) error
	Push(ctx context.Context, path string, values ...interface{}) error
	RemoveAt(ctx context.Context, path string, index int) error

	// Do runs fn with exclusive access to the tree.
	Do(ctx context.Context, fn func(root *observable.Object) error) error
}
