// Package datastore implements viewbind.DataService over an in-memory
// observable tree, optionally seeded from a YAML file.
package datastore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/rayman"
	"howett.net/viewbind/observable"

	yaml "gopkg.in/yaml.v2"
)

var _ viewbind.DataService = &Store{}

type Store struct {
	mu   sync.Mutex
	root *observable.Object
}

// New returns a store around root. A nil root starts an empty tree.
func New(root *observable.Object) *Store {
	if root == nil {
		root = observable.NewObject(nil)
	}
	return &Store{root: root}
}

// Decode parses a YAML (or JSON) document into an observable value.
func Decode(b []byte) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return observable.FromValue(v), nil
}

// LoadFile reads the YAML document at filename into a new store. The
// document must be a mapping.
func LoadFile(filename string) (*Store, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	v, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("data %s: %w", filename, err)
	}
	if v == nil {
		return New(nil), nil
	}
	root, ok := v.(*observable.Object)
	if !ok {
		return nil, fmt.Errorf("data %s: top level is %T, not a mapping", filename, v)
	}
	return New(root), nil
}

func (s *Store) Do(ctx context.Context, fn func(root *observable.Object) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.root)
}

func (s *Store) Get(ctx context.Context, path string) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := observable.Get(s.root, path)
	if v == nil {
		return nil, &viewbind.NotFoundError{Kind: "data path", Name: path}
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, path string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := observable.Set(s.root, path, value); err != nil {
		return err
	}
	rayman.ContextLogger(ctx).WithField("data", path).Info("set")
	return nil
}

func (s *Store) array(path string) (*observable.Array, error) {
	switch v := observable.Get(s.root, path).(type) {
	case *observable.Array:
		return v, nil
	case nil:
		return nil, &viewbind.NotFoundError{Kind: "data path", Name: path}
	default:
		return nil, fmt.Errorf("%s: %w: %T", path, viewbind.ErrNotACollection, v)
	}
}

func (s *Store) Push(ctx context.Context, path string, values ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.array(path)
	if err != nil {
		return err
	}
	a.Push(values...)
	rayman.ContextLogger(ctx).WithFields(logrus.Fields{
		"data":  path,
		"count": len(values),
	}).Info("pushed")
	return nil
}

func (s *Store) RemoveAt(ctx context.Context, path string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.array(path)
	if err != nil {
		return err
	}
	if index < 0 || index >= a.Len() {
		return fmt.Errorf("%s[%d]: %w", path, index, viewbind.ErrOutOfRange)
	}
	a.RemoveAt(index)
	rayman.ContextLogger(ctx).WithFields(logrus.Fields{
		"data":  path,
		"index": index,
	}).Info("removed")
	return nil
}
