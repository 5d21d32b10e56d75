/*
Package observable provides the property bags and arrays that views bind
to. Notifications are delivered synchronously on the goroutine that made
the change; the package is not safe for concurrent mutation, matching the
single-threaded render pass that consumes it.
*/
package observable

import "sort"

// Getter is implemented by values that expose named properties to path
// lookups.
type Getter interface {
	Get(key string) interface{}
}

type observer struct {
	fn func()
}

// Object is a property bag whose Set notifies observers of the changed key.
type Object struct {
	props     map[string]interface{}
	observers map[string][]*observer
}

func NewObject(props map[string]interface{}) *Object {
	o := &Object{
		props: make(map[string]interface{}, len(props)),
	}
	for k, v := range props {
		o.props[k] = v
	}
	return o
}

func (o *Object) Get(key string) interface{} {
	return o.props[key]
}

// Has reports whether key has ever been set on o.
func (o *Object) Has(key string) bool {
	_, ok := o.props[key]
	return ok
}

// Keys returns o's property names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores v under key and notifies key's observers, in the order they
// were added.
func (o *Object) Set(key string, v interface{}) {
	o.props[key] = v
	// copy: observers may remove themselves while being notified.
	obs := append([]*observer(nil), o.observers[key]...)
	for _, ob := range obs {
		ob.fn()
	}
}

// AddObserver registers fn to be called after every Set of key. The
// returned function removes the observer.
func (o *Object) AddObserver(key string, fn func()) (cancel func()) {
	if o.observers == nil {
		o.observers = make(map[string][]*observer)
	}
	ob := &observer{fn: fn}
	o.observers[key] = append(o.observers[key], ob)
	return func() {
		list := o.observers[key]
		for i, e := range list {
			if e == ob {
				o.observers[key] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(o.observers[key]) == 0 {
			delete(o.observers, key)
		}
	}
}

// ObserverCount returns the number of observers registered for key.
func (o *Object) ObserverCount(key string) int {
	return len(o.observers[key])
}

// Plain converts o back into plain maps and slices.
func (o *Object) Plain() map[string]interface{} {
	m := make(map[string]interface{}, len(o.props))
	for k, v := range o.props {
		m[k] = Plain(v)
	}
	return m
}
