package observable

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Observable is implemented by values that can report changes to a named
// property. *Object is the canonical implementation.
type Observable interface {
	AddObserver(key string, fn func()) (cancel func())
}

func splitPath(path string) []string {
	if path == "" || path == "this" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "this."), ".")
}

// Get resolves a dotted path against root. An empty path and "this"
// resolve to root itself. Missing segments resolve to nil.
func Get(root interface{}, path string) interface{} {
	cur := root
	for _, seg := range splitPath(path) {
		if cur == nil {
			return nil
		}
		cur = getKey(cur, seg)
	}
	return cur
}

func getKey(v interface{}, key string) interface{} {
	switch t := v.(type) {
	case *Array:
		if i, err := strconv.Atoi(key); err == nil {
			if i >= 0 && i < t.Len() {
				return t.At(i)
			}
			return nil
		}
		return t.Get(key)
	case Getter:
		return t.Get(key)
	case map[string]interface{}:
		return t[key]
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f := rv.FieldByName(key)
		if !f.IsValid() {
			f = rv.FieldByName(exported(key))
		}
		if f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			e := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
			if e.IsValid() {
				return e.Interface()
			}
		}
	case reflect.Slice, reflect.Array:
		if key == "length" {
			return rv.Len()
		}
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < rv.Len() {
			return rv.Index(i).Interface()
		}
	}
	return nil
}

func exported(key string) string {
	r, n := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[n:]
}

// Set assigns v at path below root. Every segment but the last must
// resolve; the owner of the last segment must be an *Object or a
// map[string]interface{}.
func Set(root interface{}, path string, v interface{}) error {
	segs := splitPath(path)
	if len(segs) == 0 {
		return fmt.Errorf("observable: cannot set %q", path)
	}
	owner := Get(root, strings.Join(segs[:len(segs)-1], "."))
	key := segs[len(segs)-1]
	switch o := owner.(type) {
	case *Object:
		o.Set(key, v)
	case map[string]interface{}:
		o[key] = v
	default:
		return fmt.Errorf("observable: %s is not settable on %T", path, owner)
	}
	return nil
}

// Watcher observes every Observable along a path. When an intermediate
// segment changes, the watcher re-subscribes along the new chain.
type Watcher struct {
	root    interface{}
	path    string
	segs    []string
	fn      func()
	cancels []func()
	stopped bool
}

// Watch calls fn whenever the value at path below root may have changed.
func Watch(root interface{}, path string, fn func()) *Watcher {
	w := &Watcher{
		root: root,
		path: path,
		segs: splitPath(path),
		fn:   fn,
	}
	w.subscribe()
	return w
}

func (w *Watcher) subscribe() {
	cur := w.root
	for i, seg := range w.segs {
		if cur == nil {
			return
		}
		if o, ok := cur.(Observable); ok {
			w.cancels = append(w.cancels, o.AddObserver(seg, w.changed(i == len(w.segs)-1)))
		}
		cur = getKey(cur, seg)
	}
}

func (w *Watcher) unsubscribe() {
	for _, c := range w.cancels {
		c()
	}
	w.cancels = nil
}

func (w *Watcher) changed(last bool) func() {
	return func() {
		if w.stopped {
			return
		}
		if !last {
			w.unsubscribe()
			w.subscribe()
		}
		w.fn()
	}
}

// Value returns the current value at the watched path.
func (w *Watcher) Value() interface{} {
	return Get(w.root, w.path)
}

func (w *Watcher) Stop() {
	w.stopped = true
	w.unsubscribe()
}
