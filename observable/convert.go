package observable

import "fmt"

// FromValue converts a decoded YAML or JSON tree into Objects and Arrays.
// Maps become *Object, slices become *Array and scalars pass through.
func FromValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		o := NewObject(nil)
		for k, e := range t {
			o.props[k] = FromValue(e)
		}
		return o
	case map[interface{}]interface{}:
		o := NewObject(nil)
		for k, e := range t {
			o.props[fmt.Sprint(k)] = FromValue(e)
		}
		return o
	case []interface{}:
		items := make([]interface{}, len(t))
		for i, e := range t {
			items[i] = FromValue(e)
		}
		return &Array{items: items}
	}
	return v
}

// Plain is the inverse of FromValue.
func Plain(v interface{}) interface{} {
	switch t := v.(type) {
	case *Object:
		return t.Plain()
	case *Array:
		items := make([]interface{}, len(t.items))
		for i, e := range t.items {
			items[i] = Plain(e)
		}
		return items
	}
	return v
}
