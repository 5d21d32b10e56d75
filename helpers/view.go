package helpers

import (
	"strings"

	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/views"
)

// View appends a child view of a registered class. Hash entries become
// attributes; `fooBinding=path` sets foo to the value at path, except
// contentBinding, which stays bound.
//
//	{{#view "Sidebar" tagName="aside"}}...{{/view}}
func View(params []stache.Param, opts *views.HelperOptions) error {
	class := views.ViewClassDefault
	switch len(params) {
	case 0:
	case 1:
		c, err := resolveClass(opts.Model(), opts.Name, params[0].String())
		if err != nil {
			return err
		}
		class = c
	default:
		return viewbind.Configurationf(opts.Name, "expected at most one view class, got %d arguments", len(params))
	}

	attrs := make(views.Attrs, len(opts.Hash)+1)
	for k, p := range opts.Hash {
		if k != ContentBindingOption && strings.HasSuffix(k, "Binding") {
			attrs[strings.TrimSuffix(k, "Binding")] = opts.Lookup(p.String())
			continue
		}
		attrs[k] = hashValue(p)
	}
	if opts.Fn != nil {
		attrs["template"] = opts.Fn
	}

	_, err := opts.AppendChildView(class, attrs)
	return err
}
