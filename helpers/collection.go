package helpers

import (
	"errors"
	"fmt"

	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/views"
)

// hashOptions flattens a hash into attributes: paths and strings become
// their text, other literals their value.
func hashOptions(hash stache.Hash) views.Attrs {
	attrs := make(views.Attrs, len(hash)+3)
	for k, p := range hash {
		attrs[k] = hashValue(p)
	}
	return attrs
}

// checkReserved rejects hash keys that only each may set.
func checkReserved(construct string, hash stache.Hash) error {
	for _, key := range []string{KeywordOption, EachHelperOption} {
		if _, ok := hash[key]; ok {
			return viewbind.Configurationf(construct, "%s is reserved and may not be passed as an option", key)
		}
	}
	return nil
}

func hashValue(p stache.Param) interface{} {
	switch p.Kind {
	case stache.PathParam, stache.StringParam:
		return p.String()
	}
	return p.Value
}

// resolveClass turns a class reference from a template into a class.
func resolveClass(m *views.Model, construct string, ref interface{}) (*views.ViewClass, error) {
	switch r := ref.(type) {
	case *views.ViewClass:
		return r, nil
	case string:
		class, err := m.ViewClass(r)
		var nf *viewbind.NotFoundError
		if errors.As(err, &nf) {
			return nil, viewbind.Configurationf(construct, "unknown view class %q", r)
		}
		return class, err
	}
	return nil, viewbind.Configurationf(construct, "%v is not a view class", ref)
}

func hasTemplate(class *views.ViewClass) bool {
	return class.Template != nil || class.TemplateSource != ""
}

// renderCollection appends a collection view of class, configured from
// options and the helper's block:
//
//   - itemViewClass selects the item class; the block, when present,
//     becomes the item template. Without a block the item class must
//     bring its own template.
//   - itemTagName sets the tag of item and empty views.
//   - the inverse block becomes the empty view, extending emptyViewClass
//     (or the collection's own empty class); without an inverse block an
//     explicit emptyViewClass is used as is.
//
// Every other option becomes an attribute of the collection view.
func renderCollection(class *views.ViewClass, options views.Attrs, opts *views.HelperOptions) (*views.View, error) {
	m := opts.Model()
	attrs := make(views.Attrs, len(options)+2)

	itemClass := class.ItemViewClass
	if itemClass == nil {
		itemClass = views.ViewClassDefault
	}
	var emptyClass *views.ViewClass
	var itemTagName string

	for k, v := range options {
		var err error
		switch k {
		case "itemViewClass":
			itemClass, err = resolveClass(m, opts.Name, v)
		case "emptyViewClass":
			emptyClass, err = resolveClass(m, opts.Name, v)
		case "itemTagName":
			itemTagName = fmt.Sprint(v)
		default:
			attrs[k] = v
		}
		if err != nil {
			return nil, err
		}
	}

	fn := opts.Fn
	if fn == nil && !hasTemplate(itemClass) {
		return nil, viewbind.Configurationf(opts.Name, "needs a block or an itemViewClass with a template (%s has none)", itemClass.Name)
	}

	attrs["itemViewClass"] = itemClass.Extend(func(c *views.ViewClass) {
		if fn != nil {
			c.Template = fn
		}
		if itemTagName != "" {
			c.TagName = itemTagName
		}
	})

	switch {
	case opts.Inverse != nil:
		base := emptyClass
		if base == nil {
			base = class.EmptyViewClass
		}
		if base == nil {
			base = views.ViewClassDefault
		}
		inverse := opts.Inverse
		attrs["emptyView"] = base.Extend(func(c *views.ViewClass) {
			c.Template = inverse
			if itemTagName != "" {
				c.TagName = itemTagName
			}
		})
	case emptyClass != nil:
		attrs["emptyView"] = emptyClass
	}

	return opts.AppendChildView(class, attrs)
}

// Collection renders a collection view. The optional parameter names a
// registered collection class.
//
//	{{#collection contentBinding="people" itemTagName="li"}}{{name}}{{/collection}}
func Collection(params []stache.Param, opts *views.HelperOptions) error {
	class := views.CollectionViewClass
	switch len(params) {
	case 0:
	case 1:
		c, err := resolveClass(opts.Model(), opts.Name, params[0].String())
		if err != nil {
			return err
		}
		if !c.Collection {
			return viewbind.Configurationf(opts.Name, "%s is not a collection view class", c.Name)
		}
		class = c
	default:
		return viewbind.Configurationf(opts.Name, "expected at most one view class, got %d arguments", len(params))
	}
	if err := checkReserved(opts.Name, opts.Hash); err != nil {
		return err
	}
	_, err := renderCollection(class, hashOptions(opts.Hash), opts)
	return err
}
