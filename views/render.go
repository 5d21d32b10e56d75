package views

import (
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/observable"
)

// frame executes a program on behalf of a view: output and child views go
// to view, paths resolve against data's keywords and then context.
type frame struct {
	view    *View
	context interface{}
	data    *TemplateData
}

func (f *frame) exec(prog *stache.Program) error {
	for _, n := range prog.Nodes {
		var err error
		switch n := n.(type) {
		case *stache.TextNode:
			f.view.writeText(n.Text)
		case *stache.MustacheNode:
			err = f.execMustache(prog, n)
		case *stache.BlockNode:
			err = f.execBlock(prog, n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *frame) execMustache(prog *stache.Program, n *stache.MustacheNode) error {
	if h, ok := f.view.m.helper(n.Path); ok {
		return h(n.Params, &HelperOptions{
			Name:    n.Path,
			Hash:    n.Hash,
			Escaped: n.Escaped,
			Line:    n.Line(),
			frame:   f,
		})
	}
	if len(n.Params) > 0 || len(n.Hash) > 0 {
		return fmt.Errorf("%s:%d: %w %q", prog.Name, n.Line(), viewbind.ErrUnknownHelper, n.Path)
	}

	s := Stringify(f.lookup(n.Path))
	if n.Escaped {
		s = html.EscapeString(s)
	} else if p := f.view.m.rawPolicy; p != nil {
		s = p.Sanitize(s)
	}
	f.view.writeText(s)
	return nil
}

func (f *frame) execBlock(prog *stache.Program, n *stache.BlockNode) error {
	h, ok := f.view.m.helper(n.Name)
	if !ok {
		return fmt.Errorf("%s:%d: %w %q", prog.Name, n.Line(), viewbind.ErrUnknownHelper, n.Name)
	}
	return h(n.Params, &HelperOptions{
		Name:    n.Name,
		Hash:    n.Hash,
		Fn:      n.Program,
		Inverse: n.Inverse,
		Escaped: true,
		Line:    n.Line(),
		frame:   f,
	})
}

// root splits path into the object it is rooted at and the remainder.
// A leading keyword roots the path at the keyword's value; `this` and
// everything else root it at the frame's context.
func (f *frame) root(path string) (interface{}, string) {
	if path == "" || path == "this" {
		return f.context, ""
	}
	if strings.HasPrefix(path, "this.") {
		return f.context, path[len("this."):]
	}
	head, rest := path, ""
	if i := strings.IndexByte(path, '.'); i >= 0 {
		head, rest = path[:i], path[i+1:]
	}
	if kw, ok := f.data.Keyword(head); ok {
		return kw, rest
	}
	return f.context, path
}

func (f *frame) lookup(path string) interface{} {
	root, rest := f.root(path)
	return observable.Get(root, rest)
}

// newChildView creates a view of class whose defaults come from the
// frame: its context and shared template data.
func (f *frame) newChildView(class *ViewClass, attrs Attrs) (*View, error) {
	child := f.view.m.newView(class, attrs)
	if _, ok := attrs["context"]; !ok {
		child.context = f.context
	}
	if child.templateData == nil {
		child.templateData = f.data
	}
	child.scopeKeywords()

	if path, ok := attrs["contentBinding"].(string); ok {
		if err := f.bindContent(child, path); err != nil {
			child.Destroy()
			return nil, err
		}
	}
	return child, nil
}

// bindContent points child's content at path and keeps it there for the
// child's lifetime.
func (f *frame) bindContent(child *View, path string) error {
	root, rest := f.root(path)
	child.content = observable.Get(root, rest)
	if child.collection != nil {
		if err := child.collection.checkContent(child.content); err != nil {
			return err
		}
	}
	if rest == "" {
		return nil
	}

	var w *observable.Watcher
	w = observable.Watch(root, rest, func() {
		if err := child.SetContent(w.Value()); err != nil {
			child.logger().WithFields(logrus.Fields{
				"binding": path,
				"error":   err,
			}).Error("failed to apply content binding")
		}
	})
	child.teardown = append(child.teardown, w.Stop)
	return nil
}

// Stringify converts a value to the text a mustache renders for it.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	return fmt.Sprint(v)
}

// Truthy reports whether v counts as true for conditionals. Nil, false,
// zero numbers, empty strings and empty collections are false.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case *observable.Array:
		return t.Len() > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
