package views

import (
	"html"

	"github.com/sirupsen/logrus"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/observable"
)

// Helper implements a template helper. params are the raw positional
// parameters as written in the template; paths are not resolved.
type Helper func(params []stache.Param, opts *HelperOptions) error

// HelperMap is the helper table a Model consults while rendering.
type HelperMap map[string]Helper

// HelperProvider is the interface that allows Model consumers to provide
// their own template helpers.
type HelperProvider interface {
	ViewHelpers() HelperMap
}

// HelperOptions carries everything a helper invocation may use besides
// its positional parameters.
type HelperOptions struct {
	Name    string
	Hash    stache.Hash
	Fn      *stache.Program
	Inverse *stache.Program
	Escaped bool
	Line    int

	frame *frame
}

// View returns the view whose template invoked the helper.
func (o *HelperOptions) View() *View {
	return o.frame.view
}

func (o *HelperOptions) Context() interface{} {
	return o.frame.context
}

func (o *HelperOptions) Data() *TemplateData {
	return o.frame.data
}

func (o *HelperOptions) Model() *Model {
	return o.frame.view.m
}

func (o *HelperOptions) Logger() logrus.FieldLogger {
	return o.frame.view.logger().WithField("helper", o.Name)
}

// Lookup resolves path the way a mustache would.
func (o *HelperOptions) Lookup(path string) interface{} {
	return o.frame.lookup(path)
}

// Value resolves p: paths are looked up, literals are returned as written.
func (o *HelperOptions) Value(p stache.Param) interface{} {
	if path, ok := p.Path(); ok {
		return o.Lookup(path)
	}
	return p.Value
}

// WriteHTML appends s, unescaped, to the invoking view's output.
func (o *HelperOptions) WriteHTML(s string) {
	o.frame.view.writeText(s)
}

// WriteText appends s to the invoking view's output, escaping it unless
// the helper was invoked with a triple-stash.
func (o *HelperOptions) WriteText(s string) {
	if o.Escaped {
		s = html.EscapeString(s)
	}
	o.frame.view.writeText(s)
}

// RenderBlock executes prog inline, in the invoking view, against
// context.
func (o *HelperOptions) RenderBlock(prog *stache.Program, context interface{}) error {
	if prog == nil {
		return nil
	}
	f := &frame{view: o.frame.view, context: context, data: o.frame.data}
	return f.exec(prog)
}

// AppendChildView creates a view of class and appends it to the invoking
// view's output. A string `contentBinding` attribute binds the new view's
// content to that path, resolved where the helper was invoked.
func (o *HelperOptions) AppendChildView(class *ViewClass, attrs Attrs) (*View, error) {
	child, err := o.frame.newChildView(class, attrs)
	if err != nil {
		return nil, err
	}
	if err := o.frame.view.appendChild(child); err != nil {
		return nil, err
	}
	return child, nil
}

// AppendBoundView appends a zero-footprint view that renders whatever
// choose returns for the value at path, and renders again whenever that
// value changes. A nil program renders nothing.
func (o *HelperOptions) AppendBoundView(path string, choose func(value interface{}) (*stache.Program, interface{})) (*View, error) {
	root, rest := o.frame.root(path)
	child, err := o.frame.newChildView(boundViewClass, nil)
	if err != nil {
		return nil, err
	}
	child.bound = &boundBlock{
		root:   root,
		path:   rest,
		choose: choose,
	}
	if rest != "" {
		w := observable.Watch(root, rest, func() {
			if err := child.Rerender(); err != nil {
				child.logger().WithField("error", err).Error("failed to re-render bound view")
			}
		})
		child.teardown = append(child.teardown, w.Stop)
	}
	if err := o.frame.view.appendChild(child); err != nil {
		return nil, err
	}
	return child, nil
}

type boundBlock struct {
	root   interface{}
	path   string
	choose func(value interface{}) (*stache.Program, interface{})
}

func (b *boundBlock) render(v *View) error {
	prog, context := b.choose(observable.Get(b.root, b.path))
	if prog == nil {
		return nil
	}
	f := &frame{view: v, context: context, data: v.templateData}
	return f.exec(prog)
}
