package helpers

import (
	"strings"

	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/views"
)

// Connective is the reserved word separating the keyword from the path in
// `each keyword in path`.
const Connective = "in"

// Option keys written by ParseEachInvocation.
const (
	ContentBindingOption = "contentBinding"
	KeywordOption        = "keyword"
	EachHelperOption     = "eachHelper"
)

type EachForm int

const (
	// PositionalForm is `each path`: items are the context of their block.
	PositionalForm EachForm = iota
	// NamedForm is `each keyword in path`: items are bound to keyword.
	NamedForm
)

func (f EachForm) String() string {
	if f == NamedForm {
		return "named"
	}
	return "positional"
}

// EachInvocation is the canonical form of an each invocation.
type EachInvocation struct {
	Form       EachForm
	SourcePath string
	Keyword    string

	// Options holds the invocation's hash together with the binding
	// options above; it becomes the attribute set of the each view.
	Options views.Attrs
}

// ParseEachInvocation normalizes the two call shapes of each. One
// parameter is the positional form; three are the named form, whose
// middle parameter must be Connective. Anything else is a
// ConfigurationError, as is a hash that sets KeywordOption or
// EachHelperOption itself.
func ParseEachInvocation(params []stache.Param, hash stache.Hash) (*EachInvocation, error) {
	if err := checkReserved("each", hash); err != nil {
		return nil, err
	}
	inv := &EachInvocation{
		Options: hashOptions(hash),
	}

	switch len(params) {
	case 1:
		path, err := sourcePath(params[0])
		if err != nil {
			return nil, err
		}
		if path == "" {
			return nil, viewbind.Configurationf("each", "collection path is empty")
		}
		inv.Form = PositionalForm
		inv.SourcePath = path
		inv.Options[EachHelperOption] = "each"

	case 3:
		if c, ok := params[1].Path(); !ok || c != Connective {
			return nil, viewbind.Configurationf("each", "with more than one argument it must be in the form `each foo %s bar`, found %q", Connective, params[1].Raw)
		}
		keyword, ok := params[0].Path()
		if !ok || keyword == "this" || strings.Contains(keyword, ".") {
			return nil, viewbind.Configurationf("each", "keyword %q must be a simple name", params[0].Raw)
		}
		path, err := sourcePath(params[2])
		if err != nil {
			return nil, err
		}
		if path == "" {
			path = "this"
		}
		inv.Form = NamedForm
		inv.SourcePath = path
		inv.Keyword = keyword
		inv.Options[KeywordOption] = keyword

	default:
		return nil, viewbind.Configurationf("each", "expected `each path` or `each foo %s path`, got %d arguments", Connective, len(params))
	}

	inv.Options[ContentBindingOption] = inv.SourcePath
	return inv, nil
}

// sourcePath accepts a path or a quoted path.
func sourcePath(p stache.Param) (string, error) {
	switch p.Kind {
	case stache.PathParam, stache.StringParam:
	default:
		return "", viewbind.Configurationf("each", "collection must be a path, found %s %s", p.Kind, p.Raw)
	}
	return p.String(), nil
}

// EachViewClass is the collection view behind each. It and its default
// item and empty views are zero-footprint.
var EachViewClass = &views.ViewClass{
	Name:           "EachView",
	Virtual:        true,
	Collection:     true,
	ItemViewClass:  views.MetamorphView,
	EmptyViewClass: views.MetamorphView,
}

// Each renders its block once per element of a collection.
//
//	{{#each people}}{{name}}{{/each}}
//	{{#each person in people}}{{person.name}}{{else}}nobody{{/each}}
//	{{each people itemViewClass="PersonView"}}
func Each(params []stache.Param, opts *views.HelperOptions) error {
	inv, err := ParseEachInvocation(params, opts.Hash)
	if err != nil {
		return err
	}
	_, err = InstallEach(inv, opts)
	return err
}

// InstallEach hands a parsed invocation to the collection primitive: an
// EachView bound to the source path whose children are customized by an
// ItemViewFactory for the invocation's keyword.
func InstallEach(inv *EachInvocation, opts *views.HelperOptions) (*views.View, error) {
	factory := &ItemViewFactory{Keyword: inv.Keyword}
	class := EachViewClass.Extend(func(c *views.ViewClass) {
		c.CreateChildView = factory.CreateChildView
	})
	return renderCollection(class, inv.Options, opts)
}

// ItemViewFactory gives every child of an each view its own scope in
// which Keyword resolves to the child's item.
type ItemViewFactory struct {
	Keyword string
}

// CreateChildView runs after the collection's own creation step. Without
// a keyword the view is returned untouched and its item is reachable only
// as the block's context. With one, the view gets a copy of its template
// data whose keyword table is the view's own clone, plus Keyword bound to
// the view's content. The binding is not observed: an item view's content
// never changes, the collection replaces the view instead.
func (f *ItemViewFactory) CreateChildView(view views.ChildView, attrs views.Attrs) (views.ChildView, error) {
	if f.Keyword == "" {
		return view, nil
	}

	cloner, ok := view.(views.KeywordCloner)
	if !ok {
		return nil, &viewbind.CapabilityMissingError{
			Capability: "CloneKeywords",
			View:       view.ID(),
		}
	}

	view.SetTemplateData(views.ScopedTemplateData(view.TemplateData(), cloner.CloneKeywords(), f.Keyword, view.Content()))
	return view, nil
}
