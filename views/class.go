package views

import (
	"howett.net/viewbind/lib/stache"
)

// Attrs are the attributes a view is created with.
type Attrs map[string]interface{}

// ChildView is the part of a freshly created child view that creation
// hooks may inspect and adjust before the view is inserted.
type ChildView interface {
	ID() string
	Content() interface{}
	TemplateData() *TemplateData
	SetTemplateData(*TemplateData)
}

// KeywordCloner is implemented by views that can hand out a private copy
// of their keyword table.
type KeywordCloner interface {
	CloneKeywords() map[string]interface{}
}

// ChildViewHook customizes a child view created by a collection view. It
// receives the view produced by the collection's own creation step and
// the attributes it was created with, and returns the view to insert.
type ChildViewHook func(view ChildView, attrs Attrs) (ChildView, error)

// ViewClass describes a kind of view. Classes are values; derive new ones
// with Extend rather than mutating shared classes.
type ViewClass struct {
	Name string

	// Template takes precedence over TemplateSource, which is compiled
	// (and cached) by the Model on first render.
	Template       *stache.Program
	TemplateSource string

	TagName    string
	ClassNames []string

	// Virtual views render their children without a wrapping element.
	Virtual bool

	// Collection views render one child per element of their content.
	Collection      bool
	ItemViewClass   *ViewClass
	EmptyViewClass  *ViewClass
	CreateChildView ChildViewHook
}

// Extend returns a copy of c with fn applied to it.
func (c *ViewClass) Extend(fn func(*ViewClass)) *ViewClass {
	n := *c
	n.ClassNames = append([]string(nil), c.ClassNames...)
	if fn != nil {
		fn(&n)
	}
	return &n
}

var (
	ViewClassDefault = &ViewClass{Name: "View"}

	// MetamorphView is the zero-footprint view.
	MetamorphView = &ViewClass{Name: "MetamorphView", Virtual: true}

	CollectionViewClass = &ViewClass{
		Name:          "CollectionView",
		Collection:    true,
		ItemViewClass: ViewClassDefault,
	}

	rootViewClass  = &ViewClass{Name: "RootView", Virtual: true}
	boundViewClass = &ViewClass{Name: "BoundView", Virtual: true}
)

var builtinClasses = []*ViewClass{ViewClassDefault, MetamorphView, CollectionViewClass}
