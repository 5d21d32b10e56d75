package views

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/observable"
)

type viewState int

const (
	statePreRender viewState = iota
	stateRendered
	stateDestroyed
)

// segment is one piece of a rendered view: literal text or a child view.
type segment struct {
	text  string
	child *View
}

// View is a node in a rendered view tree. Its output is the concatenation
// of its segments, so re-rendering a child view never re-executes the
// parent's template.
type View struct {
	m      *Model
	id     string
	class  *ViewClass
	parent *View

	context      interface{}
	content      interface{}
	attrs        Attrs
	templateData *TemplateData

	state      viewState
	segments   []segment
	childViews []*View
	collection *CollectionView
	bound      *boundBlock
	teardown   []func()
}

var _ ChildView = &View{}
var _ KeywordCloner = &View{}
var _ observable.Getter = &View{}

func (v *View) ID() string {
	return v.id
}

func (v *View) Class() *ViewClass {
	return v.class
}

func (v *View) Parent() *View {
	return v.parent
}

func (v *View) Context() interface{} {
	return v.context
}

func (v *View) Content() interface{} {
	return v.content
}

func (v *View) TemplateData() *TemplateData {
	return v.templateData
}

func (v *View) SetTemplateData(d *TemplateData) {
	v.templateData = d
}

// Attr returns an attribute the view was created with.
func (v *View) Attr(key string) (interface{}, bool) {
	val, ok := v.attrs[key]
	return val, ok
}

// Get exposes the view to template paths such as `view.contentIndex`.
func (v *View) Get(key string) interface{} {
	switch key {
	case "content":
		return v.content
	case "context":
		return v.context
	case "id", "elementId":
		return v.id
	case "parentView":
		if v.parent == nil {
			return nil
		}
		return v.parent
	}
	return v.attrs[key]
}

// ChildViews returns a copy of v's current child views.
func (v *View) ChildViews() []*View {
	return append([]*View(nil), v.childViews...)
}

// Collection returns v's collection behaviour, or nil when v is not a
// collection view.
func (v *View) Collection() *CollectionView {
	return v.collection
}

func (v *View) IsVirtual() bool {
	return v.class.Virtual
}

func (v *View) IsDestroyed() bool {
	return v.state == stateDestroyed
}

// ConcreteView returns the nearest view, starting at v, that renders its
// own element.
func (v *View) ConcreteView() *View {
	for c := v; c != nil; c = c.parent {
		if !c.IsVirtual() {
			return c
		}
	}
	return v
}

// CloneKeywords returns a private copy of v's keyword table with `view`
// bound to v's concrete view and `_view` to v itself.
func (v *View) CloneKeywords() map[string]interface{} {
	var keywords map[string]interface{}
	if v.templateData != nil {
		keywords = copyKeywords(v.templateData.Keywords)
	} else {
		keywords = make(map[string]interface{}, 2)
	}
	keywords["view"] = v.ConcreteView()
	keywords["_view"] = v
	return keywords
}

// scopeKeywords gives a concrete view its own keyword table, so that
// `view` in its template refers to it.
func (v *View) scopeKeywords() {
	if v.IsVirtual() {
		return
	}
	v.templateData = ScopedTemplateData(v.templateData, v.CloneKeywords(), "view", v)
}

func (v *View) TagName() string {
	if t, ok := v.attrs["tagName"].(string); ok && t != "" {
		return t
	}
	if v.class.TagName != "" {
		return v.class.TagName
	}
	return "div"
}

func (v *View) classNames() []string {
	names := append([]string{"view"}, v.class.ClassNames...)
	switch c := v.attrs["classNames"].(type) {
	case string:
		names = append(names, strings.Fields(c)...)
	case []string:
		names = append(names, c...)
	}
	return names
}

// Template returns the program v renders, if any.
func (v *View) Template() (*stache.Program, error) {
	if t, ok := v.attrs["template"].(*stache.Program); ok {
		return t, nil
	}
	if v.class.Template != nil {
		return v.class.Template, nil
	}
	if v.class.TemplateSource != "" {
		return v.m.Compile(v.class.Name, v.class.TemplateSource)
	}
	if name, ok := v.attrs["templateName"].(string); ok {
		return v.m.Template(name)
	}
	return nil, nil
}

func (v *View) logger() logrus.FieldLogger {
	return v.m.logger.WithFields(logrus.Fields{
		"view":  v.id,
		"class": v.class.Name,
	})
}

// Render renders v and its descendants. Rendering an already rendered
// view does nothing.
func (v *View) Render() error {
	switch v.state {
	case stateDestroyed:
		return viewbind.ErrViewDestroyed
	case stateRendered:
		return nil
	}
	if err := v.render(); err != nil {
		v.destroyChildren()
		return err
	}
	v.state = stateRendered
	return nil
}

// Rerender discards v's output and child views and renders it again.
func (v *View) Rerender() error {
	if v.state == stateDestroyed {
		return viewbind.ErrViewDestroyed
	}
	v.destroyChildren()
	v.state = statePreRender
	return v.Render()
}

func (v *View) render() error {
	v.segments = nil
	switch {
	case v.collection != nil:
		return v.collection.render()
	case v.bound != nil:
		return v.bound.render(v)
	}

	tmpl, err := v.Template()
	if err != nil {
		return err
	}
	if tmpl == nil {
		return nil
	}
	f := &frame{view: v, context: v.context, data: v.templateData}
	return f.exec(tmpl)
}

// SetContent replaces v's content. Collection views update their child
// views incrementally; other rendered views re-render.
func (v *View) SetContent(content interface{}) error {
	if v.collection != nil {
		return v.collection.SetContent(content)
	}
	v.content = content
	if v.state == stateRendered {
		return v.Rerender()
	}
	return nil
}

func (v *View) writeText(s string) {
	if s == "" {
		return
	}
	if n := len(v.segments); n > 0 && v.segments[n-1].child == nil {
		v.segments[n-1].text += s
		return
	}
	v.segments = append(v.segments, segment{text: s})
}

// appendChild renders child and adds it after v's current output.
func (v *View) appendChild(child *View) error {
	child.parent = v
	v.childViews = append(v.childViews, child)
	v.segments = append(v.segments, segment{child: child})
	return child.Render()
}

func (v *View) removeChild(child *View) {
	for i, c := range v.childViews {
		if c == child {
			v.childViews = append(v.childViews[:i:i], v.childViews[i+1:]...)
			break
		}
	}
	for i, s := range v.segments {
		if s.child == child {
			v.segments = append(v.segments[:i:i], v.segments[i+1:]...)
			break
		}
	}
}

func (v *View) destroyChildren() {
	for _, c := range v.childViews {
		c.Destroy()
	}
	v.childViews = nil
	v.segments = nil
}

// Destroy tears down v, its bindings and all of its descendants.
func (v *View) Destroy() {
	if v.state == stateDestroyed {
		return
	}
	v.destroyChildren()
	for _, fn := range v.teardown {
		fn()
	}
	v.teardown = nil
	if v.collection != nil {
		v.collection.unobserve()
	}
	v.state = stateDestroyed
	v.m.logger.WithField("view", v.id).Debug("view destroyed")
}

// HTML returns v's current output. Unrendered views produce nothing.
func (v *View) HTML() string {
	b := &strings.Builder{}
	v.writeHTML(b)
	return b.String()
}

func (v *View) writeHTML(b *strings.Builder) {
	if v.state != stateRendered {
		return
	}
	if !v.IsVirtual() {
		fmt.Fprintf(b, `<%s id="%s" class="%s">`, v.TagName(), v.id, html.EscapeString(strings.Join(v.classNames(), " ")))
	}
	if v.collection != nil {
		for _, c := range v.childViews {
			c.writeHTML(b)
		}
	}
	for _, s := range v.segments {
		if s.child != nil {
			s.child.writeHTML(b)
		} else {
			b.WriteString(s.text)
		}
	}
	if !v.IsVirtual() {
		b.WriteString("</" + v.TagName() + ">")
	}
}

// Exec renders v, if necessary, and writes its output to w.
func (v *View) Exec(w io.Writer) error {
	if err := v.Render(); err != nil {
		return err
	}
	_, err := io.WriteString(w, v.HTML())
	return err
}

// ServeHTTP exists to provide conformance with http.Handler, allowing a
// view to be bound and used directly as a response handler.
func (v *View) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.Exec(w); err != nil {
		v.logger().WithField("error", err).Error("failed to render view")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (v *View) String() string {
	return fmt.Sprintf("<%s:%s>", v.class.Name, v.id)
}
