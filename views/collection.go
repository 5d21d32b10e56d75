package views

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/observable"
)

// CollectionView renders one child view per element of its content and
// keeps them in step with the content as it changes. Only the children
// for affected elements are created or destroyed. When the content is
// empty or absent it shows its empty view instead, if it has one.
//
// Item views are created with the attributes `content` (the element) and
// `contentIndex`; their context is the element, unless the collection
// has a `keyword` attribute, in which case they keep the collection's
// context and the element is reached through the keyword. Every child,
// the empty view included, passes through the class's CreateChildView
// hook exactly once, before it is rendered and inserted.
type CollectionView struct {
	view      *View
	observed  *observable.Array
	emptyView *View
}

var _ observable.ArrayObserver = &CollectionView{}

func newCollectionView(v *View) *CollectionView {
	return &CollectionView{view: v}
}

func (c *CollectionView) View() *View {
	return c.view
}

func (c *CollectionView) Content() interface{} {
	return c.view.content
}

// ItemViews returns the current item views in content order.
func (c *CollectionView) ItemViews() []*View {
	items := make([]*View, 0, len(c.view.childViews))
	for _, v := range c.view.childViews {
		if v != c.emptyView {
			items = append(items, v)
		}
	}
	return items
}

// EmptyView returns the empty view currently shown, if any.
func (c *CollectionView) EmptyView() *View {
	return c.emptyView
}

func (c *CollectionView) itemViewClass() *ViewClass {
	if class, ok := c.view.attrs["itemViewClass"].(*ViewClass); ok {
		return class
	}
	if c.view.class.ItemViewClass != nil {
		return c.view.class.ItemViewClass
	}
	return ViewClassDefault
}

func (c *CollectionView) emptyViewClass() *ViewClass {
	if class, ok := c.view.attrs["emptyView"].(*ViewClass); ok {
		return class
	}
	return c.view.class.EmptyViewClass
}

func (c *CollectionView) checkContent(content interface{}) error {
	switch content.(type) {
	case nil, *observable.Array, []interface{}:
		return nil
	}
	switch reflect.ValueOf(content).Kind() {
	case reflect.Slice, reflect.Array:
		return nil
	}
	return fmt.Errorf("%s: %w: %T", c.view, viewbind.ErrNotACollection, content)
}

func (c *CollectionView) length() int {
	switch t := c.view.content.(type) {
	case nil:
		return 0
	case *observable.Array:
		return t.Len()
	case []interface{}:
		return len(t)
	}
	rv := reflect.ValueOf(c.view.content)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len()
	}
	return 0
}

func (c *CollectionView) at(i int) interface{} {
	switch t := c.view.content.(type) {
	case *observable.Array:
		return t.At(i)
	case []interface{}:
		return t[i]
	}
	return reflect.ValueOf(c.view.content).Index(i).Interface()
}

func (c *CollectionView) observe() {
	if a, ok := c.view.content.(*observable.Array); ok && c.observed != a {
		c.unobserve()
		a.AddArrayObserver(c)
		c.observed = a
	}
}

func (c *CollectionView) unobserve() {
	if c.observed != nil {
		c.observed.RemoveArrayObserver(c)
		c.observed = nil
	}
}

func (c *CollectionView) render() error {
	if err := c.checkContent(c.view.content); err != nil {
		return err
	}
	c.emptyView = nil
	c.observe()
	return c.insertItems(0, c.length())
}

// SetContent swaps the collection's content. Setting the content it
// already has is a no-op; anything else replaces every child view.
func (c *CollectionView) SetContent(content interface{}) error {
	if err := c.checkContent(content); err != nil {
		return err
	}
	if sameContent(c.view.content, content) {
		return nil
	}

	rendered := c.view.state == stateRendered
	if rendered {
		c.removeItems(0, c.length())
	}
	c.unobserve()
	c.view.content = content
	if !rendered {
		return nil
	}
	c.observe()
	return c.insertItems(0, c.length())
}

func sameContent(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	return false
}

func (c *CollectionView) ArrayWillChange(a *observable.Array, start, removed, added int) {
	if c.view.state != stateRendered {
		return
	}
	c.removeItems(start, removed)
}

func (c *CollectionView) ArrayDidChange(a *observable.Array, start, removed, added int) {
	if c.view.state != stateRendered {
		return
	}
	if err := c.insertItems(start, added); err != nil {
		c.view.logger().WithFields(logrus.Fields{
			"start": start,
			"added": added,
			"error": err,
		}).Error("failed to create item views")
	}
}

// removeItems destroys the item views for [start, start+count) and any
// empty view.
func (c *CollectionView) removeItems(start, count int) {
	if c.emptyView != nil {
		c.emptyView.Destroy()
		c.view.removeChild(c.emptyView)
		c.emptyView = nil
	}

	children := c.view.childViews
	end := start + count
	if end > len(children) {
		end = len(children)
	}
	if start >= end {
		return
	}
	for _, v := range children[start:end] {
		v.Destroy()
	}
	c.view.childViews = append(children[:start:start], children[end:]...)
}

// insertItems creates item views for the count elements at start, or the
// empty view when the content is empty. An element whose view fails is
// given an empty placeholder and the first such error is returned.
func (c *CollectionView) insertItems(start, count int) error {
	if c.length() == 0 {
		class := c.emptyViewClass()
		if class == nil {
			return nil
		}
		empty, err := c.createChildView(class, Attrs{})
		if err != nil {
			return err
		}
		if err := empty.Render(); err != nil {
			empty.Destroy()
			return err
		}
		c.emptyView = empty
		c.view.childViews = append(c.view.childViews, empty)
		return nil
	}

	class := c.itemViewClass()
	added := make([]*View, 0, count)
	var firstErr error
	for i := start; i < start+count; i++ {
		child, err := c.createItemView(class, i)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			child = c.placeholder(i)
		}
		added = append(added, child)
	}

	children := c.view.childViews
	if start > len(children) {
		start = len(children)
	}
	tail := append([]*View(nil), children[start:]...)
	c.view.childViews = append(append(children[:start], added...), tail...)
	c.view.logger().WithFields(logrus.Fields{
		"start": start,
		"count": len(added),
	}).Debug("item views inserted")
	return firstErr
}

func (c *CollectionView) createItemView(class *ViewClass, i int) (*View, error) {
	child, err := c.createChildView(class, Attrs{
		"content":      c.at(i),
		"contentIndex": i,
	})
	if err != nil {
		return nil, err
	}
	if err := child.Render(); err != nil {
		child.Destroy()
		return nil, err
	}
	return child, nil
}

// placeholder takes the slot of an element whose item view could not be
// built, so that child views stay aligned with the content.
func (c *CollectionView) placeholder(i int) *View {
	p := c.view.m.newView(MetamorphView, Attrs{
		"content":      c.at(i),
		"contentIndex": i,
	})
	p.parent = c.view
	p.state = stateRendered
	return p
}

// createChildView is the collection's creation step: it builds the child
// with the collection's defaults and then runs the class's hook.
func (c *CollectionView) createChildView(class *ViewClass, attrs Attrs) (*View, error) {
	v := c.view
	child := v.m.newView(class, attrs)
	child.parent = v
	_, keyed := v.attrs["keyword"]
	if child.templateData == nil {
		child.templateData = v.templateData
	}
	child.scopeKeywords()
	if _, ok := attrs["context"]; !ok {
		child.context = v.context
		if content, ok := attrs["content"]; ok && !keyed {
			child.context = content
		}
	}

	hook := v.class.CreateChildView
	if hook == nil {
		return child, nil
	}
	cv, err := hook(child, attrs)
	if err != nil {
		child.Destroy()
		return nil, err
	}
	final, ok := cv.(*View)
	if !ok || final == nil {
		child.Destroy()
		return nil, fmt.Errorf("%s: creation hook returned %T, not a view", v, cv)
	}
	final.parent = v
	return final, nil
}
