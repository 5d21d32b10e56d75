/*
Package views provides the view model: templates loaded from a set of
globbed files, rendered into a tree of views.

A Model holds templates, a helper table and a registry of view classes.
Helpers are never global; they are supplied at assembly time:

	m, err := views.New("templates/*.hbs",
		views.HelpersOption(helpers.Builtins{}),
		views.FieldLoggingOption(logger))

Once a template is bound via m.Bind(name, context), the returned root view
can be rendered in perpetuity. Rendering produces a tree: every helper
that appends a child view leaves a placeholder in its parent's output, so
a child can be re-rendered, removed or joined by siblings without the
parent template running again. HTML reassembles the tree.

Paths in templates resolve first against the keyword table of the current
TemplateData (`view`, for-each item names) and then against the context
object. `this` is the context itself. A concrete view binds `view` to
itself for its own template; virtual views leave it alone.

Views whose class is Virtual render their children without a wrapping
element; all others are wrapped as

	<div id="view7" class="view ...">...</div>

CollectionView is the generic list primitive. It is driven by a content
binding and by array observers on *observable.Array content, and lets
its class customize every child it creates through CreateChildView.
*/
package views
