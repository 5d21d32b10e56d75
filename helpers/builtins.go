// Package helpers contains the template helpers that ship with viewbind:
// the collection helpers (each, collection), view, the bound
// conditionals (if, unless) and a few formatting helpers.
//
// Helpers are not registered anywhere by default. Hand Builtins to a
// model when it is created:
//
//	m, err := views.New("templates/*.hbs", views.HelpersOption(helpers.Builtins{}))
package helpers

import (
	"howett.net/viewbind/views"
)

// Builtins provides every helper in this package.
type Builtins struct{}

func (Builtins) ViewHelpers() views.HelperMap {
	return views.HelperMap{
		"each":       Each,
		"collection": Collection,
		"view":       View,
		"if":         If,
		"unless":     Unless,
		"markdown":   Markdown,
		"humanize":   Humanize,
	}
}

// Classes returns the view classes the helpers refer to by name.
func Classes() []*views.ViewClass {
	return []*views.ViewClass{EachViewClass}
}
