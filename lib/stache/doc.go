/*
Package stache parses the mustache-style template language used by views.

	text                  literal output
	{{path}}              HTML-escaped value of path
	{{{path}}}            raw value of path
	{{! comment }}        discarded
	{{name p1 p2 k=v}}    helper call
	{{#name p1 k=v}}
		...
	{{else}}
		...
	{{/name}}             block helper with an optional inverse

Parameters and hash values are paths (`person.name`, `this`), quoted
strings, numbers, or the literals true and false. Paths are kept
unresolved; evaluating them is the renderer's job.

Templates are parsed as Handlebars by github.com/aymerick/raymond and
narrowed to the forms above. Partials, subexpressions, parent paths
(`../x`) and block parameters are rejected with a ParseError.
*/
package stache
