package helpers

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/views"
)

type mkdHtmlRenderer struct {
	blackfriday.Renderer
}

// BlockCode tags fenced code with its language so stylesheets can pick it
// up; the sanitation policy keeps the class.
func (h *mkdHtmlRenderer) BlockCode(out *bytes.Buffer, text []byte, lang string) {
	if lang == "" {
		h.Renderer.BlockCode(out, text, lang)
		return
	}
	out.WriteString(`<div class="code code-` + html.EscapeString(lang) + `"><pre>`)
	out.WriteString(html.EscapeString(string(text)))
	out.WriteString(`</pre></div>`)
}

func newMkdHtmlRenderer() *mkdHtmlRenderer {
	return &mkdHtmlRenderer{blackfriday.HtmlRenderer(blackfriday.HTML_SAFELINK|
		blackfriday.HTML_NOFOLLOW_LINKS, "", "")}
}

var markdownRenderer blackfriday.Renderer
var sanitationPolicy *bluemonday.Policy

func init() {
	markdownRenderer = newMkdHtmlRenderer()
	sanitationPolicy = bluemonday.UGCPolicy()
	sanitationPolicy.AllowAttrs("class").OnElements("div", "i", "span")
}

// RenderMarkdown converts src to sanitized HTML.
func RenderMarkdown(src string) string {
	md := blackfriday.Markdown([]byte(src), markdownRenderer,
		blackfriday.EXTENSION_NO_INTRA_EMPHASIS|
			blackfriday.EXTENSION_TABLES|
			blackfriday.EXTENSION_AUTOLINK|
			blackfriday.EXTENSION_FENCED_CODE|
			blackfriday.EXTENSION_HEADER_IDS|
			blackfriday.EXTENSION_LAX_HTML_BLOCKS)
	return sanitationPolicy.Sanitize(string(md))
}

// Markdown renders the value of its parameter as markdown.
//
//	{{markdown post.body}}
func Markdown(params []stache.Param, opts *views.HelperOptions) error {
	if len(params) != 1 {
		return viewbind.Configurationf(opts.Name, "expected one argument, got %d", len(params))
	}
	opts.WriteHTML(RenderMarkdown(views.Stringify(opts.Value(params[0]))))
	return nil
}
