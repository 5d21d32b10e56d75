package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/viewbind"
	"howett.net/viewbind/observable"
)

func TestCollection(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		ctx, people := peopleContext("Yehuda", "Tom")
		v := render(t, newModel(t), `{{#collection contentBinding="people" itemTagName="li"}}{{name}}{{/collection}}`, ctx)
		assert.Regexp(t, `^<div id="view\d+" class="view"><li id="view\d+" class="view">Yehuda</li><li id="view\d+" class="view">Tom</li></div>$`, v.HTML())

		people.RemoveAt(1)
		assert.Regexp(t, `^<div id="view\d+" class="view"><li id="view\d+" class="view">Yehuda</li></div>$`, v.HTML())
	})

	t.Run("NamedClass", func(t *testing.T) {
		ctx, _ := peopleContext("Tom")
		v := render(t, newModel(t), `{{#collection "EachView" contentBinding="people"}}{{name}}{{/collection}}`, ctx)
		assert.Equal(t, "Tom", v.HTML())
	})

	t.Run("NotACollectionClass", func(t *testing.T) {
		_, err := newModel(t).RenderString(`{{#collection "View" contentBinding="people"}}x{{/collection}}`, nil)
		var ce *viewbind.ConfigurationError
		assert.True(t, errors.As(err, &ce), "got %v", err)
	})

	t.Run("ReservedOption", func(t *testing.T) {
		_, err := newModel(t).RenderString(`{{#collection contentBinding="people" keyword="p"}}x{{/collection}}`, nil)
		var ce *viewbind.ConfigurationError
		assert.True(t, errors.As(err, &ce), "got %v", err)
	})
}

func TestView(t *testing.T) {
	m := newModel(t)

	t.Run("Block", func(t *testing.T) {
		out, err := m.RenderString(`{{#view tagName="p" classNames="note"}}{{name}}{{/view}}`, map[string]interface{}{"name": "Tom"})
		require.NoError(t, err)
		assert.Regexp(t, `^<p id="view\d+" class="view note">Tom</p>$`, out)
	})

	t.Run("Bindings", func(t *testing.T) {
		out, err := m.RenderString(`{{#view headerBinding="title"}}{{view.header}}{{/view}}`, map[string]interface{}{"title": "T"})
		require.NoError(t, err)
		assert.Regexp(t, `^<div id="view\d+" class="view">T</div>$`, out)

		out, err = m.RenderString(`{{#view "MetamorphView" headerBinding="title"}}[{{view.header}}]{{/view}}`, map[string]interface{}{"title": "T"})
		require.NoError(t, err)
		assert.Equal(t, "[]", out, "a virtual view leaves view pointing at the enclosing view")
	})

	t.Run("UnknownClass", func(t *testing.T) {
		_, err := m.RenderString(`{{view "Nope"}}`, nil)
		var ce *viewbind.ConfigurationError
		assert.True(t, errors.As(err, &ce))
	})
}

func TestIf(t *testing.T) {
	m := newModel(t)

	t.Run("Bound", func(t *testing.T) {
		ctx := observable.NewObject(map[string]interface{}{"on": true})
		v := render(t, m, `[{{#if on}}yes{{else}}no{{/if}}|{{#unless on}}off{{/unless}}]`, ctx)
		assert.Equal(t, "[yes|]", v.HTML())

		ctx.Set("on", false)
		assert.Equal(t, "[no|off]", v.HTML())
	})

	t.Run("Literal", func(t *testing.T) {
		out, err := m.RenderString(`{{#if true}}a{{/if}}{{#if 0}}b{{else}}c{{/if}}`, nil)
		require.NoError(t, err)
		assert.Equal(t, "ac", out)
	})

	t.Run("InsideEach", func(t *testing.T) {
		ctx := map[string]interface{}{
			"items": observable.FromValue([]interface{}{
				map[string]interface{}{"name": "a", "done": true},
				map[string]interface{}{"name": "b", "done": false},
			}),
		}
		v := render(t, m, `{{#each item in items}}{{#if item.done}}[{{item.name}}]{{else}}{{item.name}}{{/if}}{{/each}}`, ctx)
		assert.Equal(t, "[a]b", v.HTML())

		ctx["items"].(*observable.Array).At(1).(*observable.Object).Set("done", true)
		assert.Equal(t, "[a][b]", v.HTML())
	})

	t.Run("Errors", func(t *testing.T) {
		for _, src := range []string{`{{if a}}`, `{{#if a b}}x{{/if}}`} {
			_, err := m.RenderString(src, nil)
			var ce *viewbind.ConfigurationError
			assert.True(t, errors.As(err, &ce), src)
		}
	})
}

func TestMarkdown(t *testing.T) {
	out, err := newModel(t).RenderString(`{{markdown body}}`, map[string]interface{}{
		"body": "Some *emphasis*.\n\n<script>alert(1)</script>\n\n```go\nfmt.Println(\"<hi>\")\n```\n",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `class="code code-go"`)
	assert.Contains(t, out, "&lt;hi&gt;")
}

func TestHumanize(t *testing.T) {
	m := newModel(t)
	ctx := map[string]interface{}{"size": 82854982, "n": 1234567, "place": 3}

	out, err := m.RenderString(`{{humanize size "bytes"}} {{humanize n}} {{humanize place format="ordinal"}} {{humanize 1000}}`, ctx)
	require.NoError(t, err)
	assert.Equal(t, "83 MB 1,234,567 3rd 1,000", out)

	_, err = m.RenderString(`{{humanize n "weird"}}`, ctx)
	var ce *viewbind.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}
