package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/viewbind/helpers"
	"howett.net/viewbind/internal/datastore"
	"howett.net/viewbind/lib/four"
	"howett.net/viewbind/observable"
	"howett.net/viewbind/views"
)

func newServer(t *testing.T, templates map[string]string) (http.Handler, *Handler, *datastore.Store) {
	t.Helper()
	dir := t.TempDir()
	for name, src := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".hbs"), []byte(src), 0o644))
	}
	m, err := views.New(filepath.Join(dir, "*.hbs"), views.HelpersOption(helpers.Builtins{}))
	require.NoError(t, err)

	root, err := datastore.Decode([]byte("people:\n  - name: Yehuda\n  - name: Tom\n"))
	require.NoError(t, err)
	store := datastore.New(root.(*observable.Object))

	h := NewHandler(m, store)
	router := mux.NewRouter()
	require.NoError(t, h.BindRoutes(router))
	return four.WrapHandler(router, h.NotFound()), h, store
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestShow(t *testing.T) {
	h, _, store := newServer(t, map[string]string{
		"people": `{{#each person in people}}{{person.name}};{{/each}}`,
	})

	rec := get(h, "/people")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Yehuda;Tom;", rec.Body.String())

	paul, _ := datastore.Decode([]byte("name: Paul"))
	require.NoError(t, store.Push(context.Background(), "people", paul))
	assert.Equal(t, "Yehuda;Tom;Paul;", get(h, "/people").Body.String())

	require.NoError(t, store.RemoveAt(context.Background(), "people", 0))
	assert.Equal(t, "Tom;Paul;", get(h, "/people").Body.String())
}

func TestNotFound(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		h, _, _ := newServer(t, nil)
		rec := get(h, "/nothing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Template", func(t *testing.T) {
		h, _, _ := newServer(t, map[string]string{"404": "<h1>not here</h1>"})
		rec := get(h, "/a/b/c")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "<h1>not here</h1>", rec.Body.String())
	})
}

func TestBrokenTemplate(t *testing.T) {
	h, _, _ := newServer(t, map[string]string{
		"bad": `{{#each a b c}}x{{/each}}`,
	})
	rec := get(h, "/bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
