package data

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/viewbind/internal/datastore"
	"howett.net/viewbind/observable"
	"howett.net/viewbind/web"
)

func newServer(t *testing.T) (http.Handler, *datastore.Store) {
	t.Helper()
	root, err := datastore.Decode([]byte("people:\n  - name: Yehuda\n  - name: Tom\n"))
	require.NoError(t, err)
	store := datastore.New(root.(*observable.Object))

	router := mux.NewRouter()
	require.NoError(t, NewHandler(store, web.DataRenderer{}).BindRoutes(router))
	return router, store
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHandler(t *testing.T) {
	h, _ := newServer(t)

	rec, out := do(t, h, "GET", "/people.1.name", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tom", out["object"])

	rec, _ = do(t, h, "POST", "/people", `{"name": "Paul"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	_, out = do(t, h, "GET", "/people", "")
	require.Len(t, out["object"], 3)
	assert.Equal(t, "Paul", out["object"].([]interface{})[2].(map[string]interface{})["name"])

	rec, _ = do(t, h, "PUT", "/people.0.name", "Yehuda Katz")
	assert.Equal(t, http.StatusOK, rec.Code)
	_, out = do(t, h, "GET", "/people.0.name", "")
	assert.Equal(t, "Yehuda Katz", out["object"])

	rec, _ = do(t, h, "DELETE", "/people/0", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	_, out = do(t, h, "GET", "/people.length", "")
	assert.Equal(t, float64(2), out["object"])
}

func TestHandlerErrors(t *testing.T) {
	h, _ := newServer(t)

	for _, c := range []struct {
		method, path, body string
		status             int
	}{
		{"GET", "/nobody", "", http.StatusNotFound},
		{"DELETE", "/people/9", "", http.StatusBadRequest},
		{"POST", "/people.0.name", "x", http.StatusBadRequest},
		{"POST", "/people", "{unterminated", http.StatusBadRequest},
	} {
		t.Run(c.method+c.path, func(t *testing.T) {
			rec, out := do(t, h, c.method, c.path, c.body)
			assert.Equal(t, c.status, rec.Code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestYAMLResponses(t *testing.T) {
	h, _ := newServer(t)
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/people.0", nil)
	r.Header.Set("Accept", "application/yaml")
	h.ServeHTTP(rec, r)
	assert.Equal(t, "application/yaml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "object:\n  name: Yehuda\n", rec.Body.String())
}
