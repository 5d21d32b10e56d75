// Package four replaces the bare "404 page not found" responses that
// net/http and gorilla/mux produce with a real page.
package four

import (
	"bytes"
	"net/http"
)

var defaultNotFoundBody = []byte("404 page not found\n")

// notFoundWriter swallows the default not-found body so that the page
// handler can write its own. Any other response passes through.
type notFoundWriter struct {
	http.ResponseWriter
	status  int
	wrote   bool
	tripped bool
}

func (w *notFoundWriter) WriteHeader(status int) {
	w.status = status
	if status == http.StatusNotFound {
		// hold the header back until we know whose body it is.
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *notFoundWriter) Write(p []byte) (int, error) {
	if w.status == http.StatusNotFound && !w.wrote {
		if bytes.Equal(p, defaultNotFoundBody) {
			w.tripped = true
			return len(p), nil
		}
		w.wrote = true
		w.ResponseWriter.WriteHeader(http.StatusNotFound)
	}
	return w.ResponseWriter.Write(p)
}

type handler struct {
	http.Handler
	notFound http.Handler
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	nw := &notFoundWriter{ResponseWriter: w}
	h.Handler.ServeHTTP(nw, r)
	switch {
	case nw.tripped:
		w.Header().Del("X-Content-Type-Options")
		h.notFound.ServeHTTP(w, r)
	case nw.status == http.StatusNotFound && !nw.wrote:
		w.WriteHeader(http.StatusNotFound)
	}
}

// WrapHandler returns an http.Handler that serves notFound wherever orig
// would have served the default 404 page.
func WrapHandler(orig http.Handler, notFound http.Handler) http.Handler {
	return &handler{orig, notFound}
}
