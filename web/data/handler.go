// Package data exposes a viewbind.DataService over HTTP. Paths are dotted
// data paths; bodies are YAML or JSON documents.
package data

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"howett.net/viewbind"
	"howett.net/viewbind/internal/datastore"
	"howett.net/viewbind/observable"
	"howett.net/viewbind/web"
)

const maxBodySize = 1 << 20

type Handler struct {
	DataService viewbind.DataService
	Renderer    web.Renderer
}

type UpdateComplete struct {
	Path string `json:"path" yaml:"path"`
}

func (h *Handler) valueFromRequest(r *http.Request) (interface{}, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	v, err := datastore.Decode(b)
	if err != nil {
		return nil, viewbind.Configurationf("body", "%v", err)
	}
	return v, nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	v, err := h.DataService.Get(r.Context(), path)
	if err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	// Plain copies the tree, so it must not race with writers.
	var plain interface{}
	h.DataService.Do(r.Context(), func(*observable.Object) error {
		plain = observable.Plain(v)
		return nil
	})
	h.Renderer.Render(w, r, http.StatusOK, plain)
}

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	v, err := h.valueFromRequest(r)
	if err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	if err := h.DataService.Set(r.Context(), path, v); err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, &UpdateComplete{path})
}

func (h *Handler) handlePush(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	v, err := h.valueFromRequest(r)
	if err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	if err := h.DataService.Push(r.Context(), path, v); err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusCreated, &UpdateComplete{path})
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	if err := h.DataService.RemoveAt(r.Context(), vars["path"], index); err != nil {
		h.Renderer.Error(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, &UpdateComplete{vars["path"]})
}

func (h *Handler) BindRoutes(router *mux.Router) error {
	router.Path("/{path}").
		Methods("GET").HandlerFunc(h.handleGet)

	router.Path("/{path}").
		Methods("PUT").HandlerFunc(h.handleSet)

	router.Path("/{path}").
		Methods("POST").HandlerFunc(h.handlePush)

	router.Path("/{path}/{index:[0-9]+}").
		Methods("DELETE").HandlerFunc(h.handleRemove)

	return nil
}

func NewHandler(ds viewbind.DataService, r web.Renderer) *Handler {
	return &Handler{
		DataService: ds,
		Renderer:    r,
	}
}
