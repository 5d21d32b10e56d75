// Package pages serves bound views as HTML pages. A view is bound to the
// data tree on its first request and stays bound, so later requests see
// the output the view's bindings have kept up to date.
package pages

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/rayman"
	"howett.net/viewbind/observable"
	"howett.net/viewbind/views"
	"howett.net/viewbind/web"
)

// NotFoundView is the view rendered for unknown pages, when the model
// has a template for it.
const NotFoundView = "404"

type Handler struct {
	Model       *views.Model
	DataService viewbind.DataService

	mu    sync.Mutex
	bound map[string]*views.View
}

// view returns the view bound for name, binding it on first use. Callers
// hold the data service.
func (h *Handler) view(name string, root *observable.Object) (*views.View, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.bound[name]; ok {
		return v, nil
	}
	v, err := h.Model.Bind(name, root)
	if err != nil {
		return nil, err
	}
	if h.bound == nil {
		h.bound = make(map[string]*views.View)
	}
	h.bound[name] = v
	return v, nil
}

// Render renders the view named name into a buffer.
func (h *Handler) Render(ctx context.Context, name string) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := h.DataService.Do(ctx, func(root *observable.Object) error {
		v, err := h.view(name, root)
		if err != nil {
			return err
		}
		return v.Exec(buf)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reload re-reads the model's templates; views already served re-render
// against the new templates.
func (h *Handler) Reload(ctx context.Context) error {
	return h.DataService.Do(ctx, func(*observable.Object) error {
		return h.Model.Reload()
	})
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, name string) {
	b, err := h.Render(r.Context(), name)
	if err != nil {
		status := web.StatusForError(err)
		rayman.RequestLogger(r).WithFields(logrus.Fields{
			"page":  name,
			"error": err,
		}).Error("failed to render page")
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(b)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusOK, mux.Vars(r)["name"])
}

// NotFound renders NotFoundView with a 404 status, or a plain 404 when
// there is no such template.
func (h *Handler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.Model.Template(NotFoundView); err != nil {
			http.Error(w, "404 page not found", http.StatusNotFound)
			return
		}
		h.write(w, r, http.StatusNotFound, NotFoundView)
	})
}

func (h *Handler) BindRoutes(router *mux.Router) error {
	router.Path("/{name}").
		Methods("GET").HandlerFunc(h.handleShow)
	return nil
}

func NewHandler(m *views.Model, ds viewbind.DataService) *Handler {
	return &Handler{
		Model:       m,
		DataService: ds,
	}
}
