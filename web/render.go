package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"howett.net/viewbind"
	"howett.net/viewbind/lib/rayman"

	yaml "gopkg.in/yaml.v2"
)

type Renderer interface {
	Error(w http.ResponseWriter, r *http.Request, err error)
	Render(w http.ResponseWriter, r *http.Request, status int, v interface{})
}

// StatusForError maps an error to the HTTP status it is reported with.
func StatusForError(err error) int {
	var nf *viewbind.NotFoundError
	var ce *viewbind.ConfigurationError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce),
		errors.Is(err, viewbind.ErrNotACollection),
		errors.Is(err, viewbind.ErrOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// DataRenderer writes objects as JSON, or as YAML for clients that accept
// it.
type DataRenderer struct{}

func wantsYAML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "yaml")
}

func (d DataRenderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	logger := rayman.RequestLogger(r).WithField("error", err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed")
	} else {
		logger.Info("request rejected")
	}
	d.write(w, r, status, map[string]string{
		"error": err.Error(),
	})
}

func (d DataRenderer) Render(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	d.write(w, r, status, map[string]interface{}{
		"object": v,
	})
}

func (DataRenderer) write(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var b []byte
	var err error
	if wantsYAML(r) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		b, err = yaml.Marshal(v)
	} else {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		b, err = json.Marshal(v)
	}
	if err != nil {
		rayman.RequestLogger(r).WithField("error", err).Error("failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}
