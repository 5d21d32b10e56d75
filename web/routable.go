package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Routable interface {
	BindRoutes(*mux.Router) error
}

// Subrouter mounts a fresh router under prefix of r.
func Subrouter(r *mux.Router, prefix string) *mux.Router {
	n := mux.NewRouter()
	r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, n))
	return n
}
