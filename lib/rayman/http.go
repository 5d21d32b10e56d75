package rayman

import (
	"context"
	"net/http"
)

// RayHeader carries a ray id assigned by a fronting proxy.
const RayHeader = "X-Ray-ID"

// RequestWithRay attaches a ray to r, reusing the one a proxy put in
// RayHeader when there is one.
func RequestWithRay(r *http.Request) *http.Request {
	if id := r.Header.Get(RayHeader); id != "" {
		return r.WithContext(context.WithValue(r.Context(), rayKey, ID(id)))
	}
	return r.WithContext(ContextWithRay(r.Context()))
}

func FromRequest(r *http.Request) (ID, bool) {
	return FromContext(r.Context())
}

func Handler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, RequestWithRay(r))
	})
}
