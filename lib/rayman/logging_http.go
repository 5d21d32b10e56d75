package rayman

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

func RequestLogger(r *http.Request) logrus.FieldLogger {
	return ContextLogger(r.Context())
}

// LoggingHandler assigns a ray to every request and attaches a logger
// carrying it. The ray is echoed in the RayHeader response header.
func LoggingHandler(h http.Handler, logger logrus.FieldLogger) http.Handler {
	return Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rid, ok := FromContext(ctx)
		if ok {
			rayedLogger := logger.WithFields(logrus.Fields{
				"ray":    rid,
				"method": r.Method,
				"path":   r.URL.Path,
			})
			r = r.WithContext(contextWithLogger(ctx, rayedLogger))
			w.Header().Set(RayHeader, string(rid))
			rayedLogger.Debug("request")
		}
		h.ServeHTTP(w, r)
	}))
}

// Middleware adapts LoggingHandler to an alice chain.
func Middleware(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return LoggingHandler(h, logger)
	}
}
