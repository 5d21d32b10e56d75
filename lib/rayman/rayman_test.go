package rayman

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithRay(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	a, ok := FromContext(ContextWithRay(context.Background()))
	require.True(t, ok)
	b, _ := FromContext(ContextWithRay(context.Background()))
	assert.NotEqual(t, a, b)
	assert.Len(t, string(a), 36)
}

func TestLoggingHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.Out = buf
	logger.Formatter = &logrus.JSONFormatter{}

	var seen ID
	h := LoggingHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		seen, ok = FromRequest(r)
		require.True(t, ok)
		RequestLogger(r).Info("hello")
	}), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/views/index", nil))

	assert.Equal(t, string(seen), rec.Header().Get("X-Ray-ID"))
	assert.Contains(t, buf.String(), `"ray":"`+string(seen)+`"`)
	assert.Contains(t, buf.String(), `"path":"/views/index"`)
}

func TestContextLoggerWithoutRay(t *testing.T) {
	assert.NotNil(t, ContextLogger(context.Background()))
}

func TestRequestWithRayReusesProxyID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(RayHeader, "upstream-ray")
	id, ok := FromRequest(RequestWithRay(r))
	require.True(t, ok)
	assert.Equal(t, ID("upstream-ray"), id)
}
