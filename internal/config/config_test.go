package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
	return file
}

func TestLoadConfiguration(t *testing.T) {
	t.Setenv("VIEWBIND_DATA", "/srv/data.yml")
	dir := t.TempDir()
	base := writeFile(t, dir, "config.yml", `
templates:
  glob: views/*.hbs
data:
  path: {{ env "VIEWBIND_DATA" }}
logging:
  level: debug
`)
	override := writeFile(t, dir, "config.prod.yml", `
web:
  bind: ":9000"
  proxied: true
logging:
  format: json
`)

	c, err := NewFileConfigurationService([]string{base, override}).LoadConfiguration()
	require.NoError(t, err)
	assert.Equal(t, "views/*.hbs", c.Templates.Glob)
	assert.Equal(t, 128, c.Templates.CacheSize)
	assert.Equal(t, "/srv/data.yml", c.Data.Path)
	assert.Equal(t, ":9000", c.Web.Bind)
	assert.True(t, c.Web.Proxied)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, logrus.DebugLevel, c.Logging.Level.LogrusLevel())
}

func TestLoadConfigurationDefaults(t *testing.T) {
	c, err := NewFileConfigurationService(nil).LoadConfiguration()
	require.NoError(t, err)
	assert.Equal(t, "templates/*.hbs", c.Templates.Glob)
	assert.Equal(t, ":8080", c.Web.Bind)
	assert.Equal(t, logrus.InfoLevel, c.Logging.Level.LogrusLevel())
}

func TestLoadConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yml", "logging:\n  level: loud\n")
	_, err := NewFileConfigurationService([]string{bad}).LoadConfiguration()
	assert.Error(t, err)

	_, err = NewFileConfigurationService([]string{filepath.Join(dir, "missing.yml")}).LoadConfiguration()
	assert.Error(t, err)
}
