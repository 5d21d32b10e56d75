package viewbind

import (
	"github.com/sirupsen/logrus"
)

type LogLevel struct {
	l *logrus.Level
}

func (l *LogLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	lev, err := logrus.ParseLevel(s)
	if err != nil {
		return err
	}
	l.l = &lev
	return nil
}

func (l *LogLevel) LogrusLevel() logrus.Level {
	if l.l == nil {
		return logrus.InfoLevel
	}
	return *l.l
}

type Configuration struct {
	Templates struct {
		Glob      string
		CacheSize int `yaml:"cache_size"`
	}

	Data struct {
		Path string
	}

	Web struct {
		Bind    string
		Proxied bool
	}

	Logging struct {
		Format string
		Level  LogLevel
	}
}

// Defaults fills in every unset field with its default value.
func (c *Configuration) Defaults() {
	if c.Templates.Glob == "" {
		c.Templates.Glob = "templates/*.hbs"
	}
	if c.Templates.CacheSize <= 0 {
		c.Templates.CacheSize = 128
	}
	if c.Web.Bind == "" {
		c.Web.Bind = ":8080"
	}
}

type ConfigurationService interface {
	LoadConfiguration() (*Configuration, error)
}
