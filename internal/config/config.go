package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"howett.net/viewbind"

	yaml "gopkg.in/yaml.v2"
)

var _ viewbind.ConfigurationService = &fileConfigurationService{}

type fileConfigurationService struct {
	files []string
}

func (fc *fileConfigurationService) LoadConfiguration() (*viewbind.Configuration, error) {
	var c viewbind.Configuration
	for _, file := range fc.files {
		err := fc.appendFileToConfiguration(&c, file)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", file, err)
		}
	}
	c.Defaults()
	return &c, nil
}

// appendFileToConfiguration expands filename as a template (exposing
// `env`) and decodes the result over c. Later files override earlier ones.
func (fc *fileConfigurationService) appendFileToConfiguration(c *viewbind.Configuration, filename string) error {
	tmpl, err := template.New(filepath.Base(filename)).Funcs(template.FuncMap{
		"env": func(key string) (string, error) {
			return os.Getenv(key), nil
		},
	}).ParseFiles(filename)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	err = tmpl.Execute(buf, c)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(buf.Bytes(), c)
}

func NewFileConfigurationService(files []string) viewbind.ConfigurationService {
	return &fileConfigurationService{
		files: files,
	}
}
