package viewbind

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownHelper  = errors.New("unknown helper")
	ErrViewDestroyed  = errors.New("view destroyed")
	ErrNotACollection = errors.New("value is not a collection")
	ErrOutOfRange     = errors.New("index out of range")
)

// ConfigurationError reports a structurally invalid use of a template
// construct. It is raised at template setup time, before any view for the
// offending construct is created, and is never retried.
type ConfigurationError struct {
	Construct string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Construct, e.Reason)
}

// Configurationf returns a ConfigurationError for construct.
func Configurationf(construct string, format string, args ...interface{}) error {
	return &ConfigurationError{
		Construct: construct,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// CapabilityMissingError reports a view that lacks a capability another
// component depends on.
type CapabilityMissingError struct {
	Capability string
	View       string
}

func (e *CapabilityMissingError) Error() string {
	return "view " + e.View + " does not provide " + e.Capability
}

// NotFoundError reports a missing template, view class or data path.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.Name + " was not found."
}
