package views

import (
	"github.com/golang/groupcache/lru"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
)

// ModelOption represents a functional option for configuring a View
// Model.
type ModelOption func(*Model) error

// HelpersOption registers the helpers yielded by the supplied provider.
// Later providers override earlier ones.
func HelpersOption(provider HelperProvider) ModelOption {
	return func(m *Model) error {
		for name, h := range provider.ViewHelpers() {
			m.helpers[name] = h
		}
		return nil
	}
}

// ViewClassesOption registers view classes by name, for use as
// `itemViewClass=Name` and the like.
func ViewClassesOption(classes ...*ViewClass) ModelOption {
	return func(m *Model) error {
		for _, c := range classes {
			m.classes[c.Name] = c
		}
		return nil
	}
}

// CacheSizeOption bounds the number of compiled template sources the
// model keeps.
func CacheSizeOption(entries int) ModelOption {
	return func(m *Model) error {
		m.compiled = lru.New(entries)
		return nil
	}
}

// SanitizeRawOption filters every triple-stash value through policy.
func SanitizeRawOption(policy *bluemonday.Policy) ModelOption {
	return func(m *Model) error {
		m.rawPolicy = policy
		return nil
	}
}

// FieldLoggingOption enables logging to a logrus-enabled stream.
func FieldLoggingOption(logger logrus.FieldLogger) ModelOption {
	return func(m *Model) error {
		m.logger = logger
		return nil
	}
}
