package views

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
)

const defaultCacheSize = 128

// Model represents a view model loaded from a set of files. Its
// behavior is documented in the package-level documentation.
type Model struct {
	mu        sync.Mutex
	glob      string
	templates map[string]*stache.Program
	helpers   HelperMap
	classes   map[string]*ViewClass
	compiled  *lru.Cache
	rawPolicy *bluemonday.Policy
	bound     []*View
	logger    logrus.FieldLogger

	nextID uint64
}

// New returns a new Model whose templates are the files matching glob.
// An empty glob yields a model with no file templates.
func New(glob string, options ...ModelOption) (*Model, error) {
	discard := logrus.New()
	discard.Out = io.Discard

	m := &Model{
		glob:      glob,
		templates: make(map[string]*stache.Program),
		helpers:   make(HelperMap),
		classes:   make(map[string]*ViewClass),
		compiled:  lru.New(defaultCacheSize),
		logger:    discard,
	}
	for _, c := range builtinClasses {
		m.classes[c.Name] = c
	}

	for _, opt := range options {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, m.Reload()
}

// Reload re-reads the model's templates from disk and re-renders every
// bound view that has already been rendered.
func (m *Model) Reload() error {
	m.mu.Lock()
	templates := make(map[string]*stache.Program)
	if m.glob != "" {
		files, err := filepath.Glob(m.glob)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				m.mu.Unlock()
				return err
			}
			name := templateName(file)
			prog, err := stache.Parse(name, string(src))
			if err != nil {
				m.mu.Unlock()
				return err
			}
			templates[name] = prog
		}
	}
	m.templates = templates
	bound := append([]*View(nil), m.bound...)
	m.mu.Unlock()

	m.logger.WithField("templates", len(templates)).Info("loaded templates")

	// rerender all bound views against the new templates; this supports
	// the load/bind/reload scenario.
	for _, bv := range bound {
		if bv.state != stateRendered {
			continue
		}
		if err := bv.Rerender(); err != nil {
			return err
		}
	}
	return nil
}

func templateName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Template returns the loaded template named name.
func (m *Model) Template(name string) (*stache.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prog, ok := m.templates[name]
	if !ok {
		return nil, &viewbind.NotFoundError{Kind: "template", Name: name}
	}
	return prog, nil
}

// AddTemplate parses src and registers it under name, replacing any
// template loaded from disk with the same name.
func (m *Model) AddTemplate(name, src string) error {
	prog, err := stache.Parse(name, src)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.templates[name] = prog
	m.mu.Unlock()
	return nil
}

// Compile parses src, reusing the result of an earlier Compile of the
// same source while it remains in the model's cache.
func (m *Model) Compile(name, src string) (*stache.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prog, ok := m.compiled.Get(src); ok {
		return prog.(*stache.Program), nil
	}
	prog, err := stache.Parse(name, src)
	if err != nil {
		return nil, err
	}
	m.compiled.Add(src, prog)
	return prog, nil
}

// ViewClass returns the registered view class named name.
func (m *Model) ViewClass(name string) (*ViewClass, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	class, ok := m.classes[name]
	if !ok {
		return nil, &viewbind.NotFoundError{Kind: "view class", Name: name}
	}
	return class, nil
}

// RegisterViewClass makes class available to templates by its name.
func (m *Model) RegisterViewClass(class *ViewClass) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes[class.Name] = class
}

func (m *Model) helper(name string) (Helper, bool) {
	h, ok := m.helpers[name]
	return h, ok
}

func (m *Model) nextViewID() string {
	return "view" + strconv.FormatUint(atomic.AddUint64(&m.nextID, 1), 10)
}

func (m *Model) newView(class *ViewClass, attrs Attrs) *View {
	v := &View{
		m:     m,
		id:    m.nextViewID(),
		class: class,
		attrs: make(Attrs, len(attrs)),
	}
	for k, val := range attrs {
		switch k {
		case "content":
			v.content = val
		case "context":
			v.context = val
		case "templateData":
			v.templateData, _ = val.(*TemplateData)
		default:
			v.attrs[k] = val
		}
	}
	if class.Collection {
		v.collection = newCollectionView(v)
	}
	return v
}

// Bind combines a template name and a context object into a single,
// durable root view. The root's keyword table binds `view` to the root.
// Bound views are re-rendered when the model reloads.
func (m *Model) Bind(name string, context interface{}) (*View, error) {
	if _, err := m.Template(name); err != nil {
		return nil, err
	}

	root := m.newView(rootViewClass, Attrs{
		"templateName": name,
		"context":      context,
	})
	data := NewTemplateData()
	data.Keywords["view"] = root
	root.templateData = data

	m.mu.Lock()
	m.bound = append(m.bound, root)
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"view":     root.id,
		"template": name,
	}).Debug("view bound")
	return root, nil
}

// Unbind destroys a view returned by Bind.
func (m *Model) Unbind(v *View) {
	m.mu.Lock()
	for i, bv := range m.bound {
		if bv == v {
			m.bound = append(m.bound[:i:i], m.bound[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	v.Destroy()
}

// RenderString compiles src, renders it once against context and
// returns the output. The view is destroyed afterwards.
func (m *Model) RenderString(src string, context interface{}) (string, error) {
	prog, err := m.Compile("inline", src)
	if err != nil {
		return "", err
	}
	root := m.newView(rootViewClass, Attrs{
		"template": prog,
		"context":  context,
	})
	data := NewTemplateData()
	data.Keywords["view"] = root
	root.templateData = data
	defer root.Destroy()

	if err := root.Render(); err != nil {
		return "", err
	}
	return root.HTML(), nil
}
