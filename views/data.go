package views

// TemplateData is the rendering context a view hands to its template
// beyond the context object itself: a table of keywords (named values
// such as `view` or a for-each item) and free-form data attributes.
//
// Child views share their parent's TemplateData until a scope boundary
// needs its own keywords. At that point the boundary copies it with Copy
// and installs a fresh keyword table; nothing ever adds keywords to a
// table it did not create.
type TemplateData struct {
	Keywords map[string]interface{}
	Attrs    map[string]interface{}
}

func NewTemplateData() *TemplateData {
	return &TemplateData{
		Keywords: make(map[string]interface{}),
		Attrs:    make(map[string]interface{}),
	}
}

// Copy returns a TemplateData with a copied attributes container. The
// keyword table is shared with d.
func (d *TemplateData) Copy() *TemplateData {
	n := &TemplateData{
		Keywords: d.Keywords,
		Attrs:    make(map[string]interface{}, len(d.Attrs)),
	}
	for k, v := range d.Attrs {
		n.Attrs[k] = v
	}
	return n
}

// Keyword returns the value bound to name.
func (d *TemplateData) Keyword(name string) (interface{}, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.Keywords[name]
	return v, ok
}

func copyKeywords(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src)+2)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ScopedTemplateData returns the per-scope context for a child: a copy
// of parent (or an empty context), carrying keywords with name bound to
// value. keywords must be a table the caller owns.
func ScopedTemplateData(parent *TemplateData, keywords map[string]interface{}, name string, value interface{}) *TemplateData {
	var d *TemplateData
	if parent != nil {
		d = parent.Copy()
	} else {
		d = NewTemplateData()
	}
	d.Keywords = keywords
	d.Keywords[name] = value
	return d
}
