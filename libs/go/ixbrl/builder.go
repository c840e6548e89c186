package ixbrl

// DocumentBuilder accumulates the parts of a document. Build copies
// everything gathered so far, so later calls on the builder never reach a
// document already returned.
type DocumentBuilder struct {
	title      string
	namespaces []Namespace
	schemaRef  string
	contexts   []Context
	units      []Unit
	sections   []Section
	current    int
}

// NewDocumentBuilder returns a builder with no namespaces declared.
func NewDocumentBuilder(title string) *DocumentBuilder {
	return &DocumentBuilder{title: title, current: -1}
}

// WithDefaultNamespaces declares DefaultNamespaces.
func (b *DocumentBuilder) WithDefaultNamespaces() *DocumentBuilder {
	for _, ns := range DefaultNamespaces {
		b.DeclareNamespace(ns.Prefix, ns.URI)
	}
	return b
}

// DeclareNamespace binds prefix to uri, replacing an earlier binding of the same prefix.
func (b *DocumentBuilder) DeclareNamespace(prefix, uri string) *DocumentBuilder {
	for i, ns := range b.namespaces {
		if ns.Prefix == prefix {
			b.namespaces[i].URI = uri
			return b
		}
	}
	b.namespaces = append(b.namespaces, Namespace{Prefix: prefix, URI: uri})
	return b
}

// SchemaRef sets the taxonomy entry point the document references.
func (b *DocumentBuilder) SchemaRef(href string) *DocumentBuilder {
	b.schemaRef = href
	return b
}

// AddContext registers a context that facts refer to by id.
func (b *DocumentBuilder) AddContext(c Context) *DocumentBuilder {
	b.contexts = append(b.contexts, c)
	return b
}

// AddUnit registers a unit that numeric facts refer to by id.
func (b *DocumentBuilder) AddUnit(u Unit) *DocumentBuilder {
	b.units = append(b.units, u)
	return b
}

// Section opens a section, or reopens it when the id already exists.
// Facts added afterwards land in that section.
func (b *DocumentBuilder) Section(id, title string) *DocumentBuilder {
	for i, s := range b.sections {
		if s.ID == id {
			b.current = i
			return b
		}
	}
	b.sections = append(b.sections, Section{ID: id, Title: title})
	b.current = len(b.sections) - 1
	return b
}

// AddFact appends a fact to the current section, opening an untitled
// "document" section when none is open.
func (b *DocumentBuilder) AddFact(f Fact) *DocumentBuilder {
	if b.current < 0 || b.current >= len(b.sections) {
		b.Section("document", "")
	}
	b.sections[b.current].Facts = append(b.sections[b.current].Facts, f)
	return b
}

// Build returns an immutable snapshot of the accumulated parts.
func (b *DocumentBuilder) Build() *Document {
	return NewDocument(b.title, b.namespaces, b.schemaRef, b.contexts, b.units, b.sections)
}

// NewDocument copies the given parts into a new document.
func NewDocument(title string, namespaces []Namespace, schemaRef string, contexts []Context, units []Unit, sections []Section) *Document {
	d := &Document{
		title:      title,
		namespaces: append([]Namespace(nil), namespaces...),
		schemaRef:  schemaRef,
		contexts:   append([]Context(nil), contexts...),
		units:      append([]Unit(nil), units...),
		sections:   make([]Section, len(sections)),
	}
	for i, s := range sections {
		d.sections[i] = Section{ID: s.ID, Title: s.Title, Facts: append([]Fact(nil), s.Facts...)}
	}
	return d
}
