// Package ixbrl models inline XBRL accounts documents: contexts, units and
// tagged facts grouped into display sections. Documents are immutable once
// built; use DocumentBuilder to assemble one.
package ixbrl

import (
	"strings"
	"time"
)

// Namespace is a prefix declaration on the document root. The empty prefix
// is the default namespace.
type Namespace struct {
	Prefix string
	URI    string
}

// Context binds facts to an entity and either a duration or an instant.
type Context struct {
	ID               string
	EntityScheme     string
	EntityIdentifier string
	Instant          bool
	StartDate        time.Time
	EndDate          time.Time
}

// Unit is a measure referenced by numeric facts.
type Unit struct {
	ID      string
	Measure string
}

// Fact is a single tagged value.
type Fact struct {
	Name       string
	ContextRef string
	UnitRef    string
	Value      string
	Numeric    bool
	Decimals   string
	Format     string
	Label      string
}

// Prefix returns the taxonomy prefix of the fact name, or "" when the name has none.
func (f Fact) Prefix() string {
	prefix, _, found := strings.Cut(f.Name, ":")
	if !found {
		return ""
	}
	return prefix
}

// Section is a titled group of facts rendered together.
type Section struct {
	ID    string
	Title string
	Facts []Fact
}

// Document is a finished inline XBRL document. The zero value is empty.
type Document struct {
	title      string
	namespaces []Namespace
	schemaRef  string
	contexts   []Context
	units      []Unit
	sections   []Section
}

func (d *Document) Title() string { return d.title }

func (d *Document) SchemaRef() string { return d.schemaRef }

// Namespaces returns a copy of the declared namespaces in declaration order.
func (d *Document) Namespaces() []Namespace {
	return append([]Namespace(nil), d.namespaces...)
}

// Contexts returns a copy of the contexts in declaration order.
func (d *Document) Contexts() []Context {
	return append([]Context(nil), d.contexts...)
}

// Units returns a copy of the units in declaration order.
func (d *Document) Units() []Unit {
	return append([]Unit(nil), d.units...)
}

// Sections returns a deep copy of the sections.
func (d *Document) Sections() []Section {
	out := make([]Section, len(d.sections))
	for i, s := range d.sections {
		out[i] = Section{ID: s.ID, Title: s.Title, Facts: append([]Fact(nil), s.Facts...)}
	}
	return out
}

// Facts returns every fact in document order.
func (d *Document) Facts() []Fact {
	var out []Fact
	for _, s := range d.sections {
		out = append(out, s.Facts...)
	}
	return out
}

// Section looks up a section by id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.sections {
		if s.ID == id {
			return Section{ID: s.ID, Title: s.Title, Facts: append([]Fact(nil), s.Facts...)}, true
		}
	}
	return Section{}, false
}

// Context looks up a context by id.
func (d *Document) Context(id string) (Context, bool) {
	for _, c := range d.contexts {
		if c.ID == id {
			return c, true
		}
	}
	return Context{}, false
}

// Unit looks up a unit by id.
func (d *Document) Unit(id string) (Unit, bool) {
	for _, u := range d.units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// FactsNamed returns every fact carrying the given concept name.
func (d *Document) FactsNamed(name string) []Fact {
	var out []Fact
	for _, s := range d.sections {
		for _, f := range s.Facts {
			if f.Name == name {
				out = append(out, f)
			}
		}
	}
	return out
}

// HasFact reports whether at least one fact with the given name has a non-blank value.
func (d *Document) HasFact(name string) bool {
	for _, f := range d.FactsNamed(name) {
		if strings.TrimSpace(f.Value) != "" {
			return true
		}
	}
	return false
}

// NamespaceURI returns the URI bound to prefix.
func (d *Document) NamespaceURI(prefix string) (string, bool) {
	for _, ns := range d.namespaces {
		if ns.Prefix == prefix {
			return ns.URI, true
		}
	}
	return "", false
}

// DeclaresNamespace reports whether uri is bound to any prefix.
func (d *Document) DeclaresNamespace(uri string) bool {
	for _, ns := range d.namespaces {
		if ns.URI == uri {
			return true
		}
	}
	return false
}
