package ixbrl

import (
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// Parse reads an inline XBRL XHTML document. Facts outside any section
// div are collected into a "document" section.
func Parse(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "failed to parse ixbrl document")
	}
	return fromTree(tree)
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, "failed to parse ixbrl document")
	}
	return fromTree(tree)
}

func fromTree(tree *etree.Document) (*Document, error) {
	root := tree.Root()
	if root == nil {
		return nil, errors.New("ixbrl document has no root element")
	}
	if root.Tag != "html" {
		return nil, errors.Errorf("unexpected root element %q", root.FullTag())
	}

	b := NewDocumentBuilder("")
	for _, attr := range root.Attr {
		switch {
		case attr.Space == "" && attr.Key == "xmlns":
			b.DeclareNamespace("", attr.Value)
		case attr.Space == "xmlns":
			b.DeclareNamespace(attr.Key, attr.Value)
		}
	}
	if title := root.FindElement("./head/title"); title != nil {
		b.title = strings.TrimSpace(title.Text())
	}

	p := &parser{builder: b}
	if err := p.walk(root); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

type parser struct {
	builder *DocumentBuilder
}

func (p *parser) walk(el *etree.Element) error {
	switch {
	case el.Tag == "div" && hasClass(el, "section"):
		title := ""
		if h := el.SelectElement("h2"); h != nil {
			title = strings.TrimSpace(h.Text())
		}
		p.builder.Section(el.SelectAttrValue("id", ""), title)
	case isIX(el, "schemaRef", NamespaceLink, "link"):
		p.builder.SchemaRef(el.SelectAttrValue("xlink:href", ""))
		return nil
	case isIX(el, "context", NamespaceXBRLI, "xbrli"):
		c, err := parseContext(el)
		if err != nil {
			return err
		}
		p.builder.AddContext(c)
		return nil
	case isIX(el, "unit", NamespaceXBRLI, "xbrli"):
		u := Unit{ID: el.SelectAttrValue("id", "")}
		if m := firstChild(el, "measure"); m != nil {
			u.Measure = strings.TrimSpace(m.Text())
		}
		p.builder.AddUnit(u)
		return nil
	case isIX(el, "nonFraction", NamespaceIX, "ix"):
		p.builder.AddFact(parseNonFraction(el))
		return nil
	case isIX(el, "nonNumeric", NamespaceIX, "ix"):
		p.builder.AddFact(Fact{
			Name:       el.SelectAttrValue("name", ""),
			ContextRef: el.SelectAttrValue("contextRef", ""),
			Value:      strings.TrimSpace(innerText(el)),
			Label:      rowLabel(el),
		})
		return nil
	}

	for _, child := range el.ChildElements() {
		if err := p.walk(child); err != nil {
			return err
		}
	}
	return nil
}

func parseNonFraction(el *etree.Element) Fact {
	value := strings.ReplaceAll(strings.TrimSpace(innerText(el)), ",", "")
	if el.SelectAttrValue("sign", "") == "-" {
		value = "-" + value
	}
	return Fact{
		Name:       el.SelectAttrValue("name", ""),
		ContextRef: el.SelectAttrValue("contextRef", ""),
		UnitRef:    el.SelectAttrValue("unitRef", ""),
		Value:      value,
		Numeric:    true,
		Decimals:   el.SelectAttrValue("decimals", ""),
		Format:     el.SelectAttrValue("format", ""),
		Label:      rowLabel(el),
	}
}

func parseContext(el *etree.Element) (Context, error) {
	c := Context{ID: el.SelectAttrValue("id", "")}
	if entity := firstChild(el, "entity"); entity != nil {
		if ident := firstChild(entity, "identifier"); ident != nil {
			c.EntityScheme = ident.SelectAttrValue("scheme", "")
			c.EntityIdentifier = strings.TrimSpace(ident.Text())
		}
	}

	period := firstChild(el, "period")
	if period == nil {
		return c, errors.Errorf("context %q has no period", c.ID)
	}

	var err error
	if instant := firstChild(period, "instant"); instant != nil {
		c.Instant = true
		c.EndDate, err = time.Parse(dateLayout, strings.TrimSpace(instant.Text()))
		return c, errors.Wrapf(err, "context %q has an invalid instant", c.ID)
	}
	if start := firstChild(period, "startDate"); start != nil {
		if c.StartDate, err = time.Parse(dateLayout, strings.TrimSpace(start.Text())); err != nil {
			return c, errors.Wrapf(err, "context %q has an invalid start date", c.ID)
		}
	}
	if end := firstChild(period, "endDate"); end != nil {
		if c.EndDate, err = time.Parse(dateLayout, strings.TrimSpace(end.Text())); err != nil {
			return c, errors.Wrapf(err, "context %q has an invalid end date", c.ID)
		}
	}
	return c, nil
}

// isIX matches an element by local name and namespace, falling back to the
// conventional prefix when the namespace cannot be resolved.
func isIX(el *etree.Element, tag, uri, prefix string) bool {
	if el.Tag != tag {
		return false
	}
	if ns := el.NamespaceURI(); ns != "" {
		return ns == uri
	}
	return el.Space == prefix
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func hasClass(el *etree.Element, class string) bool {
	for _, c := range strings.Fields(el.SelectAttrValue("class", "")) {
		if c == class {
			return true
		}
	}
	return false
}

func innerText(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(innerText(t))
		}
	}
	return sb.String()
}

// rowLabel returns the text of the first cell in the table row holding el.
func rowLabel(el *etree.Element) string {
	cell := el.Parent()
	if cell == nil || cell.Tag != "td" {
		return ""
	}
	row := cell.Parent()
	if row == nil || row.Tag != "tr" {
		return ""
	}
	first := row.SelectElement("td")
	if first == nil || first == cell {
		return ""
	}
	return strings.TrimSpace(first.Text())
}
