package ixbrl

import (
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// Render serializes the document as inline XBRL XHTML.
func Render(doc *Document) ([]byte, error) {
	out, err := toTree(doc).WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize ixbrl document")
	}
	return out, nil
}

// Write streams the rendered document to w.
func Write(w io.Writer, doc *Document) error {
	if _, err := toTree(doc).WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write ixbrl document")
	}
	return nil
}

func toTree(doc *Document) *etree.Document {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := tree.CreateElement("html")
	for _, ns := range doc.namespaces {
		if ns.Prefix == "" {
			html.CreateAttr("xmlns", ns.URI)
			continue
		}
		html.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
	}

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=UTF-8")
	head.CreateElement("title").SetText(doc.title)

	body := html.CreateElement("body")
	hidden := body.CreateElement("div")
	hidden.CreateAttr("style", "display:none")
	header := hidden.CreateElement("ix:header")

	refs := header.CreateElement("ix:references")
	if doc.schemaRef != "" {
		schemaRef := refs.CreateElement("link:schemaRef")
		schemaRef.CreateAttr("xlink:type", "simple")
		schemaRef.CreateAttr("xlink:href", doc.schemaRef)
	}

	resources := header.CreateElement("ix:resources")
	for _, c := range doc.contexts {
		renderContext(resources, c)
	}
	for _, u := range doc.units {
		unit := resources.CreateElement("xbrli:unit")
		unit.CreateAttr("id", u.ID)
		unit.CreateElement("xbrli:measure").SetText(u.Measure)
	}

	for _, s := range doc.sections {
		renderSection(body, s)
	}

	tree.Indent(2)
	return tree
}

func renderContext(parent *etree.Element, c Context) {
	ctx := parent.CreateElement("xbrli:context")
	ctx.CreateAttr("id", c.ID)

	identifier := ctx.CreateElement("xbrli:entity").CreateElement("xbrli:identifier")
	identifier.CreateAttr("scheme", c.EntityScheme)
	identifier.SetText(c.EntityIdentifier)

	period := ctx.CreateElement("xbrli:period")
	if c.Instant {
		period.CreateElement("xbrli:instant").SetText(formatDate(c.EndDate))
		return
	}
	period.CreateElement("xbrli:startDate").SetText(formatDate(c.StartDate))
	period.CreateElement("xbrli:endDate").SetText(formatDate(c.EndDate))
}

func renderSection(parent *etree.Element, s Section) {
	div := parent.CreateElement("div")
	div.CreateAttr("class", "section")
	div.CreateAttr("id", s.ID)
	if s.Title != "" {
		div.CreateElement("h2").SetText(s.Title)
	}
	if len(s.Facts) == 0 {
		return
	}

	table := div.CreateElement("table")
	for _, f := range s.Facts {
		row := table.CreateElement("tr")
		row.CreateElement("td").SetText(f.Label)
		renderFact(row.CreateElement("td"), f)
	}
}

func renderFact(cell *etree.Element, f Fact) {
	if !f.Numeric {
		el := cell.CreateElement("ix:nonNumeric")
		el.CreateAttr("name", f.Name)
		el.CreateAttr("contextRef", f.ContextRef)
		el.SetText(f.Value)
		return
	}

	el := cell.CreateElement("ix:nonFraction")
	el.CreateAttr("name", f.Name)
	el.CreateAttr("contextRef", f.ContextRef)
	el.CreateAttr("unitRef", f.UnitRef)
	decimals := f.Decimals
	if decimals == "" {
		decimals = "0"
	}
	el.CreateAttr("decimals", decimals)

	value := strings.TrimSpace(f.Value)
	if strings.HasPrefix(value, "-") {
		el.CreateAttr("sign", "-")
		value = strings.TrimPrefix(value, "-")
	}
	if f.Format != "" {
		el.CreateAttr("format", f.Format)
		value = groupThousands(value)
	}
	el.SetText(value)
}

// groupThousands inserts comma separators into the integer part of a plain decimal string.
func groupThousands(value string) string {
	intPart, frac, hasFrac := strings.Cut(value, ".")
	if len(intPart) <= 3 {
		return value
	}

	var sb strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
