package ixbrl_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/ledgerline/filing-api/libs/go/ixbrl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBuilder() *ixbrl.DocumentBuilder {
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	return ixbrl.NewDocumentBuilder("Widgets Ltd accounts").
		WithDefaultNamespaces().
		SchemaRef(ixbrl.SchemaFRS102).
		AddContext(ixbrl.Context{ID: ixbrl.ContextCurrentPeriod, EntityScheme: ixbrl.EntityScheme, EntityIdentifier: "01234567", StartDate: start, EndDate: end}).
		AddContext(ixbrl.Context{ID: ixbrl.ContextCurrentInstant, EntityScheme: ixbrl.EntityScheme, EntityIdentifier: "01234567", Instant: true, EndDate: end}).
		AddUnit(ixbrl.Unit{ID: ixbrl.UnitGBP, Measure: "iso4217:GBP"}).
		Section("company", "Company information").
		AddFact(ixbrl.Fact{Name: ixbrl.ConceptCompanyName, ContextRef: ixbrl.ContextCurrentPeriod, Value: "Widgets & Sons Ltd", Label: "Name"}).
		Section("balance-sheet", "Balance sheet").
		AddFact(ixbrl.Fact{Name: ixbrl.ConceptFixedAssets, ContextRef: ixbrl.ContextCurrentInstant, UnitRef: ixbrl.UnitGBP, Value: "1234567", Numeric: true, Decimals: "0", Format: ixbrl.FormatNumDotDecimal, Label: "Fixed assets"}).
		AddFact(ixbrl.Fact{Name: ixbrl.ConceptNetAssets, ContextRef: ixbrl.ContextCurrentInstant, UnitRef: ixbrl.UnitGBP, Value: "-2500", Numeric: true, Decimals: "0", Format: ixbrl.FormatNumDotDecimal, Label: "Net liabilities"})
}

func TestDocumentBuilder_BuildIsSnapshot(t *testing.T) {
	b := sampleBuilder()
	doc := b.Build()

	b.Section("balance-sheet", "").AddFact(ixbrl.Fact{Name: ixbrl.ConceptDebtors, ContextRef: ixbrl.ContextCurrentInstant})
	b.AddContext(ixbrl.Context{ID: "extra"})

	assert.Len(t, doc.Facts(), 3)
	assert.Len(t, doc.Contexts(), 2)
	assert.Len(t, b.Build().Facts(), 4)

	facts := doc.Facts()
	facts[0].Value = "mutated"
	assert.Equal(t, "Widgets & Sons Ltd", doc.Facts()[0].Value)
}

func TestDocumentBuilder_SectionReopen(t *testing.T) {
	doc := ixbrl.NewDocumentBuilder("").
		Section("a", "A").
		AddFact(ixbrl.Fact{Name: "core:One"}).
		Section("b", "B").
		AddFact(ixbrl.Fact{Name: "core:Two"}).
		Section("a", "ignored").
		AddFact(ixbrl.Fact{Name: "core:Three"}).
		Build()

	sections := doc.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "A", sections[0].Title)
	assert.Len(t, sections[0].Facts, 2)
	assert.Len(t, sections[1].Facts, 1)
}

func TestDocumentBuilder_FactWithoutSection(t *testing.T) {
	var b ixbrl.DocumentBuilder
	doc := b.AddFact(ixbrl.Fact{Name: "core:One"}).Build()

	section, ok := doc.Section("document")
	require.True(t, ok)
	assert.Len(t, section.Facts, 1)
}

func TestDocument_Lookups(t *testing.T) {
	doc := sampleBuilder().Build()

	_, ok := doc.Context(ixbrl.ContextCurrentInstant)
	assert.True(t, ok)
	_, ok = doc.Context(ixbrl.ContextPriorInstant)
	assert.False(t, ok)

	_, ok = doc.Unit(ixbrl.UnitGBP)
	assert.True(t, ok)

	uri, ok := doc.NamespaceURI("core")
	assert.True(t, ok)
	assert.Equal(t, ixbrl.NamespaceCore, uri)
	assert.True(t, doc.DeclaresNamespace(ixbrl.NamespaceIX))

	assert.True(t, doc.HasFact(ixbrl.ConceptFixedAssets))
	assert.False(t, doc.HasFact(ixbrl.ConceptDebtors))
	assert.Equal(t, "core", doc.FactsNamed(ixbrl.ConceptFixedAssets)[0].Prefix())
}

func TestRender_ProducesInlineXBRL(t *testing.T) {
	out, err := ixbrl.Render(sampleBuilder().Build())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"`)
	assert.Contains(t, html, `xlink:href="`+ixbrl.SchemaFRS102+`"`)
	assert.Contains(t, html, `<xbrli:context id="current-instant">`)
	assert.Contains(t, html, `<xbrli:instant>2024-03-31</xbrli:instant>`)
	assert.Contains(t, html, `<xbrli:startDate>2023-04-01</xbrli:startDate>`)
	assert.Contains(t, html, `>1,234,567</ix:nonFraction>`)
	assert.Contains(t, html, `sign="-"`)
	assert.Contains(t, html, `Widgets &amp; Sons Ltd`)
}

func TestRenderParse_RoundTrip(t *testing.T) {
	original := sampleBuilder().Build()

	var buf bytes.Buffer
	require.NoError(t, ixbrl.Write(&buf, original))

	parsed, err := ixbrl.Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Title(), parsed.Title())
	assert.Equal(t, original.SchemaRef(), parsed.SchemaRef())
	assert.ElementsMatch(t, original.Namespaces(), parsed.Namespaces())
	assert.Equal(t, original.Contexts(), parsed.Contexts())
	assert.Equal(t, original.Units(), parsed.Units())
	assert.Equal(t, original.Sections(), parsed.Sections())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed xml", input: `<html><body></html>`},
		{name: "empty input", input: ``},
		{name: "wrong root", input: `<root/>`},
		{
			name: "context without period",
			input: `<html xmlns:xbrli="http://www.xbrl.org/2003/instance"><body>` +
				`<xbrli:context id="c1"><xbrli:entity/></xbrli:context></body></html>`,
		},
		{
			name: "bad instant",
			input: `<html xmlns:xbrli="http://www.xbrl.org/2003/instance"><body>` +
				`<xbrli:context id="c1"><xbrli:period><xbrli:instant>31/03/2024</xbrli:instant></xbrli:period></xbrli:context></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ixbrl.ParseBytes([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
