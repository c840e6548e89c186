package services_test

import (
	"testing"
	"time"

	"github.com/ledgerline/filing-api/libs/go/ixbrl"
	"github.com/ledgerline/filing-api/libs/go/services"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDoc(t *testing.T, input business.AccountsInput) (*ixbrl.Document, business.EntitySize) {
	t.Helper()
	builder := services.NewAccountsDocumentBuilder(nil)
	doc, err := builder.Build(input)
	require.NoError(t, err)
	return doc, builder.EntitySize(input)
}

func TestAccountsValidator_ValidDocuments(t *testing.T) {
	validator := services.NewAccountsValidator()

	for name, input := range map[string]business.AccountsInput{
		"small": smallCompanyAccounts(),
		"micro": microCompanyAccounts(),
	} {
		t.Run(name, func(t *testing.T) {
			doc, size := buildDoc(t, input)
			result := validator.Validate(doc, size)
			assert.True(t, result.IsValid, result.Summary())
			assert.Empty(t, result.Errors)
		})
	}
}

func TestAccountsValidator_MicroWithoutProfitAndLoss(t *testing.T) {
	input := microCompanyAccounts()
	input.ProfitAndLoss = nil

	doc, size := buildDoc(t, input)
	require.Equal(t, business.EntitySizeMicro, size)

	result := services.NewAccountsValidator().Validate(doc, size)
	assert.False(t, result.IsValid)
	assert.True(t, result.HasErrorCode(services.CodePLRequiredAllEntities), result.Summary())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "mandatory for all entities")
}

func TestAccountsValidator_Warnings(t *testing.T) {
	doc, size := buildDoc(t, microCompanyAccounts())
	result := services.NewAccountsValidator().Validate(doc, size)

	assert.True(t, result.IsValid)
	assert.True(t, result.HasWarningCode(services.CodeMissingFramework))
	assert.True(t, result.HasWarningCode(services.CodeMissingAuditExemption))
	assert.True(t, result.HasWarningCode(services.CodeMissingComparativeData))

	doc, size = buildDoc(t, smallCompanyAccounts())
	result = services.NewAccountsValidator().Validate(doc, size)
	assert.Empty(t, result.Warnings)
}

func TestAccountsValidator_StructuralErrors(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	current := ixbrl.Context{ID: ixbrl.ContextCurrentPeriod, EntityScheme: ixbrl.EntityScheme, EntityIdentifier: "01234567", StartDate: end.AddDate(-1, 0, 1), EndDate: end}

	mandatory := func(db *ixbrl.DocumentBuilder) *ixbrl.DocumentBuilder {
		db.Section("document", "Document").
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptCompanyNumber, ContextRef: ixbrl.ContextCurrentPeriod, Value: "01234567"}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptCompanyName, ContextRef: ixbrl.ContextCurrentPeriod, Value: "Example"}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptPeriodStart, ContextRef: ixbrl.ContextCurrentPeriod, Value: "2023-04-01"}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptPeriodEnd, ContextRef: ixbrl.ContextCurrentPeriod, Value: "2024-03-31"}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptAverageEmployees, ContextRef: ixbrl.ContextCurrentPeriod, UnitRef: ixbrl.UnitPure, Value: "3", Numeric: true}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptNetAssets, ContextRef: ixbrl.ContextCurrentPeriod, UnitRef: ixbrl.UnitGBP, Value: "100", Numeric: true}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptTurnover, ContextRef: ixbrl.ContextCurrentPeriod, UnitRef: ixbrl.UnitGBP, Value: "100", Numeric: true}).
			AddFact(ixbrl.Fact{Name: ixbrl.ConceptProfitBeforeTax, ContextRef: ixbrl.ContextCurrentPeriod, UnitRef: ixbrl.UnitGBP, Value: "10", Numeric: true})
		return db
	}
	base := func() *ixbrl.DocumentBuilder {
		db := ixbrl.NewDocumentBuilder("test").WithDefaultNamespaces().SchemaRef(ixbrl.SchemaFRS105).
			AddContext(current).
			AddUnit(ixbrl.Unit{ID: ixbrl.UnitGBP, Measure: "iso4217:GBP"}).
			AddUnit(ixbrl.Unit{ID: ixbrl.UnitPure, Measure: "xbrli:pure"})
		return mandatory(db)
	}

	tests := []struct {
		name string
		doc  func() *ixbrl.Document
		size business.EntitySize
		code string
	}{
		{
			name: "baseline is valid",
			doc:  func() *ixbrl.Document { return base().Build() },
			size: business.EntitySizeMicro,
		},
		{
			name: "dangling context reference",
			doc: func() *ixbrl.Document {
				return base().AddFact(ixbrl.Fact{Name: "core:Debtors", ContextRef: "missing", UnitRef: ixbrl.UnitGBP, Value: "1", Numeric: true}).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeDanglingContextRef,
		},
		{
			name: "dangling unit reference",
			doc: func() *ixbrl.Document {
				return base().AddFact(ixbrl.Fact{Name: "core:Debtors", ContextRef: ixbrl.ContextCurrentPeriod, UnitRef: "USD", Value: "1", Numeric: true}).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeDanglingUnitRef,
		},
		{
			name: "numeric fact without unit",
			doc: func() *ixbrl.Document {
				return base().AddFact(ixbrl.Fact{Name: "core:Debtors", ContextRef: ixbrl.ContextCurrentPeriod, Value: "1", Numeric: true}).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeMissingUnitRef,
		},
		{
			name: "unprefixed tag",
			doc: func() *ixbrl.Document {
				return base().AddFact(ixbrl.Fact{Name: "Debtors", ContextRef: ixbrl.ContextCurrentPeriod, Value: "x"}).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeInvalidTagName,
		},
		{
			name: "unknown taxonomy prefix",
			doc: func() *ixbrl.Document {
				return base().AddFact(ixbrl.Fact{Name: "acme:Widgets", ContextRef: ixbrl.ContextCurrentPeriod, Value: "x"}).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeUnknownTaxonomyPrefix,
		},
		{
			name: "non numeric value",
			doc: func() *ixbrl.Document {
				return base().AddFact(ixbrl.Fact{Name: "core:Debtors", ContextRef: ixbrl.ContextCurrentPeriod, UnitRef: ixbrl.UnitGBP, Value: "lots", Numeric: true}).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeInvalidNumericValue,
		},
		{
			name: "duplicate context id",
			doc:  func() *ixbrl.Document { return base().AddContext(current).Build() },
			size: business.EntitySizeMicro,
			code: services.CodeDuplicateContextID,
		},
		{
			name: "no contexts",
			doc: func() *ixbrl.Document {
				db := ixbrl.NewDocumentBuilder("test").WithDefaultNamespaces().SchemaRef(ixbrl.SchemaFRS105).
					AddUnit(ixbrl.Unit{ID: ixbrl.UnitGBP, Measure: "iso4217:GBP"}).
					AddUnit(ixbrl.Unit{ID: ixbrl.UnitPure, Measure: "xbrli:pure"})
				return mandatory(db).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeNoContexts,
		},
		{
			name: "missing schema reference",
			doc: func() *ixbrl.Document {
				db := ixbrl.NewDocumentBuilder("test").WithDefaultNamespaces().
					AddContext(current).
					AddUnit(ixbrl.Unit{ID: ixbrl.UnitGBP, Measure: "iso4217:GBP"}).
					AddUnit(ixbrl.Unit{ID: ixbrl.UnitPure, Measure: "xbrli:pure"})
				return mandatory(db).Build()
			},
			size: business.EntitySizeMicro,
			code: services.CodeMissingSchemaRef,
		},
		{
			name: "small entity without directors report",
			doc:  func() *ixbrl.Document { return base().Build() },
			size: business.EntitySizeSmall,
			code: services.CodeNarrativeEmpty,
		},
		{
			name: "unknown entity size",
			doc:  func() *ixbrl.Document { return base().Build() },
			size: business.EntitySize("huge"),
			code: services.CodeInvalidEntitySize,
		},
	}

	validator := services.NewAccountsValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate(tt.doc(), tt.size)
			if tt.code == "" {
				assert.True(t, result.IsValid, result.Summary())
				return
			}
			assert.False(t, result.IsValid)
			assert.True(t, result.HasErrorCode(tt.code), result.Summary())
		})
	}
}

func TestAccountsValidator_ReportsEveryDanglingReference(t *testing.T) {
	doc := ixbrl.NewDocumentBuilder("test").WithDefaultNamespaces().
		Section("document", "Document").
		AddFact(ixbrl.Fact{Name: "core:Debtors", ContextRef: "a", UnitRef: ixbrl.UnitGBP, Value: "1", Numeric: true}).
		AddFact(ixbrl.Fact{Name: "core:Cash", ContextRef: "b", UnitRef: ixbrl.UnitGBP, Value: "1", Numeric: true}).
		Build()

	result := services.NewAccountsValidator().Validate(doc, business.EntitySizeMicro)
	count := 0
	for _, issue := range result.Errors {
		if issue.Code == services.CodeDanglingContextRef {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestAccountsValidator_NilDocument(t *testing.T) {
	result := services.NewAccountsValidator().Validate(nil, business.EntitySizeMicro)
	assert.False(t, result.IsValid)
	assert.True(t, result.HasErrorCode(services.CodeDocumentMissing))
}

func TestAccountsValidator_ParsedDocument(t *testing.T) {
	doc, size := buildDoc(t, smallCompanyAccounts())
	rendered, err := ixbrl.Render(doc)
	require.NoError(t, err)

	parsed, err := ixbrl.ParseBytes(rendered)
	require.NoError(t, err)

	result := services.NewAccountsValidator().Validate(parsed, size)
	assert.True(t, result.IsValid, result.Summary())
}
