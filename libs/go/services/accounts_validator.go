package services

import (
	"regexp"
	"strings"

	"github.com/ledgerline/filing-api/libs/go/ixbrl"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation issue codes.
const (
	CodeDocumentMissing        = "DOCUMENT_MISSING"
	CodeMalformedDocument      = "MALFORMED_DOCUMENT"
	CodeNoContexts             = "NO_CONTEXTS"
	CodeDuplicateContextID     = "DUPLICATE_CONTEXT_ID"
	CodeDuplicateUnitID        = "DUPLICATE_UNIT_ID"
	CodeInvalidContextPeriod   = "INVALID_CONTEXT_PERIOD"
	CodeMissingNamespace       = "MISSING_NAMESPACE"
	CodeMissingSchemaRef       = "MISSING_SCHEMA_REF"
	CodeMissingMandatoryFact   = "MISSING_MANDATORY_FACT"
	CodeMissingNarrativeFact   = "MISSING_NARRATIVE_FACT"
	CodeDanglingContextRef     = "DANGLING_CONTEXT_REF"
	CodeMissingUnitRef         = "MISSING_UNIT_REF"
	CodeDanglingUnitRef        = "DANGLING_UNIT_REF"
	CodeInvalidTagName         = "INVALID_TAG_NAME"
	CodeUnknownTaxonomyPrefix  = "UNKNOWN_TAXONOMY_PREFIX"
	CodeInvalidNumericValue    = "INVALID_NUMERIC_VALUE"
	CodeInvalidEntitySize      = "INVALID_ENTITY_SIZE"
	CodePLRequiredAllEntities  = "PL_REQUIRED_ALL_ENTITIES"
	CodeNarrativeEmpty         = "NARRATIVE_EMPTY"
	CodeMissingFramework       = "MISSING_FRAMEWORK_DECLARATION"
	CodeMissingAuditExemption  = "MISSING_AUDIT_EXEMPTION_STATEMENT"
	CodeMissingComparativeData = "MISSING_COMPARATIVE_FIGURES"
)

var tagNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*:[A-Za-z_][A-Za-z0-9_.\-]*$`)

var requiredNamespaces = []struct {
	prefix string
	uri    string
}{
	{"ix", ixbrl.NamespaceIX},
	{"xbrli", ixbrl.NamespaceXBRLI},
	{"link", ixbrl.NamespaceLink},
	{"xlink", ixbrl.NamespaceXLink},
	{"iso4217", ixbrl.NamespaceISO4217},
	{"core", ixbrl.NamespaceCore},
	{"bus", ixbrl.NamespaceBus},
}

// MandatoryFactsAllEntities must be present whatever the entity size.
var MandatoryFactsAllEntities = []string{
	ixbrl.ConceptCompanyNumber,
	ixbrl.ConceptCompanyName,
	ixbrl.ConceptPeriodStart,
	ixbrl.ConceptPeriodEnd,
	ixbrl.ConceptAverageEmployees,
	ixbrl.ConceptNetAssets,
}

// MandatoryNarrativeFacts make up the directors' report for small, medium
// and large entities.
var MandatoryNarrativeFacts = []string{
	ixbrl.ConceptPrincipalActivities,
	ixbrl.ConceptDirectorName,
	ixbrl.ConceptApprovalDate,
	ixbrl.ConceptSignatory,
}

// ProfitAndLossFacts must be filed by every entity, micro included.
var ProfitAndLossFacts = []string{
	ixbrl.ConceptTurnover,
	ixbrl.ConceptProfitBeforeTax,
}

// AccountsValidator runs structural and filing-rule checks over a built document.
type AccountsValidator struct {
	logger *zap.Logger
}

// NewAccountsValidator creates a new accounts validator
func NewAccountsValidator() *AccountsValidator {
	return &AccountsValidator{logger: logger.L()}
}

// Validate never fails; every problem is reported in the result. Checks run
// in a fixed order: well-formedness, namespaces and schema, mandatory facts,
// reference resolution, tag syntax, then size-specific rules.
func (v *AccountsValidator) Validate(doc *ixbrl.Document, size business.EntitySize) *business.ValidationResult {
	result := business.NewValidationResult()
	if doc == nil {
		result.AddError(CodeDocumentMissing, "", "no document supplied")
		return result
	}
	if !size.IsValid() {
		result.AddError(CodeInvalidEntitySize, "entity_size", "unknown entity size %q", size)
	}

	v.checkWellFormed(doc, result)
	v.checkNamespaces(doc, size, result)
	v.checkMandatoryFacts(doc, size, result)
	v.checkReferences(doc, result)
	v.checkTagNames(doc, result)
	v.checkSizeRules(doc, size, result)
	v.checkWarnings(doc, size, result)

	v.logger.Debug("Validated accounts document",
		zap.String("entity_size", string(size)),
		zap.Bool("is_valid", result.IsValid),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))
	return result
}

func (v *AccountsValidator) checkWellFormed(doc *ixbrl.Document, result *business.ValidationResult) {
	rendered, err := ixbrl.Render(doc)
	if err == nil {
		_, err = ixbrl.ParseBytes(rendered)
	}
	if err != nil {
		result.AddError(CodeMalformedDocument, "", "document is not well-formed: %v", err)
	}

	contexts := doc.Contexts()
	if len(contexts) == 0 {
		result.AddError(CodeNoContexts, "", "document defines no contexts")
	}
	seen := make(map[string]bool, len(contexts))
	for _, c := range contexts {
		if seen[c.ID] {
			result.AddError(CodeDuplicateContextID, c.ID, "context id %q is defined more than once", c.ID)
		}
		seen[c.ID] = true
		if !c.Instant && !c.EndDate.After(c.StartDate) {
			result.AddError(CodeInvalidContextPeriod, c.ID, "context %q ends on or before it starts", c.ID)
		}
	}

	units := make(map[string]bool)
	for _, u := range doc.Units() {
		if units[u.ID] {
			result.AddError(CodeDuplicateUnitID, u.ID, "unit id %q is defined more than once", u.ID)
		}
		units[u.ID] = true
	}
}

func (v *AccountsValidator) checkNamespaces(doc *ixbrl.Document, size business.EntitySize, result *business.ValidationResult) {
	for _, ns := range requiredNamespaces {
		if !doc.DeclaresNamespace(ns.uri) {
			result.AddError(CodeMissingNamespace, ns.prefix, "namespace %s (%s) is not declared", ns.prefix, ns.uri)
		}
	}
	if size.RequiresDirectorsReport() && !doc.DeclaresNamespace(ixbrl.NamespaceDirep) {
		result.AddError(CodeMissingNamespace, "direp", "namespace direp (%s) is not declared", ixbrl.NamespaceDirep)
	}
	if strings.TrimSpace(doc.SchemaRef()) == "" {
		result.AddError(CodeMissingSchemaRef, "", "document has no taxonomy schema reference")
	}
}

func (v *AccountsValidator) checkMandatoryFacts(doc *ixbrl.Document, size business.EntitySize, result *business.ValidationResult) {
	for _, name := range MandatoryFactsAllEntities {
		if !doc.HasFact(name) {
			result.AddError(CodeMissingMandatoryFact, name, "mandatory fact %s is missing", name)
		}
	}
	if !size.RequiresDirectorsReport() {
		return
	}
	for _, name := range MandatoryNarrativeFacts {
		if len(doc.FactsNamed(name)) == 0 {
			result.AddError(CodeMissingNarrativeFact, name, "%s entities must report %s", size, name)
		}
	}
}

func (v *AccountsValidator) checkReferences(doc *ixbrl.Document, result *business.ValidationResult) {
	for _, f := range doc.Facts() {
		if _, ok := doc.Context(f.ContextRef); !ok {
			result.AddError(CodeDanglingContextRef, f.Name, "fact %s references undefined context %q", f.Name, f.ContextRef)
		}
		if !f.Numeric {
			continue
		}
		if f.UnitRef == "" {
			result.AddError(CodeMissingUnitRef, f.Name, "numeric fact %s has no unit", f.Name)
			continue
		}
		if _, ok := doc.Unit(f.UnitRef); !ok {
			result.AddError(CodeDanglingUnitRef, f.Name, "fact %s references undefined unit %q", f.Name, f.UnitRef)
		}
	}
}

func (v *AccountsValidator) checkTagNames(doc *ixbrl.Document, result *business.ValidationResult) {
	for _, f := range doc.Facts() {
		if !tagNamePattern.MatchString(f.Name) {
			result.AddError(CodeInvalidTagName, f.Name, "fact name %q is not a valid prefixed name", f.Name)
			continue
		}
		if _, ok := ixbrl.TaxonomyPrefixes[f.Prefix()]; !ok {
			result.AddError(CodeUnknownTaxonomyPrefix, f.Name, "fact %s uses unknown taxonomy prefix %q", f.Name, f.Prefix())
		}
		if f.Numeric {
			if _, err := decimal.NewFromString(f.Value); err != nil {
				result.AddError(CodeInvalidNumericValue, f.Name, "fact %s has non-numeric value %q", f.Name, f.Value)
			}
		}
	}
}

func (v *AccountsValidator) checkSizeRules(doc *ixbrl.Document, size business.EntitySize, result *business.ValidationResult) {
	var missingPL []string
	for _, name := range ProfitAndLossFacts {
		if !doc.HasFact(name) {
			missingPL = append(missingPL, name)
		}
	}
	if len(missingPL) > 0 {
		result.AddError(CodePLRequiredAllEntities, strings.Join(missingPL, ","),
			"profit and loss account is mandatory for all entities, including %s entities; missing %s",
			size, strings.Join(missingPL, ", "))
	}

	if !size.RequiresDirectorsReport() {
		return
	}
	section, ok := doc.Section(SectionDirectorsReport)
	if !ok || len(section.Facts) == 0 || !doc.HasFact(ixbrl.ConceptPrincipalActivities) || !doc.HasFact(ixbrl.ConceptDirectorName) {
		result.AddError(CodeNarrativeEmpty, SectionDirectorsReport,
			"%s entities must include a directors' report with principal activities and at least one director", size)
	}
}

func (v *AccountsValidator) checkWarnings(doc *ixbrl.Document, size business.EntitySize, result *business.ValidationResult) {
	if !doc.HasFact(ixbrl.ConceptAccountingStandards) {
		result.AddWarning(CodeMissingFramework, ixbrl.ConceptAccountingStandards, "no accounting framework is declared")
	}
	if (size == business.EntitySizeSmall || size == business.EntitySizeMicro) && !doc.HasFact(ixbrl.ConceptAuditExemption) {
		result.AddWarning(CodeMissingAuditExemption, ixbrl.ConceptAuditExemption,
			"%s entity does not state its entitlement to audit exemption", size)
	}

	hasPrior := false
	for _, f := range doc.Facts() {
		if f.ContextRef == ixbrl.ContextPriorInstant || f.ContextRef == ixbrl.ContextPriorPeriod {
			hasPrior = true
			break
		}
	}
	if !hasPrior {
		result.AddWarning(CodeMissingComparativeData, "", "no prior period comparatives are reported")
	}
}
