package ixbrl

// Namespace URIs used by FRC taxonomy inline XBRL accounts.
const (
	NamespaceXHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceIX      = "http://www.xbrl.org/2013/inlineXBRL"
	NamespaceIXT     = "http://www.xbrl.org/inlineXBRL/transformation/2020-02-12"
	NamespaceXBRLI   = "http://www.xbrl.org/2003/instance"
	NamespaceLink    = "http://www.xbrl.org/2003/linkbase"
	NamespaceXLink   = "http://www.w3.org/1999/xlink"
	NamespaceISO4217 = "http://www.xbrl.org/2003/iso4217"
	NamespaceCore    = "http://xbrl.frc.org.uk/fr/2023-01-01/core"
	NamespaceBus     = "http://xbrl.frc.org.uk/cd/2023-01-01/business"
	NamespaceDirep   = "http://xbrl.frc.org.uk/reports/2023-01-01/direp"
	NamespaceAurep   = "http://xbrl.frc.org.uk/reports/2023-01-01/aurep"
)

// Schema entry points for the supported reporting frameworks.
const (
	SchemaFRS102 = "https://xbrl.frc.org.uk/FRS-102/2023-01-01/FRS-102-2023-01-01.xsd"
	SchemaFRS105 = "https://xbrl.frc.org.uk/FRS-105/2023-01-01/FRS-105-2023-01-01.xsd"
)

// EntityScheme is the identifier scheme for companies registered in the UK.
const EntityScheme = "http://www.companieshouse.gov.uk/"

// Context ids emitted by the accounts builder.
const (
	ContextCurrentPeriod  = "current-period"
	ContextCurrentInstant = "current-instant"
	ContextPriorPeriod    = "prior-period"
	ContextPriorInstant   = "prior-instant"
)

// Unit ids.
const (
	UnitGBP  = "GBP"
	UnitPure = "pure"
)

// Numeric display format applied to monetary facts.
const FormatNumDotDecimal = "ixt:num-dot-decimal"

// DefaultNamespaces is the prefix set declared on every rendered document.
var DefaultNamespaces = []Namespace{
	{Prefix: "", URI: NamespaceXHTML},
	{Prefix: "ix", URI: NamespaceIX},
	{Prefix: "ixt", URI: NamespaceIXT},
	{Prefix: "xbrli", URI: NamespaceXBRLI},
	{Prefix: "link", URI: NamespaceLink},
	{Prefix: "xlink", URI: NamespaceXLink},
	{Prefix: "iso4217", URI: NamespaceISO4217},
	{Prefix: "core", URI: NamespaceCore},
	{Prefix: "bus", URI: NamespaceBus},
	{Prefix: "direp", URI: NamespaceDirep},
	{Prefix: "aurep", URI: NamespaceAurep},
}

// TaxonomyPrefixes are the prefixes a fact name may carry.
var TaxonomyPrefixes = map[string]string{
	"core":  NamespaceCore,
	"bus":   NamespaceBus,
	"direp": NamespaceDirep,
	"aurep": NamespaceAurep,
}

// Concept names for the facts the builder emits.
const (
	ConceptCompanyNumber       = "bus:UKCompaniesHouseRegisteredNumber"
	ConceptCompanyName         = "bus:EntityCurrentLegalOrRegisteredName"
	ConceptPeriodStart         = "bus:StartDateForPeriodCoveredByReport"
	ConceptPeriodEnd           = "bus:EndDateForPeriodCoveredByReport"
	ConceptAccountingStandards = "bus:AccountingStandardsApplied"
	ConceptEntityDormant       = "bus:EntityDormantTruefalse"
	ConceptDirectorName        = "bus:NameEntityOfficer"
	ConceptAverageEmployees    = "core:AverageNumberEmployeesDuringPeriod"
	ConceptFixedAssets         = "core:FixedAssets"
	ConceptDebtors             = "core:Debtors"
	ConceptCash                = "core:CashBankOnHand"
	ConceptCurrentAssets       = "core:CurrentAssets"
	ConceptTotalAssets         = "core:TotalAssets"
	ConceptCurrentLiabilities  = "core:Creditors"
	ConceptNetAssets           = "core:NetAssetsLiabilities"
	ConceptShareCapital        = "core:CalledUpShareCapital"
	ConceptTurnover            = "core:TurnoverRevenue"
	ConceptCostOfSales         = "core:CostSales"
	ConceptGrossProfit         = "core:GrossProfitLoss"
	ConceptAdministrativeExp   = "core:AdministrativeExpenses"
	ConceptOperatingProfit     = "core:OperatingProfitLoss"
	ConceptProfitBeforeTax     = "core:ProfitLossOnOrdinaryActivitiesBeforeTax"
	ConceptPrincipalActivities = "direp:DescriptionPrincipalActivities"
	ConceptAuditExemption      = "direp:StatementThatCompanyEntitledToExemptionFromAuditUnderSection477CompaniesAct2006RelatingToSmallCompanies"
	ConceptApprovalDate        = "core:DateAuthorisationFinancialStatementsForIssue"
	ConceptSignatory           = "core:DirectorSigningFinancialStatements"
)
