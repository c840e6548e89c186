package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/filing-api/libs/go/constants"
	"github.com/ledgerline/filing-api/libs/go/ixbrl"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Section ids of the generated accounts document.
const (
	SectionCompanyInformation = "company-information"
	SectionBalanceSheet       = "balance-sheet"
	SectionProfitAndLoss      = "profit-and-loss"
	SectionNotes              = "notes"
	SectionDirectorsReport    = "directors-report"
	SectionApproval           = "approval"
)

const auditExemptionStatement = "For the year ending %s the company was entitled to exemption from audit under section 477 of the Companies Act 2006 relating to small companies."

// AccountsDocumentBuilder assembles inline XBRL accounts from an AccountsInput.
type AccountsDocumentBuilder struct {
	classifier *EntityClassifier
	logger     *zap.Logger
}

// NewAccountsDocumentBuilder creates a new accounts document builder
func NewAccountsDocumentBuilder(classifier *EntityClassifier) *AccountsDocumentBuilder {
	if classifier == nil {
		classifier = NewEntityClassifier()
	}
	return &AccountsDocumentBuilder{
		classifier: classifier,
		logger:     logger.L(),
	}
}

// EntitySize returns the override on the input when valid, otherwise the
// classified band.
func (b *AccountsDocumentBuilder) EntitySize(input business.AccountsInput) business.EntitySize {
	if input.EntitySize.IsValid() {
		return input.EntitySize
	}
	return b.classifier.ClassifyAccounts(input)
}

// MissingFields lists every mandatory field absent for the given size.
func MissingFields(input business.AccountsInput, size business.EntitySize) []string {
	var missing []string
	if strings.TrimSpace(input.CompanyNumber) == "" {
		missing = append(missing, "company_number")
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if input.PeriodStart == nil || input.PeriodStart.IsZero() {
		missing = append(missing, "period_start")
	}
	if input.PeriodEnd == nil || input.PeriodEnd.IsZero() {
		missing = append(missing, "period_end")
	}
	if input.AverageEmployees == nil {
		missing = append(missing, "average_employees")
	}

	if !size.RequiresDirectorsReport() {
		return missing
	}
	if len(nonBlank(input.Directors)) == 0 {
		missing = append(missing, "directors")
	}
	if strings.TrimSpace(input.PrincipalActivities) == "" {
		missing = append(missing, "principal_activities")
	}
	if input.ApprovalDate == nil || input.ApprovalDate.IsZero() {
		missing = append(missing, "approval_date")
	}
	if strings.TrimSpace(input.SignatoryName) == "" {
		missing = append(missing, "signatory_name")
	}
	return missing
}

// Build produces the accounts document. Missing mandatory fields fail with
// an IncompleteInputError naming all of them.
func (b *AccountsDocumentBuilder) Build(input business.AccountsInput) (*ixbrl.Document, error) {
	size := b.EntitySize(input)
	if missing := MissingFields(input, size); len(missing) > 0 {
		return nil, &business.IncompleteInputError{Missing: missing}
	}
	if !input.PeriodEnd.After(*input.PeriodStart) {
		return nil, &business.ValidationError{Violations: []business.FieldViolation{
			{Field: "period_end", Message: "must be after period_start"},
		}}
	}
	if *input.AverageEmployees < 0 {
		return nil, &business.ValidationError{Violations: []business.FieldViolation{
			{Field: "average_employees", Message: "must be zero or positive"},
		}}
	}

	start, end := dateOnly(*input.PeriodStart), dateOnly(*input.PeriodEnd)
	title := fmt.Sprintf("%s - Annual accounts for the period ended %s", input.CompanyName, end.Format("2 January 2006"))

	db := ixbrl.NewDocumentBuilder(title).
		WithDefaultNamespaces().
		SchemaRef(schemaFor(input, size))
	addContexts(db, input.CompanyNumber, start, end)
	db.AddUnit(ixbrl.Unit{ID: ixbrl.UnitGBP, Measure: "iso4217:GBP"}).
		AddUnit(ixbrl.Unit{ID: ixbrl.UnitPure, Measure: "xbrli:pure"})

	db.Section(SectionCompanyInformation, "Company information").
		AddFact(text(ixbrl.ConceptCompanyNumber, "Registered number", input.CompanyNumber)).
		AddFact(text(ixbrl.ConceptCompanyName, "Company name", input.CompanyName)).
		AddFact(text(ixbrl.ConceptPeriodStart, "Period start", start.Format(dateLayout))).
		AddFact(text(ixbrl.ConceptPeriodEnd, "Period end", end.Format(dateLayout))).
		AddFact(text(ixbrl.ConceptEntityDormant, "Dormant", strconv.FormatBool(input.Dormant)))
	if framework := strings.TrimSpace(input.AccountingFramework); framework != "" {
		db.AddFact(text(ixbrl.ConceptAccountingStandards, "Accounting standards", framework))
	}

	db.Section(SectionBalanceSheet, "Balance sheet")
	addBalanceSheet(db, input.BalanceSheet, ixbrl.ContextCurrentInstant, "")
	if input.PriorBalanceSheet != nil {
		addBalanceSheet(db, *input.PriorBalanceSheet, ixbrl.ContextPriorInstant, " (prior period)")
	}

	if input.ProfitAndLoss != nil {
		db.Section(SectionProfitAndLoss, "Profit and loss account")
		addProfitAndLoss(db, *input.ProfitAndLoss, ixbrl.ContextCurrentPeriod, "")
		if input.PriorProfitAndLoss != nil {
			addProfitAndLoss(db, *input.PriorProfitAndLoss, ixbrl.ContextPriorPeriod, " (prior period)")
		}
	}

	db.Section(SectionNotes, "Notes to the financial statements").
		AddFact(headcount(ixbrl.ContextCurrentPeriod, "Average number of employees", *input.AverageEmployees))
	if input.PriorAverageEmployees != nil {
		db.AddFact(headcount(ixbrl.ContextPriorPeriod, "Average number of employees (prior period)", *input.PriorAverageEmployees))
	}

	if size.RequiresDirectorsReport() {
		db.Section(SectionDirectorsReport, "Directors' report").
			AddFact(text(ixbrl.ConceptPrincipalActivities, "Principal activities", strings.TrimSpace(input.PrincipalActivities)))
		for _, director := range nonBlank(input.Directors) {
			db.AddFact(text(ixbrl.ConceptDirectorName, "Director", director))
		}
	}

	if input.ClaimAuditExemption || input.ApprovalDate != nil || strings.TrimSpace(input.SignatoryName) != "" {
		db.Section(SectionApproval, "Statements and approval")
	}
	if input.ClaimAuditExemption {
		db.AddFact(text(ixbrl.ConceptAuditExemption, "Audit exemption", fmt.Sprintf(auditExemptionStatement, end.Format("2 January 2006"))))
	}
	if input.ApprovalDate != nil && !input.ApprovalDate.IsZero() {
		db.AddFact(text(ixbrl.ConceptApprovalDate, "Approved by the board on", dateOnly(*input.ApprovalDate).Format(dateLayout)))
	}
	if signatory := strings.TrimSpace(input.SignatoryName); signatory != "" {
		db.AddFact(text(ixbrl.ConceptSignatory, "Signed on behalf of the board by", signatory))
	}

	doc := db.Build()
	b.logger.Debug("Built accounts document",
		zap.String("company_number", input.CompanyNumber),
		zap.String("entity_size", string(size)),
		zap.Int("fact_count", len(doc.Facts())))
	return doc, nil
}

const dateLayout = "2006-01-02"

func addContexts(db *ixbrl.DocumentBuilder, companyNumber string, start, end time.Time) {
	priorStart, priorEnd := start.AddDate(-1, 0, 0), end.AddDate(-1, 0, 0)
	ctx := func(id string, instant bool, from, to time.Time) ixbrl.Context {
		return ixbrl.Context{
			ID:               id,
			EntityScheme:     ixbrl.EntityScheme,
			EntityIdentifier: companyNumber,
			Instant:          instant,
			StartDate:        from,
			EndDate:          to,
		}
	}
	db.AddContext(ctx(ixbrl.ContextCurrentPeriod, false, start, end)).
		AddContext(ctx(ixbrl.ContextCurrentInstant, true, time.Time{}, end)).
		AddContext(ctx(ixbrl.ContextPriorPeriod, false, priorStart, priorEnd)).
		AddContext(ctx(ixbrl.ContextPriorInstant, true, time.Time{}, priorEnd))
}

func addBalanceSheet(db *ixbrl.DocumentBuilder, bs business.BalanceSheet, contextRef, suffix string) {
	db.AddFact(money(ixbrl.ConceptFixedAssets, "Fixed assets"+suffix, contextRef, bs.FixedAssets)).
		AddFact(money(ixbrl.ConceptDebtors, "Debtors"+suffix, contextRef, bs.Debtors)).
		AddFact(money(ixbrl.ConceptCash, "Cash at bank and in hand"+suffix, contextRef, bs.Cash)).
		AddFact(money(ixbrl.ConceptCurrentAssets, "Current assets"+suffix, contextRef, bs.CurrentAssets())).
		AddFact(money(ixbrl.ConceptTotalAssets, "Total assets"+suffix, contextRef, bs.TotalAssets())).
		AddFact(money(ixbrl.ConceptCurrentLiabilities, "Creditors: amounts falling due within one year"+suffix, contextRef, bs.CurrentLiabilities)).
		AddFact(money(ixbrl.ConceptNetAssets, "Net assets"+suffix, contextRef, bs.NetAssets()))
	if !bs.CalledUpShareCapital.IsZero() {
		db.AddFact(money(ixbrl.ConceptShareCapital, "Called up share capital"+suffix, contextRef, bs.CalledUpShareCapital))
	}
}

func addProfitAndLoss(db *ixbrl.DocumentBuilder, pl business.ProfitAndLoss, contextRef, suffix string) {
	db.AddFact(money(ixbrl.ConceptTurnover, "Turnover"+suffix, contextRef, pl.Turnover)).
		AddFact(money(ixbrl.ConceptCostOfSales, "Cost of sales"+suffix, contextRef, pl.CostOfSales)).
		AddFact(money(ixbrl.ConceptGrossProfit, "Gross profit"+suffix, contextRef, pl.GrossProfit())).
		AddFact(money(ixbrl.ConceptAdministrativeExp, "Administrative expenses"+suffix, contextRef, pl.AdministrativeExpenses)).
		AddFact(money(ixbrl.ConceptOperatingProfit, "Operating profit"+suffix, contextRef, pl.OperatingProfit())).
		AddFact(money(ixbrl.ConceptProfitBeforeTax, "Profit before tax"+suffix, contextRef, pl.ProfitBeforeTax()))
}

func money(name, label, contextRef string, amount decimal.Decimal) ixbrl.Fact {
	return ixbrl.Fact{
		Name:       name,
		ContextRef: contextRef,
		UnitRef:    ixbrl.UnitGBP,
		Value:      amount.Round(0).StringFixed(0),
		Numeric:    true,
		Decimals:   "0",
		Format:     ixbrl.FormatNumDotDecimal,
		Label:      label,
	}
}

func headcount(contextRef, label string, n int) ixbrl.Fact {
	return ixbrl.Fact{
		Name:       ixbrl.ConceptAverageEmployees,
		ContextRef: contextRef,
		UnitRef:    ixbrl.UnitPure,
		Value:      strconv.Itoa(n),
		Numeric:    true,
		Decimals:   "0",
		Label:      label,
	}
}

func text(name, label, value string) ixbrl.Fact {
	return ixbrl.Fact{Name: name, ContextRef: ixbrl.ContextCurrentPeriod, Value: value, Label: label}
}

func schemaFor(input business.AccountsInput, size business.EntitySize) string {
	switch strings.TrimSpace(input.AccountingFramework) {
	case constants.FrameworkFRS105:
		return ixbrl.SchemaFRS105
	case constants.FrameworkFRS102:
		return ixbrl.SchemaFRS102
	}
	if size == business.EntitySizeMicro {
		return ixbrl.SchemaFRS105
	}
	return ixbrl.SchemaFRS102
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
