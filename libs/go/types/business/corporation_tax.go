package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialData is the raw input to a corporation tax computation.
// All monetary fields are in pounds sterling and must be zero or positive.
type FinancialData struct {
	Turnover             decimal.Decimal `json:"turnover"`
	CostOfSales          decimal.Decimal `json:"cost_of_sales"`
	OperatingExpenses    decimal.Decimal `json:"operating_expenses"`
	InterestReceived     decimal.Decimal `json:"interest_received"`
	DividendsReceived    decimal.Decimal `json:"dividends_received"`
	DepreciationAddBack  decimal.Decimal `json:"depreciation_add_back"`
	CapitalAllowances    decimal.Decimal `json:"capital_allowances"`
	LossesBroughtForward decimal.Decimal `json:"losses_brought_forward"`
	RDRelief             decimal.Decimal `json:"rd_relief"`
	PatentBoxRelief      decimal.Decimal `json:"patent_box_relief"`
	CharitableDonations  decimal.Decimal `json:"charitable_donations"`
	GroupRelief          decimal.Decimal `json:"group_relief"`
	AssociatedCompanies  int             `json:"associated_companies"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
}

// PeriodDays returns the inclusive length of the accounting period in days.
func (f FinancialData) PeriodDays() int {
	start := truncateToDate(f.PeriodStart)
	end := truncateToDate(f.PeriodEnd)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BreakdownLine is one node of the audit tree attached to a computation.
type BreakdownLine struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Formula  string          `json:"formula,omitempty"`
	Children []BreakdownLine `json:"children,omitempty"`
}

// TaxComputation is the statutory liability derived from a FinancialData record.
// Values are never mutated after the engine returns them; recompute instead.
type TaxComputation struct {
	PeriodStart         time.Time `json:"period_start"`
	PeriodEnd           time.Time `json:"period_end"`
	PeriodDays          int       `json:"period_days"`
	FinancialYear       int       `json:"financial_year"`
	AssociatedCompanies int       `json:"associated_companies"`

	Turnover         decimal.Decimal `json:"turnover"`
	TradingProfit    decimal.Decimal `json:"trading_profit"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	AdjustedProfit   decimal.Decimal `json:"adjusted_profit"`
	LossesUtilised   decimal.Decimal `json:"losses_utilised"`
	ChargeableProfit decimal.Decimal `json:"chargeable_profit"`
	AugmentedProfit  decimal.Decimal `json:"augmented_profit"`

	LowerLimit decimal.Decimal `json:"lower_limit"`
	UpperLimit decimal.Decimal `json:"upper_limit"`

	AppliedRate            decimal.Decimal `json:"applied_rate"`
	EffectiveRate          decimal.Decimal `json:"effective_rate"`
	TaxBeforeRelief        decimal.Decimal `json:"tax_before_relief"`
	MarginalReliefApplied  bool            `json:"marginal_relief_applied"`
	MarginalRelief         decimal.Decimal `json:"marginal_relief"`
	TaxAfterMarginalRelief decimal.Decimal `json:"tax_after_marginal_relief"`
	RDRelief               decimal.Decimal `json:"rd_relief"`
	PatentBoxRelief        decimal.Decimal `json:"patent_box_relief"`
	TotalReliefs           decimal.Decimal `json:"total_reliefs"`
	TaxDue                 decimal.Decimal `json:"tax_due"`

	Breakdown []BreakdownLine `json:"breakdown"`
}

// CompanyInfo identifies the company a tax return is filed for.
type CompanyInfo struct {
	CompanyName        string `json:"company_name"`
	CompanyNumber      string `json:"company_number"`
	UTR                string `json:"utr"`
	CompanyType        int    `json:"company_type,omitempty"`
	DeclarantName      string `json:"declarant_name"`
	DeclarantStatus    string `json:"declarant_status"`
	AuthenticationCode string `json:"authentication_code,omitempty"`
}
