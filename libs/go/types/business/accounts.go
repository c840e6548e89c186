package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntitySize is the Companies Act size band that governs mandatory disclosures.
type EntitySize string

const (
	EntitySizeMicro  EntitySize = "micro"
	EntitySizeSmall  EntitySize = "small"
	EntitySizeMedium EntitySize = "medium"
	EntitySizeLarge  EntitySize = "large"
)

// IsValid reports whether s is one of the four known bands.
func (s EntitySize) IsValid() bool {
	switch s {
	case EntitySizeMicro, EntitySizeSmall, EntitySizeMedium, EntitySizeLarge:
		return true
	default:
		return false
	}
}

// RequiresDirectorsReport reports whether the band carries the narrative section.
func (s EntitySize) RequiresDirectorsReport() bool {
	return s == EntitySizeSmall || s == EntitySizeMedium || s == EntitySizeLarge
}

// BalanceSheet holds the balance sheet lines filed with the accounts.
type BalanceSheet struct {
	FixedAssets          decimal.Decimal `json:"fixed_assets"`
	Debtors              decimal.Decimal `json:"debtors"`
	Cash                 decimal.Decimal `json:"cash"`
	CurrentLiabilities   decimal.Decimal `json:"current_liabilities"`
	LongTermLiabilities  decimal.Decimal `json:"long_term_liabilities"`
	CalledUpShareCapital decimal.Decimal `json:"called_up_share_capital"`
}

// CurrentAssets is debtors plus cash at bank and in hand.
func (b BalanceSheet) CurrentAssets() decimal.Decimal {
	return b.Debtors.Add(b.Cash)
}

// TotalAssets is the balance sheet total used for size classification.
func (b BalanceSheet) TotalAssets() decimal.Decimal {
	return b.FixedAssets.Add(b.CurrentAssets())
}

// NetAssets is total assets less all liabilities.
func (b BalanceSheet) NetAssets() decimal.Decimal {
	return b.TotalAssets().Sub(b.CurrentLiabilities).Sub(b.LongTermLiabilities)
}

// ProfitAndLoss holds the profit and loss account lines.
type ProfitAndLoss struct {
	Turnover               decimal.Decimal `json:"turnover"`
	CostOfSales            decimal.Decimal `json:"cost_of_sales"`
	AdministrativeExpenses decimal.Decimal `json:"administrative_expenses"`
	OtherOperatingIncome   decimal.Decimal `json:"other_operating_income"`
	InterestPayable        decimal.Decimal `json:"interest_payable"`
}

// GrossProfit is turnover less cost of sales.
func (p ProfitAndLoss) GrossProfit() decimal.Decimal {
	return p.Turnover.Sub(p.CostOfSales)
}

// OperatingProfit is gross profit less administrative expenses plus other operating income.
func (p ProfitAndLoss) OperatingProfit() decimal.Decimal {
	return p.GrossProfit().Sub(p.AdministrativeExpenses).Add(p.OtherOperatingIncome)
}

// ProfitBeforeTax is operating profit less interest payable.
func (p ProfitAndLoss) ProfitBeforeTax() decimal.Decimal {
	return p.OperatingProfit().Sub(p.InterestPayable)
}

// AccountsInput is everything needed to build a taxonomy-tagged accounts document.
type AccountsInput struct {
	CompanyNumber string     `json:"company_number"`
	CompanyName   string     `json:"company_name"`
	PeriodStart   *time.Time `json:"period_start"`
	PeriodEnd     *time.Time `json:"period_end"`

	AverageEmployees      *int `json:"average_employees"`
	PriorAverageEmployees *int `json:"prior_average_employees,omitempty"`

	// EntitySize overrides classification when set.
	EntitySize          EntitySize `json:"entity_size,omitempty"`
	AccountingFramework string     `json:"accounting_framework,omitempty"`
	Dormant             bool       `json:"dormant"`

	BalanceSheet       BalanceSheet   `json:"balance_sheet"`
	PriorBalanceSheet  *BalanceSheet  `json:"prior_balance_sheet,omitempty"`
	ProfitAndLoss      *ProfitAndLoss `json:"profit_and_loss,omitempty"`
	PriorProfitAndLoss *ProfitAndLoss `json:"prior_profit_and_loss,omitempty"`

	Directors           []string   `json:"directors,omitempty"`
	PrincipalActivities string     `json:"principal_activities,omitempty"`
	ApprovalDate        *time.Time `json:"approval_date,omitempty"`
	SignatoryName       string     `json:"signatory_name,omitempty"`
	ClaimAuditExemption bool       `json:"claim_audit_exemption"`
}

// ClassificationTurnover returns the turnover used for size classification.
func (a AccountsInput) ClassificationTurnover() decimal.Decimal {
	if a.ProfitAndLoss == nil {
		return decimal.Zero
	}
	return a.ProfitAndLoss.Turnover
}

// ConfirmationStatementInput is the payload of an annual confirmation statement.
type ConfirmationStatementInput struct {
	CompanyNumber      string    `json:"company_number"`
	CompanyName        string    `json:"company_name"`
	AuthenticationCode string    `json:"authentication_code"`
	ReviewDate         time.Time `json:"review_date"`
	SICCodes           []string  `json:"sic_codes"`
	TradingOnMarket    bool      `json:"trading_on_market"`
	NoUpdatesRequired  bool      `json:"no_updates_required"`
}
