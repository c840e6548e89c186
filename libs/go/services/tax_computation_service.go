package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Statutory parameters for the small profits rate and main rate regime.
var (
	SmallProfitsRate       = decimal.RequireFromString("0.19")
	MainRate               = decimal.RequireFromString("0.25")
	LowerLimitBase         = decimal.NewFromInt(50000)
	UpperLimitBase         = decimal.NewFromInt(250000)
	marginalReliefNumer    = decimal.NewFromInt(3)
	marginalReliefDenom    = decimal.NewFromInt(200)
	daysInStatutoryYear    = 365
	maxPeriodDays          = 366
	effectiveRatePlaces    = int32(4)
	moneyPlaces            = int32(2)
	defaultBatchConcurrent = 8
)

// TaxComputationService turns FinancialData into a TaxComputation.
// It holds no state between calls and is safe for concurrent use.
type TaxComputationService struct {
	logger *zap.Logger
}

// NewTaxComputationService creates a new tax computation service
func NewTaxComputationService() *TaxComputationService {
	return &TaxComputationService{
		logger: logger.L(),
	}
}

// Validate returns every invariant violation in data. An empty result means
// Compute will succeed.
func (s *TaxComputationService) Validate(data business.FinancialData) []business.FieldViolation {
	var violations []business.FieldViolation

	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"turnover", data.Turnover},
		{"cost_of_sales", data.CostOfSales},
		{"operating_expenses", data.OperatingExpenses},
		{"interest_received", data.InterestReceived},
		{"dividends_received", data.DividendsReceived},
		{"depreciation_add_back", data.DepreciationAddBack},
		{"capital_allowances", data.CapitalAllowances},
		{"losses_brought_forward", data.LossesBroughtForward},
		{"rd_relief", data.RDRelief},
		{"patent_box_relief", data.PatentBoxRelief},
		{"charitable_donations", data.CharitableDonations},
		{"group_relief", data.GroupRelief},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			violations = append(violations, business.FieldViolation{Field: m.field, Message: "must be zero or positive"})
		}
	}

	return append(violations, structuralViolations(data)...)
}

// structuralViolations covers the checks Compute cannot proceed without.
func structuralViolations(data business.FinancialData) []business.FieldViolation {
	var violations []business.FieldViolation

	if data.AssociatedCompanies < 0 {
		violations = append(violations, business.FieldViolation{Field: "associated_companies", Message: "must be zero or positive"})
	}
	if data.PeriodStart.IsZero() {
		violations = append(violations, business.FieldViolation{Field: "period_start", Message: "is required"})
	}
	if data.PeriodEnd.IsZero() {
		violations = append(violations, business.FieldViolation{Field: "period_end", Message: "is required"})
	}
	if data.PeriodStart.IsZero() || data.PeriodEnd.IsZero() {
		return violations
	}

	if !data.PeriodEnd.After(data.PeriodStart) {
		violations = append(violations, business.FieldViolation{Field: "period_end", Message: "must be after period_start"})
	} else if days := data.PeriodDays(); days > maxPeriodDays {
		violations = append(violations, business.FieldViolation{
			Field:   "period_end",
			Message: fmt.Sprintf("accounting period is %d days, the maximum is %d", days, maxPeriodDays),
		})
	}
	return violations
}

// Compute derives the corporation tax liability. Monetary sign checks are
// the caller's job through Validate; Compute only rejects periods and
// associated company counts it cannot compute with.
func (s *TaxComputationService) Compute(data business.FinancialData) (*business.TaxComputation, error) {
	if violations := structuralViolations(data); len(violations) > 0 {
		return nil, &business.ValidationError{Violations: violations}
	}

	days := data.PeriodDays()
	c := &business.TaxComputation{
		PeriodStart:         data.PeriodStart,
		PeriodEnd:           data.PeriodEnd,
		PeriodDays:          days,
		FinancialYear:       FinancialYear(data.PeriodStart),
		AssociatedCompanies: data.AssociatedCompanies,
		Turnover:            data.Turnover,
		RDRelief:            data.RDRelief,
		PatentBoxRelief:     data.PatentBoxRelief,
	}

	// Steps 1-3
	c.TradingProfit = data.Turnover.Sub(data.CostOfSales).Sub(data.OperatingExpenses)
	c.TotalIncome = c.TradingProfit.Add(data.InterestReceived).Add(data.DividendsReceived)
	c.AdjustedProfit = c.TotalIncome.Add(data.DepreciationAddBack).Sub(data.CapitalAllowances)

	// Step 4, floored at each subtraction
	c.LossesUtilised = floorZero(decimal.Min(data.LossesBroughtForward, c.AdjustedProfit))
	afterLosses := floorZero(c.AdjustedProfit.Sub(c.LossesUtilised))
	afterDonations := floorZero(afterLosses.Sub(data.CharitableDonations))
	c.ChargeableProfit = floorZero(afterDonations.Sub(data.GroupRelief))

	// Step 5
	c.AugmentedProfit = c.ChargeableProfit.Add(data.DividendsReceived)

	// Step 6
	lower, upper := thresholdLimits(days, data.AssociatedCompanies)
	c.LowerLimit = lower.Round(moneyPlaces)
	c.UpperLimit = upper.Round(moneyPlaces)

	// Step 7
	switch {
	case c.AugmentedProfit.IsZero(), c.AugmentedProfit.LessThanOrEqual(lower):
		c.AppliedRate = SmallProfitsRate
		c.EffectiveRate = SmallProfitsRate
		c.TaxBeforeRelief = c.ChargeableProfit.Mul(SmallProfitsRate).Round(moneyPlaces)
		c.MarginalRelief = decimal.Zero
	case c.AugmentedProfit.GreaterThanOrEqual(upper):
		c.AppliedRate = MainRate
		c.EffectiveRate = MainRate
		c.TaxBeforeRelief = c.ChargeableProfit.Mul(MainRate).Round(moneyPlaces)
		c.MarginalRelief = decimal.Zero
	default:
		c.AppliedRate = MainRate
		c.MarginalReliefApplied = true
		c.TaxBeforeRelief = c.ChargeableProfit.Mul(MainRate).Round(moneyPlaces)
		c.MarginalRelief = MarginalRelief(upper, c.AugmentedProfit, c.ChargeableProfit)
	}
	c.TaxAfterMarginalRelief = floorZero(c.TaxBeforeRelief.Sub(c.MarginalRelief))
	if c.MarginalReliefApplied {
		c.EffectiveRate = decimal.Zero
		if c.ChargeableProfit.IsPositive() {
			c.EffectiveRate = c.TaxAfterMarginalRelief.Div(c.ChargeableProfit).Round(effectiveRatePlaces)
		}
	}

	// Step 8
	c.TotalReliefs = data.RDRelief.Add(data.PatentBoxRelief)
	c.TaxDue = floorZero(c.TaxAfterMarginalRelief.Sub(c.TotalReliefs)).Round(moneyPlaces)

	c.Breakdown = buildBreakdown(data, c)

	s.logger.Debug("Computed corporation tax",
		zap.Int("financial_year", c.FinancialYear),
		zap.Int("period_days", days),
		zap.Bool("marginal_relief", c.MarginalReliefApplied),
		zap.String("tax_due", c.TaxDue.StringFixed(moneyPlaces)))

	return c, nil
}

// ComputeBatch computes every record concurrently. Results keep the input
// order; the first failure cancels the remaining work.
func (s *TaxComputationService) ComputeBatch(ctx context.Context, records []business.FinancialData) ([]*business.TaxComputation, error) {
	results := make([]*business.TaxComputation, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultBatchConcurrent)
	for i := range records {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := s.Compute(records[i])
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MarginalRelief applies the statutory taper (U - A) x (P / A) x 3/200,
// rounded to the penny. A zero augmented profit yields no relief.
func MarginalRelief(upperLimit, augmentedProfit, chargeableProfit decimal.Decimal) decimal.Decimal {
	if !augmentedProfit.IsPositive() {
		return decimal.Zero
	}
	numerator := upperLimit.Sub(augmentedProfit).Mul(chargeableProfit).Mul(marginalReliefNumer)
	denominator := augmentedProfit.Mul(marginalReliefDenom)
	return floorZero(numerator.Div(denominator)).Round(moneyPlaces)
}

// FinancialYear returns the April to March year in which t falls, named by
// the calendar year it starts in.
func FinancialYear(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// thresholdLimits scales both limits by associated companies and period
// length in a single division each so short periods do not pick up
// intermediate rounding.
func thresholdLimits(days, associated int) (decimal.Decimal, decimal.Decimal) {
	divisor := decimal.NewFromInt(int64((1 + associated) * daysInStatutoryYear))
	periodDays := decimal.NewFromInt(int64(days))
	lower := LowerLimitBase.Mul(periodDays).Div(divisor)
	upper := UpperLimitBase.Mul(periodDays).Div(divisor)
	return lower, upper
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func buildBreakdown(data business.FinancialData, c *business.TaxComputation) []business.BreakdownLine {
	line := func(key, label string, amount decimal.Decimal, formula string, children ...business.BreakdownLine) business.BreakdownLine {
		return business.BreakdownLine{Key: key, Label: label, Amount: amount, Formula: formula, Children: children}
	}

	appliedRate := line("applied_rate", "Applied rate", c.AppliedRate, "")
	taxLines := []business.BreakdownLine{
		appliedRate,
		line("tax_before_relief", "Tax before relief", c.TaxBeforeRelief, "chargeable_profit x applied_rate"),
	}
	if c.MarginalReliefApplied {
		taxLines = append(taxLines,
			line("marginal_relief", "Marginal relief", c.MarginalRelief, "(upper_limit - augmented_profit) x chargeable_profit / augmented_profit x 3/200"),
			line("effective_rate", "Effective rate", c.EffectiveRate, "tax_after_marginal_relief / chargeable_profit"),
		)
	}

	return []business.BreakdownLine{
		line("trading_profit", "Trading profit", c.TradingProfit, "turnover - cost_of_sales - operating_expenses",
			line("turnover", "Turnover", data.Turnover, ""),
			line("cost_of_sales", "Cost of sales", data.CostOfSales, ""),
			line("operating_expenses", "Operating expenses", data.OperatingExpenses, ""),
		),
		line("total_income", "Total income", c.TotalIncome, "trading_profit + interest_received + dividends_received",
			line("interest_received", "Interest received", data.InterestReceived, ""),
			line("dividends_received", "Dividends received", data.DividendsReceived, ""),
		),
		line("adjusted_profit", "Adjusted profit", c.AdjustedProfit, "total_income + depreciation_add_back - capital_allowances",
			line("depreciation_add_back", "Depreciation added back", data.DepreciationAddBack, ""),
			line("capital_allowances", "Capital allowances", data.CapitalAllowances, ""),
		),
		line("chargeable_profit", "Chargeable profit", c.ChargeableProfit, "adjusted_profit - losses - donations - group_relief, floored at zero",
			line("losses_utilised", "Losses brought forward utilised", c.LossesUtilised, "min(losses_brought_forward, adjusted_profit)"),
			line("charitable_donations", "Qualifying charitable donations", data.CharitableDonations, ""),
			line("group_relief", "Group relief", data.GroupRelief, ""),
		),
		line("augmented_profit", "Augmented profit", c.AugmentedProfit, "chargeable_profit + dividends_received"),
		line("limits", "Thresholds", decimal.Zero, fmt.Sprintf("%d day period, %d associated companies", c.PeriodDays, c.AssociatedCompanies),
			line("lower_limit", "Lower limit", c.LowerLimit, "50,000 x days / ((1 + associated) x 365)"),
			line("upper_limit", "Upper limit", c.UpperLimit, "250,000 x days / ((1 + associated) x 365)"),
		),
		line("tax_after_marginal_relief", "Tax after marginal relief", c.TaxAfterMarginalRelief, "", taxLines...),
		line("total_reliefs", "Reliefs", c.TotalReliefs, "rd_relief + patent_box_relief",
			line("rd_relief", "R&D relief", data.RDRelief, ""),
			line("patent_box_relief", "Patent box relief", data.PatentBoxRelief, ""),
		),
		line("tax_due", "Corporation tax due", c.TaxDue, "max(0, tax_after_marginal_relief - total_reliefs)"),
	}
}
