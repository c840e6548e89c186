package services

import (
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// SizeThreshold is the upper bound of one size band. A company falls in the
// band when it meets at least two of the three limits.
type SizeThreshold struct {
	Size              business.EntitySize
	Turnover          decimal.Decimal
	BalanceSheetTotal decimal.Decimal
	Employees         int
}

// DefaultSizeThresholds are the Companies Act limits, smallest band first.
var DefaultSizeThresholds = []SizeThreshold{
	{Size: business.EntitySizeMicro, Turnover: decimal.NewFromInt(1_000_000), BalanceSheetTotal: decimal.NewFromInt(500_000), Employees: 10},
	{Size: business.EntitySizeSmall, Turnover: decimal.NewFromInt(15_000_000), BalanceSheetTotal: decimal.NewFromInt(7_500_000), Employees: 50},
	{Size: business.EntitySizeMedium, Turnover: decimal.NewFromInt(54_000_000), BalanceSheetTotal: decimal.NewFromInt(27_000_000), Employees: 250},
}

// EntityClassifier assigns a size band from turnover, balance sheet total and headcount.
type EntityClassifier struct {
	thresholds []SizeThreshold
}

// NewEntityClassifier creates a classifier over DefaultSizeThresholds
func NewEntityClassifier() *EntityClassifier {
	return &EntityClassifier{thresholds: DefaultSizeThresholds}
}

// Classify returns the first band, smallest first, in which at least two of
// the three criteria are within limits. Anything else is large.
func (c *EntityClassifier) Classify(turnover, balanceSheetTotal decimal.Decimal, employees int) business.EntitySize {
	for _, band := range c.thresholds {
		met := 0
		if turnover.LessThanOrEqual(band.Turnover) {
			met++
		}
		if balanceSheetTotal.LessThanOrEqual(band.BalanceSheetTotal) {
			met++
		}
		if employees <= band.Employees {
			met++
		}
		if met >= 2 {
			return band.Size
		}
	}
	return business.EntitySizeLarge
}

// ClassifyAccounts classifies from the figures in an accounts input. A
// missing headcount counts as zero.
func (c *EntityClassifier) ClassifyAccounts(input business.AccountsInput) business.EntitySize {
	employees := 0
	if input.AverageEmployees != nil {
		employees = *input.AverageEmployees
	}
	return c.Classify(input.ClassificationTurnover(), input.BalanceSheet.TotalAssets(), employees)
}
