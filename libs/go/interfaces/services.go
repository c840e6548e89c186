package interfaces

import (
	"context"

	"github.com/ledgerline/filing-api/libs/go/types/business"
)

// FilingService is the consumer-facing surface of the filing core
type FilingService interface {
	ComputeTax(ctx context.Context, data business.FinancialData) (*business.TaxComputation, error)
	ComputeTaxBatch(ctx context.Context, records []business.FinancialData) ([]*business.TaxComputation, error)
	BuildTaxReturn(ctx context.Context, data business.FinancialData, company business.CompanyInfo) (*business.AnnualFilingPackage, error)
	SubmitTaxReturn(ctx context.Context, data business.FinancialData, company business.CompanyInfo) (*business.SubmissionResult, error)
	PollTaxReturn(ctx context.Context, correlationID, endpoint string) (*business.SubmissionResult, error)
	PrepareAccounts(ctx context.Context, input business.AccountsInput) (*business.PreparedAccounts, error)
	ValidateAccounts(ctx context.Context, xhtml []byte, size business.EntitySize) (*business.ValidationResult, error)
	SubmitAccounts(ctx context.Context, input business.AccountsInput, company business.CompanyInfo) (*business.SubmissionResult, error)
	SubmitConfirmationStatement(ctx context.Context, input business.ConfirmationStatementInput) (*business.SubmissionResult, error)
	PollRegistrar(ctx context.Context, submissionNumber, correlationID string) (*business.SubmissionResult, error)
	PrepareAnnualFiling(ctx context.Context, data business.FinancialData, company business.CompanyInfo, accounts business.AccountsInput) (*business.AnnualFilingPackage, error)
}
