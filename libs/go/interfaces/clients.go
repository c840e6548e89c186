package interfaces

import (
	"context"
	"time"

	"github.com/ledgerline/filing-api/libs/go/client/companieshouse"
	"github.com/ledgerline/filing-api/libs/go/client/hmrc"
	"github.com/ledgerline/filing-api/libs/go/types/business"
)

// TaxReturnGateway handles CT600 submissions to the HMRC Transaction Engine
type TaxReturnGateway interface {
	TestMode() bool
	Build(computation *business.TaxComputation, company business.CompanyInfo, opts ...hmrc.BuildOption) (*hmrc.Envelope, error)
	Submit(ctx context.Context, env *hmrc.Envelope) (*business.SubmissionResult, error)
	Poll(ctx context.Context, correlationID string) (*business.SubmissionResult, error)
	PollAt(ctx context.Context, correlationID, endpoint string) (*business.SubmissionResult, error)
	Delete(ctx context.Context, correlationID string) error
}

// RegistrarGateway handles filings with the Companies House XML gateway
type RegistrarGateway interface {
	TestMode() bool
	BuildAccounts(company business.CompanyInfo, madeUpDate time.Time, accounts []byte, opts ...companieshouse.BuildOption) (*companieshouse.Envelope, error)
	BuildConfirmationStatement(input business.ConfirmationStatementInput, opts ...companieshouse.BuildOption) (*companieshouse.Envelope, error)
	Submit(ctx context.Context, env *companieshouse.Envelope) (*business.SubmissionResult, error)
	GetSubmissionStatus(ctx context.Context, submissionNumber, correlationID string) (*business.SubmissionResult, error)
}

// SecretsProvider resolves credentials from a secret store
type SecretsProvider interface {
	GetSecretString(ctx context.Context, secretIDEnvVar string, fallbackEnvVar string) (string, error)
}
