package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgerline/filing-api/libs/go/client/hmrc"
	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"github.com/ledgerline/filing-api/libs/go/ixbrl"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FilingService ties the computation engine, the accounts pipeline and the
// two gateway clients together. Either gateway may be nil when the caller
// only needs the offline operations.
type FilingService struct {
	tax        *TaxComputationService
	classifier *EntityClassifier
	builder    *AccountsDocumentBuilder
	validator  *AccountsValidator
	hmrc       interfaces.TaxReturnGateway
	registrar  interfaces.RegistrarGateway
	logger     *zap.Logger
}

var _ interfaces.FilingService = (*FilingService)(nil)

// ErrGatewayNotConfigured is returned when an operation needs a gateway
// client the service was built without.
var ErrGatewayNotConfigured = errors.New("gateway client is not configured")

// NewFilingService creates a new filing service
func NewFilingService(taxGateway interfaces.TaxReturnGateway, registrar interfaces.RegistrarGateway) *FilingService {
	classifier := NewEntityClassifier()
	return &FilingService{
		tax:        NewTaxComputationService(),
		classifier: classifier,
		builder:    NewAccountsDocumentBuilder(classifier),
		validator:  NewAccountsValidator(),
		hmrc:       taxGateway,
		registrar:  registrar,
		logger:     logger.L(),
	}
}

// ComputeTax validates and computes a single period. Every build and submit
// path goes through here, so invalid figures never reach an envelope.
func (s *FilingService) ComputeTax(ctx context.Context, data business.FinancialData) (*business.TaxComputation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if violations := s.tax.Validate(data); len(violations) > 0 {
		return nil, &business.ValidationError{Violations: violations}
	}
	return s.tax.Compute(data)
}

// ComputeTaxBatch validates every record up front, then computes them
// concurrently keeping input order. Violations are reported per record as
// records[i].field.
func (s *FilingService) ComputeTaxBatch(ctx context.Context, records []business.FinancialData) ([]*business.TaxComputation, error) {
	var violations []business.FieldViolation
	for i, data := range records {
		for _, v := range s.tax.Validate(data) {
			v.Field = fmt.Sprintf("records[%d].%s", i, v.Field)
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		return nil, &business.ValidationError{Violations: violations}
	}
	return s.tax.ComputeBatch(ctx, records)
}

// BuildTaxReturn computes the liability and wraps it in a signed CT600
// envelope without sending it.
func (s *FilingService) BuildTaxReturn(ctx context.Context, data business.FinancialData, company business.CompanyInfo) (*business.AnnualFilingPackage, error) {
	if s.hmrc == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "hmrc")
	}
	computation, err := s.ComputeTax(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.packageReturn(computation, company, nil)
}

// SubmitTaxReturn builds and submits a return in one step.
func (s *FilingService) SubmitTaxReturn(ctx context.Context, data business.FinancialData, company business.CompanyInfo) (*business.SubmissionResult, error) {
	if s.hmrc == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "hmrc")
	}
	computation, err := s.ComputeTax(ctx, data)
	if err != nil {
		return nil, err
	}
	env, err := s.hmrc.Build(computation, company)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submitting corporation tax return",
		zap.String("correlation_id", env.CorrelationID),
		zap.String("company_number", company.CompanyNumber),
		zap.String("tax_due", computation.TaxDue.StringFixed(2)),
		zap.Bool("test_mode", env.TestMode))

	return s.hmrc.Submit(ctx, env)
}

// PollTaxReturn polls an earlier submission. An empty endpoint polls the
// configured endpoint rather than the one returned at submission. Once the
// submission is accepted or rejected it is removed from the gateway queue;
// a failed delete is logged and does not fail the poll.
func (s *FilingService) PollTaxReturn(ctx context.Context, correlationID, endpoint string) (*business.SubmissionResult, error) {
	if s.hmrc == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "hmrc")
	}
	var (
		result *business.SubmissionResult
		err    error
	)
	if strings.TrimSpace(endpoint) == "" {
		result, err = s.hmrc.Poll(ctx, correlationID)
	} else {
		result, err = s.hmrc.PollAt(ctx, correlationID, endpoint)
	}
	if err != nil || result == nil || !result.Status.IsTerminal() {
		return result, err
	}

	// The gateway keeps decided responses queued until they are deleted.
	if delErr := s.hmrc.Delete(ctx, correlationID); delErr != nil {
		s.logger.Warn("Failed to delete decided submission from gateway queue",
			zap.String("correlation_id", correlationID),
			zap.Error(delErr))
	}
	return result, nil
}

// PrepareAccounts classifies, builds, validates and renders an accounts
// document. A document that fails validation is returned with its result
// alongside a StructuralValidationError and is never rendered.
func (s *FilingService) PrepareAccounts(ctx context.Context, input business.AccountsInput) (*business.PreparedAccounts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := s.builder.EntitySize(input)
	doc, err := s.builder.Build(input)
	if err != nil {
		return nil, err
	}

	result := s.validator.Validate(doc, size)
	prepared := &business.PreparedAccounts{
		EntitySize: size,
		FactCount:  len(doc.Facts()),
		Validation: result,
	}
	if !result.IsValid {
		s.logger.Warn("Accounts document failed validation",
			zap.String("company_number", input.CompanyNumber),
			zap.String("entity_size", string(size)),
			zap.Int("errors", len(result.Errors)))
		return prepared, &business.StructuralValidationError{Result: result}
	}

	xhtml, err := ixbrl.Render(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render accounts document")
	}
	prepared.XHTML = xhtml
	return prepared, nil
}

// ValidateAccounts checks an inline XBRL document produced elsewhere.
func (s *FilingService) ValidateAccounts(ctx context.Context, xhtml []byte, size business.EntitySize) (*business.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := ixbrl.ParseBytes(xhtml)
	if err != nil {
		result := business.NewValidationResult()
		result.AddError(CodeMalformedDocument, "document", "document could not be parsed: %v", err)
		return result, nil
	}
	return s.validator.Validate(doc, size), nil
}

// SubmitAccounts prepares the accounts and files them with the registrar.
// Nothing is sent unless the document validates.
func (s *FilingService) SubmitAccounts(ctx context.Context, input business.AccountsInput, company business.CompanyInfo) (*business.SubmissionResult, error) {
	if s.registrar == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "companies house")
	}
	prepared, err := s.PrepareAccounts(ctx, input)
	if err != nil {
		return nil, err
	}

	if company.CompanyNumber == "" {
		company.CompanyNumber = input.CompanyNumber
	}
	if company.CompanyName == "" {
		company.CompanyName = input.CompanyName
	}
	env, err := s.registrar.BuildAccounts(company, *input.PeriodEnd, prepared.XHTML)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submitting accounts",
		zap.String("correlation_id", env.CorrelationID),
		zap.String("submission_number", env.SubmissionNumber),
		zap.String("company_number", company.CompanyNumber),
		zap.String("entity_size", string(prepared.EntitySize)))

	return s.registrar.Submit(ctx, env)
}

// SubmitConfirmationStatement files a no-change confirmation statement.
func (s *FilingService) SubmitConfirmationStatement(ctx context.Context, input business.ConfirmationStatementInput) (*business.SubmissionResult, error) {
	if s.registrar == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "companies house")
	}
	env, err := s.registrar.BuildConfirmationStatement(input)
	if err != nil {
		return nil, err
	}
	return s.registrar.Submit(ctx, env)
}

// PollRegistrar reports the examination outcome of a registrar submission.
func (s *FilingService) PollRegistrar(ctx context.Context, submissionNumber, correlationID string) (*business.SubmissionResult, error) {
	if s.registrar == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "companies house")
	}
	return s.registrar.GetSubmissionStatus(ctx, submissionNumber, correlationID)
}

// PrepareAnnualFiling computes the tax return and prepares the accounts
// concurrently. The rendered accounts are attached to the CT600 envelope,
// so the envelope is built once both halves have finished.
func (s *FilingService) PrepareAnnualFiling(ctx context.Context, data business.FinancialData, company business.CompanyInfo, accounts business.AccountsInput) (*business.AnnualFilingPackage, error) {
	if s.hmrc == nil {
		return nil, errors.Wrap(ErrGatewayNotConfigured, "hmrc")
	}

	var (
		computation *business.TaxComputation
		prepared    *business.PreparedAccounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.ComputeTax(gctx, data)
		if err != nil {
			return errors.Wrap(err, "tax computation")
		}
		computation = c
		return nil
	})
	g.Go(func() error {
		p, err := s.PrepareAccounts(gctx, accounts)
		if err != nil {
			return errors.Wrap(err, "accounts")
		}
		prepared = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pkg, err := s.packageReturn(computation, company, prepared.XHTML)
	if err != nil {
		return nil, err
	}
	pkg.Accounts = prepared
	return pkg, nil
}

func (s *FilingService) packageReturn(computation *business.TaxComputation, company business.CompanyInfo, accounts []byte) (*business.AnnualFilingPackage, error) {
	var opts []hmrc.BuildOption
	if len(accounts) > 0 {
		opts = append(opts, hmrc.WithAttachedAccounts(accounts))
	}
	env, err := s.hmrc.Build(computation, company, opts...)
	if err != nil {
		return nil, err
	}
	return &business.AnnualFilingPackage{
		TaxComputation: computation,
		CorrelationID:  env.CorrelationID,
		IRmark:         env.IRmark,
		IRmarkBase32:   env.IRmarkBase32,
		TaxReturnXML:   env.XML,
	}, nil
}
