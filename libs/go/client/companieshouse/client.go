package companieshouse

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	httpclient "github.com/ledgerline/filing-api/libs/go/client/http"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// XML gateway endpoints.
const (
	LiveGatewayURL = "https://xmlgw.companieshouse.gov.uk/v1-0/xmlgw/Gateway"
	TestGatewayURL = "https://xmlgw.companieshouse.gov.uk/v1-0/xmlgw/TestGateway"
)

// Registrar status codes returned by GetSubmissionStatus.
const (
	StatusAccept          = "ACCEPT"
	StatusReject          = "REJECT"
	StatusPending         = "PENDING"
	StatusParked          = "PARKED"
	StatusInternalFailure = "INTERNAL_FAILURE"
)

// Config selects the gateway environment. An empty GatewayURL falls back
// to the published endpoint for the chosen mode.
type Config struct {
	TestMode   bool
	GatewayURL string
	Timeout    time.Duration
}

// Client posts envelopes to the Companies House XML gateway.
type Client struct {
	cfg     Config
	builder *EnvelopeBuilder
	http    *httpclient.HTTPClient
	log     *logger.GatewayLogger
	now     func() time.Time
}

// NewClient creates a new Companies House gateway client
func NewClient(cfg Config, builder *EnvelopeBuilder, options ...httpclient.ClientOption) *Client {
	if cfg.Timeout > 0 {
		options = append([]httpclient.ClientOption{httpclient.WithTimeout(cfg.Timeout)}, options...)
	}
	return &Client{
		cfg:     cfg,
		builder: builder,
		http:    httpclient.NewHTTPClient(options...),
		log:     logger.ForGateway(string(business.GatewayCompaniesHouse)),
		now:     time.Now,
	}
}

// TestMode reports whether the client targets the test gateway.
func (c *Client) TestMode() bool { return c.cfg.TestMode }

// BuildAccounts creates an accounts envelope in the client's gateway mode.
func (c *Client) BuildAccounts(company business.CompanyInfo, madeUpDate time.Time, accounts []byte, opts ...BuildOption) (*Envelope, error) {
	return c.builder.BuildAccounts(company, madeUpDate, accounts, c.cfg.TestMode, opts...)
}

// BuildConfirmationStatement creates a confirmation statement envelope in
// the client's gateway mode.
func (c *Client) BuildConfirmationStatement(input business.ConfirmationStatementInput, opts ...BuildOption) (*Envelope, error) {
	return c.builder.BuildConfirmationStatement(input, c.cfg.TestMode, opts...)
}

// Submit posts a form submission. The gateway only acknowledges receipt;
// the examination outcome arrives later through GetSubmissionStatus.
func (c *Client) Submit(ctx context.Context, env *Envelope) (*business.SubmissionResult, error) {
	if env == nil || len(env.XML) == 0 {
		return nil, &business.ValidationError{Violations: []business.FieldViolation{{Field: "envelope", Message: "is required"}}}
	}

	start := c.now()
	result := &business.SubmissionResult{
		CorrelationID:    env.CorrelationID,
		Gateway:          business.GatewayCompaniesHouse,
		Status:           business.SubmissionStatusPending,
		SubmissionNumber: env.SubmissionNumber,
	}

	raw, err := c.http.PostXML(ctx, c.gatewayURL(env.TestMode), env.XML)
	resp, result, err := c.decode(ctx, result, raw, err)
	if err == nil {
		result.Status = business.SubmissionStatusAcknowledged
		result.Barcode = strings.TrimSpace(resp.Body.Acknowledgement.Barcode)
	}
	c.log.WithCorrelationID(result.CorrelationID).Call(strings.ToLower(env.Class), string(result.Status), c.now().Sub(start))
	return result, err
}

// GetSubmissionStatus polls the examination outcome of one submission.
func (c *Client) GetSubmissionStatus(ctx context.Context, submissionNumber, correlationID string) (*business.SubmissionResult, error) {
	if strings.TrimSpace(submissionNumber) == "" {
		return nil, &business.ValidationError{Violations: []business.FieldViolation{{Field: "submission_number", Message: "is required"}}}
	}
	msg, err := c.builder.BuildStatusRequest(submissionNumber, correlationID, c.cfg.TestMode)
	if err != nil {
		return nil, err
	}

	start := c.now()
	result := &business.SubmissionResult{
		CorrelationID:    correlationID,
		Gateway:          business.GatewayCompaniesHouse,
		Status:           business.SubmissionStatusProcessing,
		SubmissionNumber: submissionNumber,
	}

	raw, err := c.http.PostXML(ctx, c.gatewayURL(c.cfg.TestMode), msg)
	resp, result, err := c.decode(ctx, result, raw, err)
	if err == nil {
		result, err = c.applyStatus(result, resp.Body.SubmissionStatus.Status)
	}
	c.log.WithCorrelationID(correlationID).Call("status", string(result.Status), c.now().Sub(start))
	return result, err
}

// decode maps transport failures and GovTalk level errors. A nil error
// means the envelope was accepted by the gateway and resp is populated.
func (c *Client) decode(ctx context.Context, result *business.SubmissionResult, raw []byte, sendErr error) (*govTalkResponse, *business.SubmissionResult, error) {
	result.ReceivedAt = c.now()
	if sendErr != nil {
		return nil, result, c.transportFailure(result, sendErr)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, result, c.transportFailure(result, ctxErr)
	}

	var resp govTalkResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return nil, result, c.transportFailure(result, errors.Wrap(err, "failed to parse gateway response"))
	}
	result.Qualifier = strings.TrimSpace(resp.Header.MessageDetails.Qualifier)

	if errs := resp.GovTalkDetails.GovTalkErrors.Errors; len(errs) > 0 || result.Qualifier == QualifierError {
		result.Status = business.SubmissionStatusRejected
		result.Errors = gatewayErrorDetails(errs)
		return &resp, result, c.rejection(result)
	}
	return &resp, result, nil
}

func (c *Client) applyStatus(result *business.SubmissionResult, statuses []submissionStatus) (*business.SubmissionResult, error) {
	var status *submissionStatus
	for i := range statuses {
		if strings.TrimSpace(statuses[i].SubmissionNumber) == result.SubmissionNumber {
			status = &statuses[i]
			break
		}
	}
	if status == nil {
		result.Status = business.SubmissionStatusProcessing
		return result, nil
	}

	switch strings.ToUpper(strings.TrimSpace(status.StatusCode)) {
	case StatusAccept:
		result.Status = business.SubmissionStatusAccepted
		result.Barcode = strings.TrimSpace(status.Barcode)
		result.Reference = result.Barcode
		return result, nil
	case StatusReject:
		result.Status = business.SubmissionStatusRejected
		result.Errors = rejectDetails(status.Rejections, status.Examiner.Comment)
		return result, c.rejection(result)
	case StatusInternalFailure:
		return result, c.transportFailure(result, errors.New("registrar reported an internal failure"))
	default:
		result.Status = business.SubmissionStatusProcessing
		return result, nil
	}
}

func (c *Client) rejection(result *business.SubmissionResult) error {
	c.log.WithCorrelationID(result.CorrelationID).
		With(zap.String("submission_number", result.SubmissionNumber)).
		Rejected(result.Qualifier, result.ErrorCodes())
	return &business.GatewayBusinessRejection{Gateway: business.GatewayCompaniesHouse, Result: result}
}

func (c *Client) transportFailure(result *business.SubmissionResult, err error) error {
	result.Status = business.SubmissionStatusError
	gwErr := &business.GatewayHTTPError{Gateway: business.GatewayCompaniesHouse, Err: err}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		gwErr.StatusCode = httpErr.StatusCode
		gwErr.Body = httpErr.Body
	}
	c.log.WithCorrelationID(result.CorrelationID).Failed("Companies House gateway call failed", err)
	return gwErr
}

func (c *Client) gatewayURL(testMode bool) string {
	if c.cfg.GatewayURL != "" {
		return c.cfg.GatewayURL
	}
	if testMode {
		return TestGatewayURL
	}
	return LiveGatewayURL
}
