// Package hmrc submits CT600 corporation tax returns to the HMRC
// Transaction Engine using the GovTalk envelope protocol.
package hmrc

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	httpclient "github.com/ledgerline/filing-api/libs/go/client/http"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
)

// Transaction Engine endpoints.
const (
	LiveSubmissionURL = "https://transaction-engine.tax.service.gov.uk/submission"
	LivePollURL       = "https://transaction-engine.tax.service.gov.uk/poll"
	TestSubmissionURL = "https://test-transaction-engine.tax.service.gov.uk/submission"
	TestPollURL       = "https://test-transaction-engine.tax.service.gov.uk/poll"
)

// Config selects the gateway environment. Empty URLs fall back to the
// published endpoints for the chosen mode.
type Config struct {
	TestMode      bool
	SubmissionURL string
	PollURL       string
	Timeout       time.Duration
}

// Client talks to the Transaction Engine. It holds no per-submission state;
// every call gets what it needs from its arguments.
type Client struct {
	cfg     Config
	builder *EnvelopeBuilder
	http    *httpclient.HTTPClient
	log     *logger.GatewayLogger
	now     func() time.Time
}

// NewClient creates a new HMRC gateway client
func NewClient(cfg Config, builder *EnvelopeBuilder, options ...httpclient.ClientOption) *Client {
	if cfg.Timeout > 0 {
		options = append([]httpclient.ClientOption{httpclient.WithTimeout(cfg.Timeout)}, options...)
	}
	return &Client{
		cfg:     cfg,
		builder: builder,
		http:    httpclient.NewHTTPClient(options...),
		log:     logger.ForGateway(string(business.GatewayHMRC)),
		now:     time.Now,
	}
}

// TestMode reports whether the client targets the test gateway.
func (c *Client) TestMode() bool { return c.cfg.TestMode }

// Build creates a signed envelope in the client's gateway mode.
func (c *Client) Build(computation *business.TaxComputation, company business.CompanyInfo, opts ...BuildOption) (*Envelope, error) {
	return c.builder.Build(computation, company, c.cfg.TestMode, opts...)
}

// Submit posts a signed envelope. The endpoint follows the envelope's own
// test flag. Transport failures return a GatewayHTTPError and an error
// status; gateway errors return a GatewayBusinessRejection and a rejected
// status with every error captured.
func (c *Client) Submit(ctx context.Context, env *Envelope) (*business.SubmissionResult, error) {
	if env == nil || len(env.XML) == 0 {
		return nil, &business.ValidationError{Violations: []business.FieldViolation{{Field: "envelope", Message: "is required"}}}
	}

	start := c.now()
	result := &business.SubmissionResult{
		CorrelationID: env.CorrelationID,
		Gateway:       business.GatewayHMRC,
		Status:        business.SubmissionStatusPending,
		IRmark:        env.IRmark,
	}

	raw, err := c.http.PostXML(ctx, c.submissionURL(env.TestMode), env.XML)
	result, err = c.interpret(ctx, result, raw, err, false)
	c.log.WithCorrelationID(result.CorrelationID).Call("submit", string(result.Status), c.now().Sub(start))
	return result, err
}

// Poll asks for the outcome of an earlier submission at the configured
// poll endpoint.
func (c *Client) Poll(ctx context.Context, correlationID string) (*business.SubmissionResult, error) {
	return c.PollAt(ctx, correlationID, "")
}

// PollAt polls a specific endpoint, normally the ResponseEndPoint returned
// with the acknowledgement. An empty endpoint uses the configured one.
func (c *Client) PollAt(ctx context.Context, correlationID, endpoint string) (*business.SubmissionResult, error) {
	msg, err := c.builder.BuildPoll(correlationID, c.cfg.TestMode)
	if err != nil {
		return nil, &business.ValidationError{Violations: []business.FieldViolation{{Field: "correlation_id", Message: err.Error()}}}
	}
	if endpoint == "" {
		endpoint = c.pollURL()
	}

	start := c.now()
	result := &business.SubmissionResult{
		CorrelationID: correlationID,
		Gateway:       business.GatewayHMRC,
		Status:        business.SubmissionStatusProcessing,
	}

	raw, err := c.http.PostXML(ctx, endpoint, msg)
	result, err = c.interpret(ctx, result, raw, err, true)
	c.log.WithCorrelationID(correlationID).Call("poll", string(result.Status), c.now().Sub(start))
	return result, err
}

// Delete removes a finished submission from the gateway's response queue.
func (c *Client) Delete(ctx context.Context, correlationID string) error {
	msg, err := c.builder.BuildDelete(correlationID, c.cfg.TestMode)
	if err != nil {
		return &business.ValidationError{Violations: []business.FieldViolation{{Field: "correlation_id", Message: err.Error()}}}
	}

	result := &business.SubmissionResult{CorrelationID: correlationID, Gateway: business.GatewayHMRC}
	raw, err := c.http.PostXML(ctx, c.submissionURL(c.cfg.TestMode), msg)
	_, err = c.interpret(ctx, result, raw, err, false)
	return err
}

func (c *Client) interpret(ctx context.Context, result *business.SubmissionResult, raw []byte, sendErr error, poll bool) (*business.SubmissionResult, error) {
	result.ReceivedAt = c.now()
	if sendErr != nil {
		return c.transportFailure(result, sendErr)
	}
	// A cancelled call must not report success even if a body arrived.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return c.transportFailure(result, ctxErr)
	}

	var resp govTalkResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return c.transportFailure(result, errors.Wrap(err, "failed to parse gateway response"))
	}

	details := resp.Header.MessageDetails
	if id := strings.TrimSpace(details.CorrelationID); id != "" {
		result.CorrelationID = id
	}
	result.Qualifier = strings.TrimSpace(details.Qualifier)
	if details.ResponseEndPoint.PollInterval > 0 {
		result.PollInterval = time.Duration(details.ResponseEndPoint.PollInterval) * time.Second
	}
	result.PollURL = strings.TrimSpace(details.ResponseEndPoint.URL)

	var rawErrors []govTalkError
	rawErrors = append(rawErrors, resp.GovTalkDetails.GovTalkErrors.Errors...)
	rawErrors = append(rawErrors, resp.Body.ErrorResponse.Errors...)
	if len(rawErrors) > 0 || result.Qualifier == QualifierError {
		result.Status = business.SubmissionStatusRejected
		result.Errors = toErrorDetails(rawErrors)
		c.log.WithCorrelationID(result.CorrelationID).Rejected(result.Qualifier, result.ErrorCodes())
		return result, &business.GatewayBusinessRejection{Gateway: business.GatewayHMRC, Result: result}
	}

	switch {
	case !poll && result.Qualifier == QualifierAcknowledgement:
		result.Status = business.SubmissionStatusAcknowledged
	case poll && result.Qualifier == QualifierResponse:
		result.Status = business.SubmissionStatusAccepted
		result.Reference = firstNonEmpty(resp.Body.SuccessResponse.IRmarkReceipt.Message, resp.Body.SuccessResponse.Message)
	default:
		result.Status = business.SubmissionStatusProcessing
	}
	return result, nil
}

func (c *Client) transportFailure(result *business.SubmissionResult, err error) (*business.SubmissionResult, error) {
	result.Status = business.SubmissionStatusError
	gwErr := &business.GatewayHTTPError{Gateway: business.GatewayHMRC, Err: err}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		gwErr.StatusCode = httpErr.StatusCode
		gwErr.Body = httpErr.Body
	}
	c.log.WithCorrelationID(result.CorrelationID).Failed("HMRC gateway call failed", err)
	return result, gwErr
}

func (c *Client) submissionURL(testMode bool) string {
	if c.cfg.SubmissionURL != "" {
		return c.cfg.SubmissionURL
	}
	if testMode {
		return TestSubmissionURL
	}
	return LiveSubmissionURL
}

func (c *Client) pollURL() string {
	if c.cfg.PollURL != "" {
		return c.cfg.PollURL
	}
	if c.cfg.TestMode {
		return TestPollURL
	}
	return LivePollURL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
