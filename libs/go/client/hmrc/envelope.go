package hmrc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/filing-api/libs/go/constants"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	NamespaceEnvelope = "http://www.govtalk.gov.uk/CM/envelope"
	NamespaceCT       = "http://www.govtalk.gov.uk/taxation/CT/5"

	MessageClass    = "HMRC-CT-CT600"
	EnvelopeVersion = "2.0"

	QualifierRequest         = "request"
	QualifierPoll            = "poll"
	QualifierAcknowledgement = "acknowledgement"
	QualifierResponse        = "response"
	QualifierError           = "error"

	FunctionSubmit = "submit"
	FunctionDelete = "delete"

	irmarkPlaceholder = "IRMARK-PLACEHOLDER-7f3c1e9a"
)

var utrPattern = regexp.MustCompile(`^\d{10}$`)

// Credentials are the Government Gateway sender details and the software
// identity reported in ChannelRouting.
type Credentials struct {
	SenderID       string
	Password       string
	VendorID       string
	ProductName    string
	ProductVersion string
}

// Envelope is a finished, signed GovTalk message ready to post.
type Envelope struct {
	XML           []byte
	CorrelationID string
	IRmark        string
	IRmarkBase32  string
	TestMode      bool
}

// BuildOption customises a tax return envelope.
type BuildOption func(*buildOptions)

type buildOptions struct {
	correlationID string
	accounts      []byte
	computations  []byte
}

// WithCorrelationID fixes the correlation id instead of generating one.
func WithCorrelationID(id string) BuildOption {
	return func(o *buildOptions) { o.correlationID = id }
}

// WithAttachedAccounts attaches an inline XBRL accounts document to the return.
func WithAttachedAccounts(xhtml []byte) BuildOption {
	return func(o *buildOptions) { o.accounts = xhtml }
}

// WithAttachedComputations attaches an inline XBRL tax computation document.
func WithAttachedComputations(xhtml []byte) BuildOption {
	return func(o *buildOptions) { o.computations = xhtml }
}

// EnvelopeBuilder turns a computation into a submittable CT600 envelope.
type EnvelopeBuilder struct {
	creds Credentials
}

// NewEnvelopeBuilder creates a builder for the given sender credentials
func NewEnvelopeBuilder(creds Credentials) *EnvelopeBuilder {
	return &EnvelopeBuilder{creds: creds}
}

// NewCorrelationID returns a 32 character upper-case hex id.
func NewCorrelationID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Build serializes the return, computes its IRmark over the canonical body
// and substitutes the mark into the serialized bytes. The envelope is never
// re-serialized after the mark is computed.
func (b *EnvelopeBuilder) Build(computation *business.TaxComputation, company business.CompanyInfo, testMode bool, opts ...BuildOption) (*Envelope, error) {
	if violations := validateReturnInputs(computation, company); len(violations) > 0 {
		return nil, &business.ValidationError{Violations: violations}
	}

	options := buildOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	correlationID := options.correlationID
	if correlationID == "" {
		correlationID = NewCorrelationID()
	}

	msg := b.message(QualifierRequest, FunctionSubmit, correlationID, testMode)
	msg.GovTalkDetails.Keys = []key{{Type: "UTR", Value: company.UTR}}
	msg.Body = &body{IRenvelope: b.irEnvelope(computation, company, options)}

	serialized, err := marshal(msg)
	if err != nil {
		return nil, &business.IntegrityMarkComputationError{Stage: "serialize", Err: err}
	}

	mark, err := ComputeIRmark(serialized)
	if err != nil {
		return nil, err
	}

	signed := bytes.Replace(serialized, []byte(irmarkPlaceholder), []byte(mark.Base64), 1)
	if bytes.Equal(signed, serialized) {
		return nil, &business.IntegrityMarkComputationError{Stage: "substitute", Err: errors.New("irmark placeholder not found in serialized envelope")}
	}

	return &Envelope{
		XML:           signed,
		CorrelationID: correlationID,
		IRmark:        mark.Base64,
		IRmarkBase32:  mark.Base32,
		TestMode:      testMode,
	}, nil
}

// BuildPoll builds the empty-bodied poll message for an earlier submission.
func (b *EnvelopeBuilder) BuildPoll(correlationID string, testMode bool) ([]byte, error) {
	if strings.TrimSpace(correlationID) == "" {
		return nil, errors.New("correlation id is required to poll")
	}
	msg := b.message(QualifierPoll, FunctionSubmit, correlationID, testMode)
	msg.Header.SenderDetails = nil
	msg.Body = &body{}
	return marshal(msg)
}

// BuildDelete builds the request that removes a completed submission from
// the gateway's response queue.
func (b *EnvelopeBuilder) BuildDelete(correlationID string, testMode bool) ([]byte, error) {
	if strings.TrimSpace(correlationID) == "" {
		return nil, errors.New("correlation id is required to delete")
	}
	msg := b.message(QualifierRequest, FunctionDelete, correlationID, testMode)
	msg.Header.SenderDetails = nil
	msg.Body = &body{}
	return marshal(msg)
}

func (b *EnvelopeBuilder) message(qualifier, function, correlationID string, testMode bool) *govTalkMessage {
	gatewayTest := 0
	if testMode {
		gatewayTest = 1
	}
	return &govTalkMessage{
		EnvelopeVersion: EnvelopeVersion,
		Header: header{
			MessageDetails: messageDetails{
				Class:          MessageClass,
				Qualifier:      qualifier,
				Function:       function,
				CorrelationID:  correlationID,
				Transformation: "XML",
				GatewayTest:    gatewayTest,
			},
			SenderDetails: &senderDetails{
				IDAuthentication: idAuthentication{
					SenderID: b.creds.SenderID,
					Authentication: authentication{
						Method: "clear",
						Role:   "principal",
						Value:  b.creds.Password,
					},
				},
			},
		},
		GovTalkDetails: govTalkDetails{
			TargetDetails: &targetDetails{Organisation: "HMRC"},
			ChannelRouting: &channelRouting{
				Channel: channel{
					URI:     b.creds.VendorID,
					Product: b.creds.ProductName,
					Version: b.creds.ProductVersion,
				},
			},
		},
	}
}

func (b *EnvelopeBuilder) irEnvelope(c *business.TaxComputation, company business.CompanyInfo, options buildOptions) *irEnvelope {
	declarantStatus := company.DeclarantStatus
	if declarantStatus == "" {
		declarantStatus = constants.DeclarantDirector
	}

	ret := companyTaxReturn{
		ReturnType: "new",
		CompanyInformation: companyInformation{
			CompanyName:        company.CompanyName,
			RegistrationNumber: company.CompanyNumber,
			Reference:          company.UTR,
			CompanyType:        company.CompanyType,
			PeriodCovered: periodCovered{
				From: c.PeriodStart.Format(dateLayout),
				To:   c.PeriodEnd.Format(dateLayout),
			},
		},
		ReturnInfoSummary: returnInfoSummary{
			Accounts:     attachmentFlag(options.accounts),
			Computations: attachmentFlag(options.computations),
		},
		Turnover: turnover{Total: money(c.Turnover)},
		CompanyTaxCalculation: companyTaxCalculation{
			Income: income{
				Trading: trading{
					Profits:              money(floor(c.TradingProfit)),
					LossesBroughtForward: money(c.LossesUtilised),
					NetProfits:           money(floor(c.TradingProfit.Sub(c.LossesUtilised))),
				},
			},
			ProfitsBeforeOtherDeductions: money(floor(c.AdjustedProfit)),
			ChargeableProfits:            money(c.ChargeableProfit),
			CorporationTaxChargeable: corporationTaxChargeable{
				FinancialYearOne: financialYear{
					Year: c.FinancialYear,
					Details: financialYearDetails{
						Profit:  money(c.ChargeableProfit),
						TaxRate: c.AppliedRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
						Tax:     money(c.TaxBeforeRelief),
					},
				},
			},
			CorporationTax:              money(c.TaxBeforeRelief),
			MarginalRelief:              optionalMoney(c.MarginalReliefApplied, c.MarginalRelief),
			CorporationTaxNetOfRelief:   money(c.TaxAfterMarginalRelief),
			NetCorporationTaxChargeable: money(c.TaxDue),
		},
		CalculationOfTaxOutstandingOrOverpaid: taxOutstanding{
			NetCorporationTaxLiability: money(c.TaxDue),
			TaxChargeable:              money(c.TaxDue),
			TaxPayable:                 money(c.TaxDue),
		},
		Declaration: declaration{
			AcceptDeclaration: "yes",
			Name:              company.DeclarantName,
			Status:            declarantStatus,
		},
	}
	if !c.TotalReliefs.IsZero() {
		ret.CompanyTaxCalculation.ReliefsAndDeductions = &reliefs{
			ResearchAndDevelopment: money(c.RDRelief),
			PatentBox:              money(c.PatentBoxRelief),
			Total:                  money(c.TotalReliefs),
		}
	}
	if len(options.accounts) > 0 || len(options.computations) > 0 {
		ret.AttachedFiles = &attachedFiles{XBRLSubmission: xbrlSubmission{
			Computation: inlineDocument(options.computations),
			Accounts:    inlineDocument(options.accounts),
		}}
	}

	return &irEnvelope{
		IRheader: irHeader{
			Keys:            []key{{Type: "UTR", Value: company.UTR}},
			PeriodEnd:       c.PeriodEnd.Format(dateLayout),
			DefaultCurrency: constants.GBPCurrency,
			IRmark:          irmark{Type: "generic", Value: irmarkPlaceholder},
			Sender:          "Company",
		},
		CompanyTaxReturn: ret,
	}
}

func validateReturnInputs(c *business.TaxComputation, company business.CompanyInfo) []business.FieldViolation {
	var violations []business.FieldViolation
	if c == nil {
		return append(violations, business.FieldViolation{Field: "computation", Message: "is required"})
	}
	if !utrPattern.MatchString(company.UTR) {
		violations = append(violations, business.FieldViolation{Field: "utr", Message: "must be 10 digits"})
	}
	if strings.TrimSpace(company.CompanyName) == "" {
		violations = append(violations, business.FieldViolation{Field: "company_name", Message: "is required"})
	}
	if strings.TrimSpace(company.DeclarantName) == "" {
		violations = append(violations, business.FieldViolation{Field: "declarant_name", Message: "is required"})
	}
	if c.PeriodStart.IsZero() || c.PeriodEnd.IsZero() {
		violations = append(violations, business.FieldViolation{Field: "period", Message: "computation has no accounting period"})
	}
	return violations
}

func marshal(msg *govTalkMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(msg); err != nil {
		return nil, errors.Wrap(err, "failed to encode govtalk message")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush govtalk message")
	}
	return buf.Bytes(), nil
}

const dateLayout = "2006-01-02"

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(present bool, d decimal.Decimal) string {
	if !present {
		return ""
	}
	return money(d)
}

func floor(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func attachmentFlag(doc []byte) string {
	if len(doc) == 0 {
		return ""
	}
	return "yes"
}

func inlineDocument(doc []byte) *encodedInstance {
	if len(doc) == 0 {
		return nil
	}
	return &encodedInstance{Instance: instance{EncodedInlineXBRLDocument: encodeBase64(doc)}}
}

func (e *Envelope) String() string {
	return fmt.Sprintf("Envelope{CorrelationID: %s, IRmark: %s, TestMode: %t}", e.CorrelationID, e.IRmark, e.TestMode)
}
