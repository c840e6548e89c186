// Package companieshouse files accounts and confirmation statements through
// the Companies House XML gateway.
package companieshouse

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/filing-api/libs/go/constants"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
)

const (
	NamespaceEnvelope = "http://www.govtalk.gov.uk/CM/envelope"
	NamespaceHeader   = "http://xmlgw.companieshouse.gov.uk/Header"
	NamespaceGateway  = "http://xmlgw.companieshouse.gov.uk"

	EnvelopeVersion = "1.0"

	ClassAccounts              = constants.FormAccounts
	ClassConfirmationStatement = constants.FormConfirmationStatement
	ClassGetSubmissionStatus   = constants.FormSubmissionStatus

	QualifierRequest         = "request"
	QualifierAcknowledgement = "acknowledgement"
	QualifierResponse        = "response"
	QualifierError           = "error"

	AuthMethod = "CHMD5"

	// TestPackageReference is the package number the sandbox gateway
	// requires on every test submission.
	TestPackageReference = "0012"

	submissionNumberLength = 6
)

var companyNumberPattern = regexp.MustCompile(`^([0-9]{8}|[A-Z]{2}[0-9]{6})$`)

// Credentials identify the presenter account and its contact details.
type Credentials struct {
	PresenterID       string
	PresenterAuthCode string
	EmailAddress      string
	PackageReference  string
	ContactName       string
	ContactNumber     string
}

// Envelope is a finished Companies House message ready to post.
type Envelope struct {
	XML              []byte
	Class            string
	CorrelationID    string
	SubmissionNumber string
	TestMode         bool
}

func (e *Envelope) String() string {
	return fmt.Sprintf("Envelope{Class: %s, CorrelationID: %s, SubmissionNumber: %s, TestMode: %t}", e.Class, e.CorrelationID, e.SubmissionNumber, e.TestMode)
}

// BuildOption customises a registrar envelope.
type BuildOption func(*buildOptions)

type buildOptions struct {
	correlationID    string
	submissionNumber string
	signed           time.Time
}

// WithCorrelationID fixes the transaction id instead of generating one.
func WithCorrelationID(id string) BuildOption {
	return func(o *buildOptions) { o.correlationID = id }
}

// WithSubmissionNumber fixes the presenter's submission number.
func WithSubmissionNumber(n string) BuildOption {
	return func(o *buildOptions) { o.submissionNumber = n }
}

// WithDateSigned sets the signature date reported in the form submission.
func WithDateSigned(t time.Time) BuildOption {
	return func(o *buildOptions) { o.signed = t }
}

// EnvelopeBuilder produces Companies House GovTalk messages.
type EnvelopeBuilder struct {
	creds Credentials
	now   func() time.Time
}

// NewEnvelopeBuilder creates a builder for the given presenter credentials
func NewEnvelopeBuilder(creds Credentials) *EnvelopeBuilder {
	return &EnvelopeBuilder{creds: creds, now: time.Now}
}

// NewCorrelationID returns a 32 character upper-case hex id.
func NewCorrelationID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// SubmissionNumber derives the six character presenter submission number
// from a correlation id. Short ids are left padded with zeros.
func SubmissionNumber(correlationID string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(correlationID) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
		if b.Len() == submissionNumberLength {
			break
		}
	}
	return strings.Repeat("0", submissionNumberLength-b.Len()) + b.String()
}

// BuildAccounts wraps a rendered inline XBRL accounts document in an
// Accounts form submission.
func (b *EnvelopeBuilder) BuildAccounts(company business.CompanyInfo, madeUpDate time.Time, accounts []byte, testMode bool, opts ...BuildOption) (*Envelope, error) {
	violations := validateCompany(company.CompanyNumber, company.CompanyName, company.AuthenticationCode)
	if len(bytes.TrimSpace(accounts)) == 0 {
		violations = append(violations, business.FieldViolation{Field: "accounts", Message: "document is required"})
	}
	if madeUpDate.IsZero() {
		violations = append(violations, business.FieldViolation{Field: "made_up_date", Message: "is required"})
	}
	violations = append(violations, b.presenterViolations(testMode)...)
	if len(violations) > 0 {
		return nil, &business.ValidationError{Violations: violations}
	}

	options := b.options(opts)
	submission := b.formSubmission(company.CompanyNumber, company.CompanyName, company.AuthenticationCode, constants.FormAccounts, options, testMode)
	submission.Document = &document{
		Data:        base64.StdEncoding.EncodeToString(accounts),
		Date:        madeUpDate.Format(dateLayout),
		Filename:    fmt.Sprintf("accounts-%s-%s.xhtml", company.CompanyNumber, madeUpDate.Format("20060102")),
		ContentType: "application/xml",
		Category:    "ACCOUNTS",
	}

	return b.envelope(ClassAccounts, submission, options, testMode)
}

// BuildConfirmationStatement builds a no-change confirmation statement.
func (b *EnvelopeBuilder) BuildConfirmationStatement(input business.ConfirmationStatementInput, testMode bool, opts ...BuildOption) (*Envelope, error) {
	violations := validateCompany(input.CompanyNumber, input.CompanyName, input.AuthenticationCode)
	if input.ReviewDate.IsZero() {
		violations = append(violations, business.FieldViolation{Field: "review_date", Message: "is required"})
	}
	if len(input.SICCodes) > 4 {
		violations = append(violations, business.FieldViolation{Field: "sic_codes", Message: "at most four codes may be declared"})
	}
	if !input.NoUpdatesRequired {
		violations = append(violations, business.FieldViolation{Field: "no_updates_required", Message: "statements with changes must be filed with their change forms"})
	}
	violations = append(violations, b.presenterViolations(testMode)...)
	if len(violations) > 0 {
		return nil, &business.ValidationError{Violations: violations}
	}

	options := b.options(opts)
	submission := b.formSubmission(input.CompanyNumber, input.CompanyName, input.AuthenticationCode, constants.FormConfirmationStatement, options, testMode)
	statement := &confirmationStatement{
		TradingOnMarket:   input.TradingOnMarket,
		ReviewDate:        input.ReviewDate.Format(dateLayout),
		StateConfirmation: true,
	}
	if len(input.SICCodes) > 0 {
		statement.SICCodes = &sicCodes{Codes: input.SICCodes}
	}
	submission.Form.ConfirmationStatement = statement

	return b.envelope(ClassConfirmationStatement, submission, options, testMode)
}

// BuildStatusRequest asks for the status of one submission, or of every
// outstanding submission when submissionNumber is empty.
func (b *EnvelopeBuilder) BuildStatusRequest(submissionNumber, correlationID string, testMode bool) ([]byte, error) {
	if correlationID == "" {
		correlationID = NewCorrelationID()
	}
	msg := b.message(ClassGetSubmissionStatus, correlationID, testMode)
	msg.Body.GetSubmissionStatus = &getSubmissionStatus{
		SubmissionNumber: submissionNumber,
		PresenterID:      digest(b.creds.PresenterID),
	}
	return marshal(msg)
}

func (b *EnvelopeBuilder) options(opts []BuildOption) buildOptions {
	options := buildOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.correlationID == "" {
		options.correlationID = NewCorrelationID()
	}
	if options.submissionNumber == "" {
		options.submissionNumber = SubmissionNumber(options.correlationID)
	}
	if options.signed.IsZero() {
		options.signed = b.now()
	}
	return options
}

func (b *EnvelopeBuilder) formSubmission(number, name, authCode, formID string, options buildOptions, testMode bool) *formSubmission {
	return &formSubmission{
		FormHeader: formHeader{
			CompanyNumber:             number,
			CompanyName:               strings.ToUpper(strings.TrimSpace(name)),
			CompanyAuthenticationCode: authCode,
			PackageReference:          b.packageReference(testMode),
			Language:                  "EN",
			FormIdentifier:            formID,
			SubmissionNumber:          options.submissionNumber,
			ContactName:               b.creds.ContactName,
			ContactNumber:             b.creds.ContactNumber,
		},
		DateSigned: options.signed.Format(dateLayout),
	}
}

func (b *EnvelopeBuilder) envelope(class string, submission *formSubmission, options buildOptions, testMode bool) (*Envelope, error) {
	msg := b.message(class, options.correlationID, testMode)
	msg.Body.FormSubmission = submission

	serialized, err := marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		XML:              serialized,
		Class:            class,
		CorrelationID:    options.correlationID,
		SubmissionNumber: options.submissionNumber,
		TestMode:         testMode,
	}, nil
}

func (b *EnvelopeBuilder) message(class, correlationID string, testMode bool) *govTalkMessage {
	gatewayTest := 0
	if testMode {
		gatewayTest = 1
	}
	return &govTalkMessage{
		EnvelopeVersion: EnvelopeVersion,
		Header: header{
			MessageDetails: messageDetails{
				Class:         class,
				Qualifier:     QualifierRequest,
				TransactionID: correlationID,
				GatewayTest:   gatewayTest,
			},
			SenderDetails: senderDetails{
				IDAuthentication: idAuthentication{
					SenderID: digest(b.creds.PresenterID),
					Authentication: authentication{
						Method: AuthMethod,
						Value:  digest(b.creds.PresenterAuthCode),
					},
				},
				EmailAddress: b.creds.EmailAddress,
			},
		},
	}
}

// packageReference is the fixed sandbox value in test mode. Live filings
// carry the presenter's own reference, checked by presenterViolations.
func (b *EnvelopeBuilder) packageReference(testMode bool) string {
	if testMode {
		return TestPackageReference
	}
	return b.creds.PackageReference
}

func (b *EnvelopeBuilder) presenterViolations(testMode bool) []business.FieldViolation {
	if testMode || strings.TrimSpace(b.creds.PackageReference) != "" {
		return nil
	}
	return []business.FieldViolation{{Field: "package_reference", Message: "is required for live filings"}}
}

func validateCompany(number, name, authCode string) []business.FieldViolation {
	var violations []business.FieldViolation
	if !companyNumberPattern.MatchString(number) {
		violations = append(violations, business.FieldViolation{Field: "company_number", Message: "must be 8 digits or 2 letters and 6 digits"})
	}
	if strings.TrimSpace(name) == "" {
		violations = append(violations, business.FieldViolation{Field: "company_name", Message: "is required"})
	}
	if len(authCode) != 6 {
		violations = append(violations, business.FieldViolation{Field: "authentication_code", Message: "must be 6 characters"})
	}
	return violations
}

// digest is the CHMD5 form of a credential: lower-case hex MD5.
func digest(value string) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

func marshal(msg *govTalkMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(msg); err != nil {
		return nil, errors.Wrap(err, "failed to encode companies house message")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush companies house message")
	}
	return buf.Bytes(), nil
}

const dateLayout = "2006-01-02"
