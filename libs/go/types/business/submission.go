package business

import "time"

// Gateway identifies the remote filing endpoint a submission was sent to
type Gateway string

const (
	GatewayHMRC           Gateway = "hmrc"
	GatewayCompaniesHouse Gateway = "companies_house"
)

// SubmissionStatus is the lifecycle state of a submission.
//
// pending -> processing -> accepted | rejected, with acknowledged as an
// intermediate state and error for transport or parse failures.
type SubmissionStatus string

const (
	SubmissionStatusPending      SubmissionStatus = "pending"
	SubmissionStatusProcessing   SubmissionStatus = "processing"
	SubmissionStatusAcknowledged SubmissionStatus = "acknowledged"
	SubmissionStatusAccepted     SubmissionStatus = "accepted"
	SubmissionStatusRejected     SubmissionStatus = "rejected"
	SubmissionStatusError        SubmissionStatus = "error"
)

// IsTerminal reports whether no further polling can change the status
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusAccepted || s == SubmissionStatusRejected
}

// IsInFlight reports whether the submission should be polled again
func (s SubmissionStatus) IsInFlight() bool {
	return s == SubmissionStatusPending || s == SubmissionStatusProcessing || s == SubmissionStatusAcknowledged
}

// GatewayErrorDetail is a single error returned by a gateway, kept verbatim
// alongside the friendly rendering of its code.
type GatewayErrorDetail struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	Severity        string `json:"severity,omitempty"`
	Location        string `json:"location,omitempty"`
	RaisedBy        string `json:"raised_by,omitempty"`
	FriendlyMessage string `json:"friendly_message,omitempty"`
	SuggestedAction string `json:"suggested_action,omitempty"`
}

// SubmissionResult is the normalized outcome of a submit or poll call
type SubmissionResult struct {
	CorrelationID    string               `json:"correlation_id"`
	Gateway          Gateway              `json:"gateway"`
	Status           SubmissionStatus     `json:"status"`
	Qualifier        string               `json:"qualifier,omitempty"`
	Errors           []GatewayErrorDetail `json:"errors,omitempty"`
	Reference        string               `json:"reference,omitempty"`
	Barcode          string               `json:"barcode,omitempty"`
	SubmissionNumber string               `json:"submission_number,omitempty"`
	IRmark           string               `json:"irmark,omitempty"`
	PollInterval     time.Duration        `json:"poll_interval,omitempty"`
	PollURL          string               `json:"poll_url,omitempty"`
	ReceivedAt       time.Time            `json:"received_at"`
}

// HasErrors reports whether the gateway returned any error entries
func (r *SubmissionResult) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// ErrorCodes lists the gateway error codes in the order they were returned
func (r *SubmissionResult) ErrorCodes() []string {
	if r == nil {
		return nil
	}
	codes := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		codes = append(codes, e.Code)
	}
	return codes
}

// PreparedAccounts is an accounts document that has been built, validated
// and rendered. XHTML is empty when validation failed.
type PreparedAccounts struct {
	EntitySize EntitySize        `json:"entity_size"`
	XHTML      []byte            `json:"-"`
	FactCount  int               `json:"fact_count"`
	Validation *ValidationResult `json:"validation"`
}

// AnnualFilingPackage bundles the artifacts prepared for a single period end.
type AnnualFilingPackage struct {
	TaxComputation *TaxComputation   `json:"tax_computation"`
	CorrelationID  string            `json:"correlation_id"`
	IRmark         string            `json:"irmark"`
	IRmarkBase32   string            `json:"irmark_base32"`
	TaxReturnXML   []byte            `json:"-"`
	Accounts       *PreparedAccounts `json:"accounts"`
}
