package companieshouse

import "encoding/xml"

type govTalkMessage struct {
	XMLName         xml.Name       `xml:"http://www.govtalk.gov.uk/CM/envelope GovTalkMessage"`
	EnvelopeVersion string         `xml:"EnvelopeVersion"`
	Header          header         `xml:"Header"`
	GovTalkDetails  govTalkDetails `xml:"GovTalkDetails"`
	Body            body           `xml:"Body"`
}

type header struct {
	MessageDetails messageDetails `xml:"MessageDetails"`
	SenderDetails  senderDetails  `xml:"SenderDetails"`
}

type messageDetails struct {
	Class         string `xml:"Class"`
	Qualifier     string `xml:"Qualifier"`
	TransactionID string `xml:"TransactionID"`
	GatewayTest   int    `xml:"GatewayTest"`
}

type senderDetails struct {
	IDAuthentication idAuthentication `xml:"IDAuthentication"`
	EmailAddress     string           `xml:"EmailAddress,omitempty"`
}

type idAuthentication struct {
	SenderID       string         `xml:"SenderID"`
	Authentication authentication `xml:"Authentication"`
}

type authentication struct {
	Method string `xml:"Method"`
	Value  string `xml:"Value"`
}

type govTalkDetails struct {
	Keys string `xml:"Keys"`
}

type body struct {
	FormSubmission      *formSubmission      `xml:"http://xmlgw.companieshouse.gov.uk/Header FormSubmission,omitempty"`
	GetSubmissionStatus *getSubmissionStatus `xml:"http://xmlgw.companieshouse.gov.uk GetSubmissionStatus,omitempty"`
}

type formSubmission struct {
	FormHeader formHeader `xml:"FormHeader"`
	DateSigned string     `xml:"DateSigned"`
	Form       form       `xml:"Form"`
	Document   *document  `xml:"Document,omitempty"`
}

type formHeader struct {
	CompanyNumber             string `xml:"CompanyNumber"`
	CompanyType               string `xml:"CompanyType,omitempty"`
	CompanyName               string `xml:"CompanyName"`
	CompanyAuthenticationCode string `xml:"CompanyAuthenticationCode"`
	PackageReference          string `xml:"PackageReference"`
	Language                  string `xml:"Language"`
	FormIdentifier            string `xml:"FormIdentifier"`
	SubmissionNumber          string `xml:"SubmissionNumber"`
	ContactName               string `xml:"ContactName,omitempty"`
	ContactNumber             string `xml:"ContactNumber,omitempty"`
}

type form struct {
	ConfirmationStatement *confirmationStatement `xml:"http://xmlgw.companieshouse.gov.uk ConfirmationStatement,omitempty"`
}

type confirmationStatement struct {
	TradingOnMarket                     bool      `xml:"TradingOnMarket"`
	DTR5Applies                         bool      `xml:"DTR5Applies"`
	PSCExemptAsTradingOnRegulatedMarket bool      `xml:"PSCExemptAsTradingOnRegulatedMarket"`
	ReviewDate                          string    `xml:"ReviewDate"`
	SICCodes                            *sicCodes `xml:"SICCodes,omitempty"`
	StateConfirmation                   bool      `xml:"StateConfirmation"`
}

type sicCodes struct {
	Codes []string `xml:"SICCode"`
}

type document struct {
	Data        string `xml:"Data"`
	Date        string `xml:"Date"`
	Filename    string `xml:"Filename"`
	ContentType string `xml:"ContentType"`
	Category    string `xml:"Category"`
}

type getSubmissionStatus struct {
	SubmissionNumber string `xml:"SubmissionNumber,omitempty"`
	PresenterID      string `xml:"PresenterID"`
}

// govTalkResponse covers both the submission acknowledgement and the
// GetSubmissionStatus reply. Tags are local names only so any namespace
// the gateway uses still matches.
type govTalkResponse struct {
	Header struct {
		MessageDetails struct {
			Qualifier     string `xml:"Qualifier"`
			TransactionID string `xml:"TransactionID"`
		} `xml:"MessageDetails"`
	} `xml:"Header"`
	GovTalkDetails struct {
		GovTalkErrors struct {
			Errors []govTalkError `xml:"Error"`
		} `xml:"GovTalkErrors"`
	} `xml:"GovTalkDetails"`
	Body struct {
		SubmissionStatus struct {
			Status []submissionStatus `xml:"Status"`
		} `xml:"SubmissionStatus"`
		Acknowledgement struct {
			SubmissionNumber string `xml:"SubmissionNumber"`
			Barcode          string `xml:"Barcode"`
		} `xml:"FormSubmissionAcknowledgement"`
	} `xml:"Body"`
}

type govTalkError struct {
	RaisedBy string `xml:"RaisedBy"`
	Number   string `xml:"Number"`
	Type     string `xml:"Type"`
	Text     string `xml:"Text"`
	Location string `xml:"Location"`
}

type submissionStatus struct {
	SubmissionNumber string   `xml:"SubmissionNumber"`
	StatusCode       string   `xml:"StatusCode"`
	Barcode          string   `xml:"Barcode"`
	CompanyNumber    string   `xml:"CompanyNumber"`
	Rejections       []reject `xml:"Rejections>Reject"`
	Examiner         struct {
		Comment string `xml:"Comment"`
	} `xml:"Examiner"`
}

type reject struct {
	RejectCode     string `xml:"RejectCode"`
	Description    string `xml:"Description"`
	InstanceNumber string `xml:"InstanceNumber"`
}
