package hmrc

import (
	"encoding/base64"
	"encoding/xml"
)

type govTalkMessage struct {
	XMLName         xml.Name       `xml:"http://www.govtalk.gov.uk/CM/envelope GovTalkMessage"`
	EnvelopeVersion string         `xml:"EnvelopeVersion"`
	Header          header         `xml:"Header"`
	GovTalkDetails  govTalkDetails `xml:"GovTalkDetails"`
	Body            *body          `xml:"Body"`
}

type header struct {
	MessageDetails messageDetails `xml:"MessageDetails"`
	SenderDetails  *senderDetails `xml:"SenderDetails,omitempty"`
}

type messageDetails struct {
	Class          string `xml:"Class"`
	Qualifier      string `xml:"Qualifier"`
	Function       string `xml:"Function,omitempty"`
	CorrelationID  string `xml:"CorrelationID"`
	Transformation string `xml:"Transformation,omitempty"`
	GatewayTest    int    `xml:"GatewayTest"`
}

type senderDetails struct {
	IDAuthentication idAuthentication `xml:"IDAuthentication"`
}

type idAuthentication struct {
	SenderID       string         `xml:"SenderID"`
	Authentication authentication `xml:"Authentication"`
}

type authentication struct {
	Method string `xml:"Method"`
	Role   string `xml:"Role"`
	Value  string `xml:"Value"`
}

type govTalkDetails struct {
	Keys           []key           `xml:"Keys>Key"`
	TargetDetails  *targetDetails  `xml:"TargetDetails,omitempty"`
	ChannelRouting *channelRouting `xml:"ChannelRouting,omitempty"`
}

type key struct {
	Type  string `xml:"Type,attr"`
	Value string `xml:",chardata"`
}

type targetDetails struct {
	Organisation string `xml:"Organisation"`
}

type channelRouting struct {
	Channel channel `xml:"Channel"`
}

type channel struct {
	URI     string `xml:"URI"`
	Product string `xml:"Product"`
	Version string `xml:"Version"`
}

type body struct {
	IRenvelope *irEnvelope `xml:"http://www.govtalk.gov.uk/taxation/CT/5 IRenvelope,omitempty"`
}

type irEnvelope struct {
	IRheader         irHeader         `xml:"IRheader"`
	CompanyTaxReturn companyTaxReturn `xml:"CompanyTaxReturn"`
}

type irHeader struct {
	Keys            []key  `xml:"Keys>Key"`
	PeriodEnd       string `xml:"PeriodEnd"`
	DefaultCurrency string `xml:"DefaultCurrency"`
	IRmark          irmark `xml:"IRmark"`
	Sender          string `xml:"Sender"`
}

type irmark struct {
	Type  string `xml:"Type,attr"`
	Value string `xml:",chardata"`
}

type companyTaxReturn struct {
	ReturnType                            string                `xml:"ReturnType,attr"`
	CompanyInformation                    companyInformation    `xml:"CompanyInformation"`
	ReturnInfoSummary                     returnInfoSummary     `xml:"ReturnInfoSummary"`
	Turnover                              turnover              `xml:"Turnover"`
	CompanyTaxCalculation                 companyTaxCalculation `xml:"CompanyTaxCalculation"`
	CalculationOfTaxOutstandingOrOverpaid taxOutstanding        `xml:"CalculationOfTaxOutstandingOrOverpaid"`
	Declaration                           declaration           `xml:"Declaration"`
	AttachedFiles                         *attachedFiles        `xml:"AttachedFiles,omitempty"`
}

type companyInformation struct {
	CompanyName        string        `xml:"CompanyName"`
	RegistrationNumber string        `xml:"RegistrationNumber,omitempty"`
	Reference          string        `xml:"Reference"`
	CompanyType        int           `xml:"CompanyType,omitempty"`
	PeriodCovered      periodCovered `xml:"PeriodCovered"`
}

type periodCovered struct {
	From string `xml:"From"`
	To   string `xml:"To"`
}

type returnInfoSummary struct {
	Accounts     string `xml:"Accounts>ThisPeriodAccounts,omitempty"`
	Computations string `xml:"Computations>ThisPeriodComputations,omitempty"`
}

type turnover struct {
	Total string `xml:"Total"`
}

type companyTaxCalculation struct {
	Income                       income                   `xml:"Income"`
	ProfitsBeforeOtherDeductions string                   `xml:"ProfitsBeforeOtherDeductions"`
	ChargeableProfits            string                   `xml:"ChargeableProfits"`
	CorporationTaxChargeable     corporationTaxChargeable `xml:"CorporationTaxChargeable"`
	CorporationTax               string                   `xml:"CorporationTax"`
	MarginalRelief               string                   `xml:"MarginalRelief,omitempty"`
	CorporationTaxNetOfRelief    string                   `xml:"CorporationTaxNetOfMarginalRelief"`
	ReliefsAndDeductions         *reliefs                 `xml:"ReliefsAndDeductions,omitempty"`
	NetCorporationTaxChargeable  string                   `xml:"NetCorporationTaxChargeable"`
}

type income struct {
	Trading trading `xml:"Trading"`
}

type trading struct {
	Profits              string `xml:"Profits"`
	LossesBroughtForward string `xml:"LossesBroughtForward"`
	NetProfits           string `xml:"NetProfits"`
}

type corporationTaxChargeable struct {
	FinancialYearOne financialYear `xml:"FinancialYearOne"`
}

type financialYear struct {
	Year    int                  `xml:"Year"`
	Details financialYearDetails `xml:"Details"`
}

type financialYearDetails struct {
	Profit  string `xml:"Profit"`
	TaxRate string `xml:"TaxRate"`
	Tax     string `xml:"Tax"`
}

type reliefs struct {
	ResearchAndDevelopment string `xml:"ResearchAndDevelopment"`
	PatentBox              string `xml:"PatentBox"`
	Total                  string `xml:"Total"`
}

type taxOutstanding struct {
	NetCorporationTaxLiability string `xml:"NetCorporationTaxLiability"`
	TaxChargeable              string `xml:"TaxChargeable"`
	TaxPayable                 string `xml:"TaxPayable"`
}

type declaration struct {
	AcceptDeclaration string `xml:"AcceptDeclaration"`
	Name              string `xml:"Name"`
	Status            string `xml:"Status"`
}

type attachedFiles struct {
	XBRLSubmission xbrlSubmission `xml:"XBRLsubmission"`
}

type xbrlSubmission struct {
	Computation *encodedInstance `xml:"Computation,omitempty"`
	Accounts    *encodedInstance `xml:"Accounts,omitempty"`
}

type encodedInstance struct {
	Instance instance `xml:"Instance"`
}

type instance struct {
	EncodedInlineXBRLDocument string `xml:"EncodedInlineXBRLDocument"`
}

// govTalkResponse is the subset of a gateway reply the client reads. Tags
// carry no namespace so they match whatever the gateway declares.
type govTalkResponse struct {
	XMLName xml.Name `xml:"GovTalkMessage"`
	Header  struct {
		MessageDetails struct {
			Class         string `xml:"Class"`
			Qualifier     string `xml:"Qualifier"`
			Function      string `xml:"Function"`
			CorrelationID string `xml:"CorrelationID"`
			ResponseEndPoint struct {
				PollInterval int    `xml:"PollInterval,attr"`
				URL          string `xml:",chardata"`
			} `xml:"ResponseEndPoint"`
			GatewayTimestamp string `xml:"GatewayTimestamp"`
		} `xml:"MessageDetails"`
	} `xml:"Header"`
	GovTalkDetails struct {
		GovTalkErrors struct {
			Errors []govTalkError `xml:"Error"`
		} `xml:"GovTalkErrors"`
	} `xml:"GovTalkDetails"`
	Body struct {
		ErrorResponse struct {
			Errors []govTalkError `xml:"Error"`
		} `xml:"ErrorResponse"`
		SuccessResponse struct {
			IRmarkReceipt struct {
				Message string `xml:"Message"`
			} `xml:"IRmarkReceipt"`
			Message      string `xml:"Message"`
			AcceptedTime string `xml:"AcceptedTime"`
		} `xml:"SuccessResponse"`
	} `xml:"Body"`
}

type govTalkError struct {
	RaisedBy string `xml:"RaisedBy"`
	Number   string `xml:"Number"`
	Type     string `xml:"Type"`
	Text     string `xml:"Text"`
	Location string `xml:"Location"`
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
