package companieshouse

import (
	"strings"

	"github.com/ledgerline/filing-api/libs/go/types/business"
)

// ErrorMapping is the user-facing rendering of a registrar error code.
type ErrorMapping struct {
	Message         string
	SuggestedAction string
}

// GenericRejection is returned for codes missing from the table.
var GenericRejection = ErrorMapping{
	Message:         "Submission rejected: review the details returned by Companies House",
	SuggestedAction: "Check the rejection description, correct the filing and resubmit with a new submission number",
}

var knownErrors = map[string]ErrorMapping{
	"502": {
		Message:         "The presenter credentials were not accepted",
		SuggestedAction: "Check the presenter ID and authentication code held for the filing agent",
	},
	"1000": {
		Message:         "The gateway could not process the message",
		SuggestedAction: "Wait a few minutes and resubmit",
	},
	"9999": {
		Message:         "The company authentication code is incorrect",
		SuggestedAction: "Request the current authentication code from the company's directors",
	},
	"100": {
		Message:         "The submission number has already been used by this presenter",
		SuggestedAction: "Resubmit with a new submission number",
	},
	"9016": {
		Message:         "The accounts document failed the registrar's taxonomy checks",
		SuggestedAction: "Run accounts validation locally and fix every reported error",
	},
}

// LookupError maps a registrar error or reject code to a message and
// suggested action.
func LookupError(code string) ErrorMapping {
	if m, ok := knownErrors[strings.TrimSpace(code)]; ok {
		return m
	}
	return GenericRejection
}

func gatewayErrorDetails(raw []govTalkError) []business.GatewayErrorDetail {
	out := make([]business.GatewayErrorDetail, 0, len(raw))
	for _, e := range raw {
		mapping := LookupError(e.Number)
		out = append(out, business.GatewayErrorDetail{
			Code:            strings.TrimSpace(e.Number),
			Message:         strings.TrimSpace(e.Text),
			Severity:        strings.TrimSpace(e.Type),
			Location:        strings.TrimSpace(e.Location),
			RaisedBy:        strings.TrimSpace(e.RaisedBy),
			FriendlyMessage: mapping.Message,
			SuggestedAction: mapping.SuggestedAction,
		})
	}
	return out
}

func rejectDetails(rejects []reject, examinerComment string) []business.GatewayErrorDetail {
	out := make([]business.GatewayErrorDetail, 0, len(rejects)+1)
	for _, r := range rejects {
		mapping := LookupError(r.RejectCode)
		out = append(out, business.GatewayErrorDetail{
			Code:            strings.TrimSpace(r.RejectCode),
			Message:         strings.TrimSpace(r.Description),
			Severity:        "fatal",
			Location:        strings.TrimSpace(r.InstanceNumber),
			RaisedBy:        "Companies House",
			FriendlyMessage: mapping.Message,
			SuggestedAction: mapping.SuggestedAction,
		})
	}
	if comment := strings.TrimSpace(examinerComment); comment != "" {
		out = append(out, business.GatewayErrorDetail{
			Message:         comment,
			Severity:        "fatal",
			RaisedBy:        "Examiner",
			FriendlyMessage: GenericRejection.Message,
			SuggestedAction: GenericRejection.SuggestedAction,
		})
	}
	return out
}
