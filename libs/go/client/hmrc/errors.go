package hmrc

import (
	"strings"

	"github.com/ledgerline/filing-api/libs/go/types/business"
)

// ErrorMapping is the user-facing rendering of a gateway error code.
type ErrorMapping struct {
	Message         string
	SuggestedAction string
}

// GenericRejection is returned for codes missing from the table.
var GenericRejection = ErrorMapping{
	Message:         "Submission rejected: review the details returned by HMRC",
	SuggestedAction: "Check the raw error code and message, correct the return and resubmit",
}

var knownErrors = map[string]ErrorMapping{
	"1000": {
		Message:         "HMRC's gateway could not process the submission",
		SuggestedAction: "Wait a few minutes and poll again or resubmit",
	},
	"1001": {
		Message:         "The return failed HMRC's business validation",
		SuggestedAction: "Review the error locations in the response and correct the return data",
	},
	"1002": {
		Message:         "The submission was sent to an unavailable or incorrect endpoint",
		SuggestedAction: "Check the configured gateway URLs and the test mode flag",
	},
	"1020": {
		Message:         "The gateway has no record of this correlation id",
		SuggestedAction: "Confirm the correlation id came from this gateway environment",
	},
	"1046": {
		Message:         "Government Gateway authentication failed",
		SuggestedAction: "Check the sender ID and password, and that the account is enrolled for Corporation Tax",
	},
	"2000": {
		Message:         "The message is not a valid GovTalk envelope",
		SuggestedAction: "Rebuild the envelope; do not edit it after it has been generated",
	},
	"2001": {
		Message:         "The message failed schema validation",
		SuggestedAction: "Check that every mandatory CT600 box is present and correctly formatted",
	},
	"2005": {
		Message:         "The message class or qualifier is not recognised",
		SuggestedAction: "Check the envelope header; the class must be HMRC-CT-CT600",
	},
	"2021": {
		Message:         "The IRmark does not match the body of the return",
		SuggestedAction: "Regenerate the return; the body must not change after the IRmark is computed",
	},
	"3001": {
		Message:         "The submission was rejected by HMRC's Corporation Tax service",
		SuggestedAction: "Review the rejection text, fix the return and resubmit with a new correlation id",
	},
}

// LookupError maps an authority error code to a message and suggested
// action. Unknown codes map to GenericRejection rather than failing.
func LookupError(code string) ErrorMapping {
	if m, ok := knownErrors[strings.TrimSpace(code)]; ok {
		return m
	}
	return GenericRejection
}

func toErrorDetails(raw []govTalkError) []business.GatewayErrorDetail {
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
