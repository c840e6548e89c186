package business_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatus_Lifecycle(t *testing.T) {
	tests := []struct {
		status       business.SubmissionStatus
		wantTerminal bool
		wantInFlight bool
	}{
		{status: business.SubmissionStatusPending, wantInFlight: true},
		{status: business.SubmissionStatusProcessing, wantInFlight: true},
		{status: business.SubmissionStatusAcknowledged, wantInFlight: true},
		{status: business.SubmissionStatusAccepted, wantTerminal: true},
		{status: business.SubmissionStatusRejected, wantTerminal: true},
		{status: business.SubmissionStatusError},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.wantTerminal, tt.status.IsTerminal())
			assert.Equal(t, tt.wantInFlight, tt.status.IsInFlight())
		})
	}
}

func TestGatewayBusinessRejection_Error(t *testing.T) {
	tests := []struct {
		name   string
		result *business.SubmissionResult
		want   string
	}{
		{
			name:   "no result",
			result: nil,
			want:   "hmrc rejected the submission",
		},
		{
			name:   "no error entries",
			result: &business.SubmissionResult{Status: business.SubmissionStatusRejected},
			want:   "hmrc rejected the submission",
		},
		{
			name: "first error is quoted",
			result: &business.SubmissionResult{
				Status: business.SubmissionStatusRejected,
				Errors: []business.GatewayErrorDetail{
					{Code: "1046", Message: "Authentication failure"},
					{Code: "3001", Message: "Schema error"},
				},
			},
			want: "hmrc rejected the submission: [1046] Authentication failure (2 error(s))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &business.GatewayBusinessRejection{Gateway: business.GatewayHMRC, Result: tt.result}
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, len(tt.result.ErrorCodes()) > 0, tt.result.HasErrors())
		})
	}
}

func TestErrorClassification(t *testing.T) {
	transient := &business.GatewayHTTPError{Gateway: business.GatewayCompaniesHouse, StatusCode: 503}
	rejection := &business.GatewayBusinessRejection{Gateway: business.GatewayHMRC}
	invalid := &business.ValidationError{Violations: []business.FieldViolation{{Field: "turnover", Message: "must not be negative"}}}

	assert.True(t, business.IsRetryable(fmt.Errorf("submit: %w", transient)))
	assert.False(t, business.IsRetryable(rejection))
	assert.True(t, business.IsBusinessRejection(fmt.Errorf("poll: %w", rejection)))
	assert.False(t, business.IsBusinessRejection(transient))
	assert.True(t, business.IsInputError(invalid))
	assert.True(t, business.IsInputError(&business.IncompleteInputError{Missing: []string{"company_name"}}))
	assert.False(t, business.IsInputError(errors.New("boom")))
}
