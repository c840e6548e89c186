package helpers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerline/filing-api/libs/go/helpers"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

func fastPolicy(retries int) helpers.RetryPolicy {
	return helpers.RetryPolicy{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func transient() error {
	return &business.GatewayHTTPError{Gateway: business.GatewayHMRC, StatusCode: 503}
}

func TestRetryTransient(t *testing.T) {
	tests := []struct {
		name        string
		retries     int
		failures    []error
		wantCalls   int
		wantValue   string
		errContains func(error) bool
	}{
		{
			name:      "succeeds first time",
			retries:   3,
			wantCalls: 1,
			wantValue: "ok",
		},
		{
			name:      "recovers after transient failures",
			retries:   3,
			failures:  []error{transient(), transient()},
			wantCalls: 3,
			wantValue: "ok",
		},
		{
			name:        "gives up once retries are exhausted",
			retries:     2,
			failures:    []error{transient(), transient(), transient(), transient()},
			wantCalls:   3,
			errContains: business.IsRetryable,
		},
		{
			name:    "business rejection is never retried",
			retries: 5,
			failures: []error{&business.GatewayBusinessRejection{
				Gateway: business.GatewayHMRC,
				Result:  &business.SubmissionResult{Status: business.SubmissionStatusRejected},
			}},
			wantCalls:   1,
			errContains: business.IsBusinessRejection,
		},
		{
			name:        "input errors are never retried",
			retries:     5,
			failures:    []error{&business.ValidationError{}},
			wantCalls:   1,
			errContains: business.IsInputError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			value, err := helpers.RetryTransient(context.Background(), fastPolicy(tt.retries), func(ctx context.Context) (string, error) {
				calls++
				if calls <= len(tt.failures) {
					return "partial", tt.failures[calls-1]
				}
				return "ok", nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.errContains != nil {
				require.Error(t, err)
				assert.True(t, tt.errContains(err), err.Error())
				assert.Equal(t, "partial", value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestRetryTransient_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := helpers.RetryTransient(ctx, fastPolicy(10), func(ctx context.Context) (int, error) {
		calls++
		return 0, transient()
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.LessOrEqual(t, calls, 1)
}

func TestPollUntilDecided(t *testing.T) {
	statuses := []business.SubmissionStatus{
		business.SubmissionStatusAcknowledged,
		business.SubmissionStatusProcessing,
		business.SubmissionStatusAccepted,
	}

	calls := 0
	result, err := helpers.PollUntilDecided(context.Background(), fastPolicy(10), func(ctx context.Context) (*business.SubmissionResult, error) {
		status := statuses[calls]
		calls++
		if calls == 2 {
			return &business.SubmissionResult{Status: business.SubmissionStatusError}, transient()
		}
		return &business.SubmissionResult{CorrelationID: "ABC", Status: status}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, business.SubmissionStatusAccepted, result.Status)
}

func TestPollUntilDecided_Rejected(t *testing.T) {
	rejected := &business.SubmissionResult{CorrelationID: "ABC", Status: business.SubmissionStatusRejected}

	calls := 0
	result, err := helpers.PollUntilDecided(context.Background(), fastPolicy(10), func(ctx context.Context) (*business.SubmissionResult, error) {
		calls++
		return rejected, &business.GatewayBusinessRejection{Gateway: business.GatewayCompaniesHouse, Result: rejected}
	})

	require.Error(t, err)
	assert.True(t, business.IsBusinessRejection(err))
	assert.Equal(t, 1, calls)
	assert.Same(t, rejected, result)
}

func TestPollUntilDecided_StillProcessing(t *testing.T) {
	calls := 0
	result, err := helpers.PollUntilDecided(context.Background(), fastPolicy(2), func(ctx context.Context) (*business.SubmissionResult, error) {
		calls++
		return &business.SubmissionResult{Status: business.SubmissionStatusProcessing}, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, helpers.ErrStillProcessing)
	assert.Equal(t, 3, calls)
	assert.Equal(t, business.SubmissionStatusProcessing, result.Status)
}

func TestIsValidStage(t *testing.T) {
	tests := []struct {
		stage string
		want  bool
	}{
		{"prod", true},
		{"dev", true},
		{"local", true},
		{"staging", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.IsValidStage(tt.stage))
		})
	}

	assert.True(t, helpers.GatewayTestModeDefault("dev"))
	assert.False(t, helpers.GatewayTestModeDefault("prod"))
}
