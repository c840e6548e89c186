package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/mocks"
	"github.com/ledgerline/filing-api/libs/go/services"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

const financialDataJSON = `{
  "turnover": "100000",
  "cost_of_sales": "40000",
  "operating_expenses": "20000",
  "period_start": "2023-04-01T00:00:00Z",
  "period_end": "2024-03-31T00:00:00Z"
}`

const microAccountsJSON = `{
  "company_number": "SC123456",
  "company_name": "Tiny Ltd",
  "period_start": "2023-01-01T00:00:00Z",
  "period_end": "2023-12-31T00:00:00Z",
  "average_employees": 2,
  "balance_sheet": {"debtors": "12000", "cash": "8000", "current_liabilities": "4000"},
  "profit_and_loss": {"turnover": "90000", "administrative_expenses": "60000"}
}`

func newTestCLI(svc interfaces.FilingService, stdin string) (*cli, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &cli{
		stdin:  strings.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
		newService: func(context.Context) (interfaces.FilingService, error) {
			return svc, nil
		},
	}, stdout, stderr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Usage(t *testing.T) {
	c, _, stderr := newTestCLI(nil, "")

	assert.Equal(t, exitUsage, c.run(context.Background(), nil))
	assert.Contains(t, stderr.String(), "Usage:")

	stderr.Reset()
	assert.Equal(t, exitUsage, c.run(context.Background(), []string{"frobnicate"}))
	assert.Contains(t, stderr.String(), `Unknown command "frobnicate"`)

	assert.Equal(t, exitOK, c.run(context.Background(), []string{"help"}))
}

func TestRun_Compute(t *testing.T) {
	tests := []struct {
		name     string
		args     func(t *testing.T) []string
		stdin    string
		wantCode int
		wantTax  string
		wantErr  string
	}{
		{
			name:     "from file",
			args:     func(t *testing.T) []string { return []string{"compute", "-file", writeFile(t, "data.json", financialDataJSON)} },
			wantCode: exitOK,
			wantTax:  "7600",
		},
		{
			name:     "from stdin",
			args:     func(t *testing.T) []string { return []string{"compute"} },
			stdin:    financialDataJSON,
			wantCode: exitOK,
			wantTax:  "7600",
		},
		{
			name:     "malformed input",
			args:     func(t *testing.T) []string { return []string{"compute"} },
			stdin:    "{not json",
			wantCode: exitFailure,
			wantErr:  "failed to parse input",
		},
		{
			name:     "period end before start",
			args:     func(t *testing.T) []string { return []string{"compute"} },
			stdin:    `{"turnover": "1", "period_start": "2024-04-01T00:00:00Z", "period_end": "2024-03-31T00:00:00Z"}`,
			wantCode: exitFailure,
			wantErr:  "invalid financial data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, stdout, stderr := newTestCLI(services.NewFilingService(nil, nil), tt.stdin)

			code := c.run(context.Background(), tt.args(t))
			assert.Equal(t, tt.wantCode, code, stderr.String())

			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), tt.wantErr)
				return
			}
			var computation business.TaxComputation
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &computation))
			assert.True(t, computation.TaxDue.Equal(decimal.RequireFromString(tt.wantTax)), computation.TaxDue.String())
		})
	}
}

func TestRun_SubmitTaxReturn(t *testing.T) {
	input := `{"financial_data": ` + financialDataJSON + `, "company": {"company_name": "Example Ltd", "utr": "1234567890"}}`

	tests := []struct {
		name       string
		setupMocks func(m *mocks.MockFilingService)
		wantCode   int
		wantStatus business.SubmissionStatus
	}{
		{
			name: "acknowledged without waiting",
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&business.SubmissionResult{CorrelationID: "C1", Status: business.SubmissionStatusAcknowledged}, nil)
			},
			wantCode:   exitOK,
			wantStatus: business.SubmissionStatusAcknowledged,
		},
		{
			name: "transient failure is retried",
			setupMocks: func(m *mocks.MockFilingService) {
				gomock.InOrder(
					m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(nil, &business.GatewayHTTPError{Gateway: business.GatewayHMRC, StatusCode: 503}),
					m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(&business.SubmissionResult{CorrelationID: "C2", Status: business.SubmissionStatusAcknowledged}, nil),
				)
			},
			wantCode:   exitOK,
			wantStatus: business.SubmissionStatusAcknowledged,
		},
		{
			name: "rejection is printed and not retried",
			setupMocks: func(m *mocks.MockFilingService) {
				result := &business.SubmissionResult{
					CorrelationID: "C3",
					Status:        business.SubmissionStatusRejected,
					Errors:        []business.GatewayErrorDetail{{Code: "1046", Message: "Authentication failure"}},
				}
				m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(result, &business.GatewayBusinessRejection{Gateway: business.GatewayHMRC, Result: result}).
					Times(1)
			},
			wantCode:   exitRejected,
			wantStatus: business.SubmissionStatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockFilingServiceForTest(t)
			tt.setupMocks(svc)
			c, stdout, stderr := newTestCLI(svc, input)

			code := c.run(context.Background(), []string{"submit-ct", "-wait=false"})
			assert.Equal(t, tt.wantCode, code, stderr.String())

			var result business.SubmissionResult
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}

func TestRun_SubmitTaxReturnWait(t *testing.T) {
	input := `{"financial_data": ` + financialDataJSON + `, "company": {"company_name": "Example Ltd", "utr": "1234567890"}}`

	tests := []struct {
		name       string
		setupMocks func(m *mocks.MockFilingService)
		wantCode   int
		wantStatus business.SubmissionStatus
	}{
		{
			name: "acknowledged is polled until accepted",
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&business.SubmissionResult{CorrelationID: "W1", Status: business.SubmissionStatusAcknowledged, PollURL: "https://poll.example"}, nil)
				m.EXPECT().PollTaxReturn(gomock.Any(), "W1", "https://poll.example").
					Return(&business.SubmissionResult{CorrelationID: "W1", Status: business.SubmissionStatusAccepted}, nil)
			},
			wantCode:   exitOK,
			wantStatus: business.SubmissionStatusAccepted,
		},
		{
			name: "rejection found while polling",
			setupMocks: func(m *mocks.MockFilingService) {
				rejected := &business.SubmissionResult{CorrelationID: "W2", Status: business.SubmissionStatusRejected}
				m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&business.SubmissionResult{CorrelationID: "W2", Status: business.SubmissionStatusAcknowledged}, nil)
				m.EXPECT().PollTaxReturn(gomock.Any(), "W2", "").
					Return(rejected, &business.GatewayBusinessRejection{Gateway: business.GatewayHMRC, Result: rejected})
			},
			wantCode:   exitRejected,
			wantStatus: business.SubmissionStatusRejected,
		},
		{
			name: "gateway error status is not polled",
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&business.SubmissionResult{CorrelationID: "W3", Status: business.SubmissionStatusError}, nil)
			},
			wantCode:   exitOK,
			wantStatus: business.SubmissionStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockFilingServiceForTest(t)
			tt.setupMocks(svc)
			c, stdout, stderr := newTestCLI(svc, input)

			code := c.run(context.Background(), []string{"submit-ct"})
			assert.Equal(t, tt.wantCode, code, stderr.String())

			var result business.SubmissionResult
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}

func TestRun_SubmitTaxReturnGatewayError(t *testing.T) {
	svc := mocks.NewMockFilingServiceForTest(t)
	svc.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, services.ErrGatewayNotConfigured)

	c, stdout, stderr := newTestCLI(svc, `{"financial_data": `+financialDataJSON+`}`)
	assert.Equal(t, exitFailure, c.run(context.Background(), []string{"submit-ct"}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "gateway client is not configured")
}

func TestRun_PrepareAccounts(t *testing.T) {
	svc := services.NewFilingService(nil, nil)

	t.Run("writes document to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "accounts.xhtml")
		c, _, stderr := newTestCLI(svc, microAccountsJSON)

		code := c.run(context.Background(), []string{"prepare-accounts", "-out", out})
		require.Equal(t, exitOK, code, stderr.String())
		assert.Contains(t, stderr.String(), "Wrote micro accounts")

		written, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(written), "ix:nonFraction")
	})

	t.Run("writes document to stdout", func(t *testing.T) {
		c, stdout, _ := newTestCLI(svc, microAccountsJSON)
		require.Equal(t, exitOK, c.run(context.Background(), []string{"prepare-accounts"}))
		assert.Contains(t, stdout.String(), "<html")
	})

	t.Run("invalid document prints validation result", func(t *testing.T) {
		var input map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(microAccountsJSON), &input))
		delete(input, "profit_and_loss")
		raw, err := json.Marshal(input)
		require.NoError(t, err)

		c, stdout, stderr := newTestCLI(svc, string(raw))
		assert.Equal(t, exitFailure, c.run(context.Background(), []string{"prepare-accounts"}))
		assert.Contains(t, stderr.String(), "document failed validation")

		var result business.ValidationResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.False(t, result.IsValid)
	})
}

func TestPollPolicy(t *testing.T) {
	base := pollPolicy(nil)
	assert.Equal(t, base.InitialInterval, pollPolicy(&business.SubmissionResult{PollInterval: base.InitialInterval / 2}).InitialInterval)

	slower := pollPolicy(&business.SubmissionResult{PollInterval: 3 * base.InitialInterval})
	assert.Equal(t, 3*base.InitialInterval, slower.InitialInterval)
}
