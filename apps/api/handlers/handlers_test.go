package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/middleware"
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

type countingRecorder struct {
	counts map[string]int
}

func (r *countingRecorder) RecordSubmission(gateway business.Gateway, status business.SubmissionStatus) {
	r.counts[string(gateway)+":"+string(status)]++
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockFilingService, *countingRecorder) {
	gin.SetMode(gin.TestMode)

	filing := mocks.NewMockFilingServiceForTest(t)
	recorder := &countingRecorder{counts: map[string]int{}}
	factory := NewHandlerFactory(HandlerFactoryConfig{
		FilingService:    filing,
		Recorder:         recorder,
		Stage:            "dev",
		GatewayTestMode:  true,
		AllowedPollHosts: []string{"test-transaction-engine.tax.service.gov.uk"},
	})
	tax := factory.NewTaxHandler()
	accounts := factory.NewAccountsHandler()

	router := gin.New()
	router.Use(middleware.CorrelationIDMiddleware())
	v1 := router.Group("/api/v1")
	v1.POST("/tax/computations", tax.ComputeTax)
	v1.POST("/tax/computations/batch", tax.ComputeTaxBatch)
	v1.POST("/tax/returns", tax.BuildTaxReturn)
	v1.POST("/tax/returns/submit", tax.SubmitTaxReturn)
	v1.GET("/tax/returns/:correlation_id/status", tax.GetTaxReturnStatus)
	v1.POST("/accounts/documents", accounts.PrepareAccounts)
	v1.POST("/accounts/validate", accounts.ValidateAccounts)
	v1.POST("/accounts/submissions", accounts.SubmitAccounts)
	v1.POST("/confirmation-statements/submissions", accounts.SubmitConfirmationStatement)
	v1.GET("/registrar/submissions/:submission_number/status", accounts.GetRegistrarStatus)

	return router, filing, recorder
}

func doJSON(router http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func sampleData() business.FinancialData {
	return business.FinancialData{
		Turnover:          decimal.RequireFromString("500000"),
		CostOfSales:       decimal.RequireFromString("200000"),
		OperatingExpenses: decimal.RequireFromString("150000"),
		PeriodStart:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:         time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestTaxHandler_ComputeTax(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(m *mocks.MockFilingService)
		expectedStatus int
		check          func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "computes liability",
			body: sampleData(),
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().ComputeTax(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, data business.FinancialData) (*business.TaxComputation, error) {
						assert.True(t, data.Turnover.Equal(decimal.RequireFromString("500000")))
						return &business.TaxComputation{TaxDue: decimal.RequireFromString("36000")}, nil
					})
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got business.TaxComputation
				decodeBody(t, w, &got)
				assert.True(t, got.TaxDue.Equal(decimal.RequireFromString("36000")))
			},
		},
		{
			name: "field violations map to 422",
			body: business.FinancialData{},
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().ComputeTax(gomock.Any(), gomock.Any()).Return(nil, &business.ValidationError{
					Violations: []business.FieldViolation{{Field: "period_end", Message: "is required"}},
				})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got ErrorResponse
				decodeBody(t, w, &got)
				require.Len(t, got.Violations, 1)
				assert.Equal(t, "period_end", got.Violations[0].Field)
				assert.NotEmpty(t, got.CorrelationID)
			},
		},
		{
			name:           "malformed json is a bad request",
			body:           "not an object",
			setupMocks:     func(m *mocks.MockFilingService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, filing, _ := setupRouter(t)
			tt.setupMocks(filing)

			w := doJSON(router, http.MethodPost, "/api/v1/tax/computations", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestTaxHandler_ComputeTaxBatch(t *testing.T) {
	router, filing, _ := setupRouter(t)

	filing.EXPECT().ComputeTaxBatch(gomock.Any(), gomock.Len(2)).Return([]*business.TaxComputation{
		{TaxDue: decimal.RequireFromString("1")},
		{TaxDue: decimal.RequireFromString("2")},
	}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/tax/computations/batch", ComputeBatchRequest{
		Records: []business.FinancialData{sampleData(), sampleData()},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Object string                     `json:"object"`
		Data   []*business.TaxComputation `json:"data"`
	}
	decodeBody(t, w, &got)
	assert.Equal(t, "list", got.Object)
	assert.Len(t, got.Data, 2)

	w = doJSON(router, http.MethodPost, "/api/v1/tax/computations/batch", ComputeBatchRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/tax/computations/batch", ComputeBatchRequest{
		Records: make([]business.FinancialData, MaxBatchSize+1),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTaxHandler_BuildTaxReturn(t *testing.T) {
	router, filing, _ := setupRouter(t)

	filing.EXPECT().BuildTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).Return(&business.AnnualFilingPackage{
		CorrelationID: "ABC",
		IRmark:        "mark",
		TaxReturnXML:  []byte("<GovTalkMessage/>"),
	}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/tax/returns", TaxReturnRequest{FinancialData: sampleData()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got map[string]interface{}
	decodeBody(t, w, &got)
	assert.Equal(t, "ABC", got["correlation_id"])
	assert.Equal(t, "mark", got["irmark"])
	assert.Equal(t, "PEdvdlRhbGtNZXNzYWdlLz4=", got["envelope_xml"])
}

func TestTaxHandler_SubmitTaxReturn(t *testing.T) {
	tests := []struct {
		name           string
		result         *business.SubmissionResult
		err            error
		expectedStatus int
		expectedCount  string
	}{
		{
			name:           "acknowledged",
			result:         &business.SubmissionResult{CorrelationID: "ABC", Status: business.SubmissionStatusAcknowledged},
			expectedStatus: http.StatusOK,
			expectedCount:  "hmrc:acknowledged",
		},
		{
			name: "business rejection is a 200 with errors",
			result: &business.SubmissionResult{
				CorrelationID: "ABC",
				Status:        business.SubmissionStatusRejected,
				Errors:        []business.GatewayErrorDetail{{Code: "1046", Message: "Authentication failure"}},
			},
			err:            &business.GatewayBusinessRejection{Gateway: business.GatewayHMRC},
			expectedStatus: http.StatusOK,
			expectedCount:  "hmrc:rejected",
		},
		{
			name:           "transport failure is a 502",
			result:         &business.SubmissionResult{CorrelationID: "ABC", Status: business.SubmissionStatusError},
			err:            &business.GatewayHTTPError{Gateway: business.GatewayHMRC, StatusCode: 503},
			expectedStatus: http.StatusBadGateway,
			expectedCount:  "hmrc:error",
		},
		{
			name:           "missing gateway is a 503",
			err:            services.ErrGatewayNotConfigured,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, filing, recorder := setupRouter(t)
			filing.EXPECT().SubmitTaxReturn(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.result, tt.err)

			w := doJSON(router, http.MethodPost, "/api/v1/tax/returns/submit", TaxReturnRequest{FinancialData: sampleData()})
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedCount != "" {
				assert.Equal(t, 1, recorder.counts[tt.expectedCount])
			}
			if tt.expectedStatus == http.StatusOK {
				var got business.SubmissionResult
				decodeBody(t, w, &got)
				assert.Equal(t, tt.result.Status, got.Status)
				assert.Len(t, got.Errors, len(tt.result.Errors))
			}
		})
	}
}

func TestTaxHandler_GetTaxReturnStatus(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMocks     func(m *mocks.MockFilingService)
		expectedStatus int
	}{
		{
			name: "polls the configured endpoint",
			path: "/api/v1/tax/returns/ABC/status",
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().PollTaxReturn(gomock.Any(), "ABC", "").
					Return(&business.SubmissionResult{Status: business.SubmissionStatusAccepted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "follows an allowed poll url",
			path: "/api/v1/tax/returns/ABC/status?poll_url=https://test-transaction-engine.tax.service.gov.uk/poll",
			setupMocks: func(m *mocks.MockFilingService) {
				m.EXPECT().PollTaxReturn(gomock.Any(), "ABC", "https://test-transaction-engine.tax.service.gov.uk/poll").
					Return(&business.SubmissionResult{Status: business.SubmissionStatusProcessing}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects a foreign poll url",
			path:           "/api/v1/tax/returns/ABC/status?poll_url=https://attacker.example/poll",
			setupMocks:     func(m *mocks.MockFilingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects a plain http poll url",
			path:           "/api/v1/tax/returns/ABC/status?poll_url=http://test-transaction-engine.tax.service.gov.uk/poll",
			setupMocks:     func(m *mocks.MockFilingService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, filing, _ := setupRouter(t)
			tt.setupMocks(filing)

			w := doJSON(router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestAccountsHandler_PrepareAccounts(t *testing.T) {
	prepared := &business.PreparedAccounts{
		EntitySize: business.EntitySizeSmall,
		XHTML:      []byte("<html/>"),
		FactCount:  42,
		Validation: business.NewValidationResult(),
	}

	t.Run("json by default", func(t *testing.T) {
		router, filing, _ := setupRouter(t)
		filing.EXPECT().PrepareAccounts(gomock.Any(), gomock.Any()).Return(prepared, nil)

		w := doJSON(router, http.MethodPost, "/api/v1/accounts/documents", business.AccountsInput{CompanyNumber: "01234567"})
		require.Equal(t, http.StatusOK, w.Code)

		var got map[string]interface{}
		decodeBody(t, w, &got)
		assert.Equal(t, "small", got["entity_size"])
		assert.Equal(t, "<html/>", got["xhtml"])
		assert.EqualValues(t, 42, got["fact_count"])
	})

	t.Run("xhtml when asked", func(t *testing.T) {
		router, filing, _ := setupRouter(t)
		filing.EXPECT().PrepareAccounts(gomock.Any(), gomock.Any()).Return(prepared, nil)

		w := doJSON(router, http.MethodPost, "/api/v1/accounts/documents", business.AccountsInput{}, "Accept", "application/xhtml+xml")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<html/>", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xhtml+xml")
		assert.Equal(t, "small", w.Header().Get("X-Entity-Size"))
		assert.Equal(t, "42", w.Header().Get("X-Fact-Count"))
	})

	t.Run("structural failure carries the validation result", func(t *testing.T) {
		router, filing, _ := setupRouter(t)
		result := business.NewValidationResult()
		result.AddError(services.CodePLRequiredAllEntities, "", "profit and loss is required")
		filing.EXPECT().PrepareAccounts(gomock.Any(), gomock.Any()).
			Return(&business.PreparedAccounts{Validation: result}, &business.StructuralValidationError{Result: result})

		w := doJSON(router, http.MethodPost, "/api/v1/accounts/documents", business.AccountsInput{})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var got ErrorResponse
		decodeBody(t, w, &got)
		require.NotNil(t, got.Validation)
		assert.False(t, got.Validation.IsValid)
		assert.Equal(t, services.CodePLRequiredAllEntities, got.Validation.Errors[0].Code)
	})

	t.Run("incomplete input lists missing fields", func(t *testing.T) {
		router, filing, _ := setupRouter(t)
		filing.EXPECT().PrepareAccounts(gomock.Any(), gomock.Any()).
			Return(nil, &business.IncompleteInputError{Missing: []string{"period_end", "average_employees"}})

		w := doJSON(router, http.MethodPost, "/api/v1/accounts/documents", business.AccountsInput{})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var got ErrorResponse
		decodeBody(t, w, &got)
		assert.Equal(t, []string{"period_end", "average_employees"}, got.Missing)
	})
}

func TestAccountsHandler_ValidateAccounts(t *testing.T) {
	router, filing, _ := setupRouter(t)

	invalid := business.NewValidationResult()
	invalid.AddError(services.CodeMalformedDocument, "document", "document could not be parsed")
	filing.EXPECT().ValidateAccounts(gomock.Any(), []byte("<html>"), business.EntitySizeMicro).Return(invalid, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/validate?entity_size=micro", bytes.NewBufferString("<html>"))
	req.Header.Set("Content-Type", "application/xhtml+xml")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got business.ValidationResult
	decodeBody(t, w, &got)
	assert.False(t, got.IsValid)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/accounts/validate?entity_size=huge", bytes.NewBufferString("<html>"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/accounts/validate?entity_size=small", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountsHandler_Submissions(t *testing.T) {
	router, filing, recorder := setupRouter(t)

	filing.EXPECT().SubmitAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input business.AccountsInput, company business.CompanyInfo) (*business.SubmissionResult, error) {
			assert.Equal(t, "01234567", input.CompanyNumber)
			assert.Equal(t, "A1B2C3", company.AuthenticationCode)
			return &business.SubmissionResult{Status: business.SubmissionStatusAcknowledged, SubmissionNumber: "ABC123"}, nil
		})
	filing.EXPECT().SubmitConfirmationStatement(gomock.Any(), gomock.Any()).
		Return(&business.SubmissionResult{Status: business.SubmissionStatusAcknowledged, SubmissionNumber: "CS0001"}, nil)
	filing.EXPECT().PollRegistrar(gomock.Any(), "ABC123", "CORR").
		Return(&business.SubmissionResult{Status: business.SubmissionStatusAccepted, Barcode: "XAB12CDE"}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/accounts/submissions", SubmitAccountsRequest{
		Accounts: business.AccountsInput{CompanyNumber: "01234567"},
		Company:  business.CompanyInfo{AuthenticationCode: "A1B2C3"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/confirmation-statements/submissions", business.ConfirmationStatementInput{
		CompanyNumber:     "01234567",
		NoUpdatesRequired: true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/v1/registrar/submissions/ABC123/status?correlation_id=CORR", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got business.SubmissionResult
	decodeBody(t, w, &got)
	assert.Equal(t, "XAB12CDE", got.Barcode)

	assert.Equal(t, 2, recorder.counts["companies_house:acknowledged"])
	assert.Equal(t, 1, recorder.counts["companies_house:accepted"])
}

func TestHandleFilingError_Timeouts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err            error
		expectedStatus int
	}{
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, http.StatusServiceUnavailable},
		{&business.IntegrityMarkComputationError{Stage: "canonicalise", Err: errors.New("bad xml")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleFilingError(c, tt.err, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTaxHandler_NegativeFiguresRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Real filing service over a gateway with no expectations.
	gateway := mocks.NewMockTaxReturnGatewayForTest(t)
	recorder := &countingRecorder{counts: map[string]int{}}
	factory := NewHandlerFactory(HandlerFactoryConfig{
		FilingService: services.NewFilingService(gateway, nil),
		Recorder:      recorder,
		Stage:         "dev",
	})
	tax := factory.NewTaxHandler()

	router := gin.New()
	router.POST("/api/v1/tax/computations", tax.ComputeTax)
	router.POST("/api/v1/tax/returns", tax.BuildTaxReturn)
	router.POST("/api/v1/tax/returns/submit", tax.SubmitTaxReturn)

	data := sampleData()
	data.GroupRelief = decimal.RequireFromString("-400000")
	data.RDRelief = decimal.RequireFromString("-5000")

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{name: "compute", path: "/api/v1/tax/computations", body: data},
		{name: "build", path: "/api/v1/tax/returns", body: TaxReturnRequest{FinancialData: data}},
		{name: "submit", path: "/api/v1/tax/returns/submit", body: TaxReturnRequest{FinancialData: data}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			var resp ErrorResponse
			decodeBody(t, w, &resp)
			fields := make([]string, 0, len(resp.Violations))
			for _, v := range resp.Violations {
				fields = append(fields, v.Field)
			}
			assert.ElementsMatch(t, []string{"group_relief", "rd_relief"}, fields)
		})
	}
	assert.Empty(t, recorder.counts)
}
