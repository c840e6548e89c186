package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/middleware"
	"github.com/ledgerline/filing-api/libs/go/services"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"go.uber.org/zap"
)

// SubmissionRecorder counts gateway outcomes. metrics.Metrics satisfies it.
type SubmissionRecorder interface {
	RecordSubmission(gateway business.Gateway, status business.SubmissionStatus)
}

type noopRecorder struct{}

func (noopRecorder) RecordSubmission(business.Gateway, business.SubmissionStatus) {}

// CommonServices holds the dependencies shared by the filing handlers
type CommonServices struct {
	filing   interfaces.FilingService
	recorder SubmissionRecorder
	logger   *zap.Logger
}

// NewCommonServices creates the shared handler dependencies. A nil recorder
// disables outcome metrics.
func NewCommonServices(filing interfaces.FilingService, recorder SubmissionRecorder, log *zap.Logger) *CommonServices {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if log == nil {
		log = logger.L()
	}
	return &CommonServices{filing: filing, recorder: recorder, logger: log}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error         string                     `json:"error"`
	CorrelationID string                     `json:"correlation_id,omitempty"`
	Violations    []business.FieldViolation  `json:"violations,omitempty"`
	Missing       []string                   `json:"missing,omitempty"`
	Validation    *business.ValidationResult `json:"validation,omitempty"`
}

func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := middleware.GetCorrelationID(c)
	log := logger.L()
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	}
	if statusCode >= http.StatusInternalServerError {
		log.Error(message, fields...)
	} else {
		log.Warn(message, fields...)
	}

	c.JSON(statusCode, ErrorResponse{Error: message, CorrelationID: correlationID})
}

func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// handleFilingError maps the filing error taxonomy onto HTTP responses.
// Business rejections are not errors at the HTTP level: the rejected result
// is returned with 200 so callers can read every gateway error.
func handleFilingError(c *gin.Context, err error, result *business.SubmissionResult) {
	var (
		validationErr *business.ValidationError
		incompleteErr *business.IncompleteInputError
		structuralErr *business.StructuralValidationError
		rejection     *business.GatewayBusinessRejection
		httpErr       *business.GatewayHTTPError
		irmarkErr     *business.IntegrityMarkComputationError
	)

	correlationID := middleware.GetCorrelationID(c)

	switch {
	case errors.As(err, &rejection):
		if result == nil {
			result = rejection.Result
		}
		c.JSON(http.StatusOK, result)
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:         "Invalid financial data",
			CorrelationID: correlationID,
			Violations:    validationErr.Violations,
		})
	case errors.As(err, &incompleteErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:         "Incomplete accounts input",
			CorrelationID: correlationID,
			Missing:       incompleteErr.Missing,
		})
	case errors.As(err, &structuralErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:         "Accounts document failed validation",
			CorrelationID: correlationID,
			Validation:    structuralErr.Result,
		})
	case errors.As(err, &httpErr):
		sendError(c, http.StatusBadGateway, "Gateway request failed", err)
	case errors.As(err, &irmarkErr):
		sendError(c, http.StatusInternalServerError, "Failed to compute IRmark", err)
	case errors.Is(err, services.ErrGatewayNotConfigured):
		sendError(c, http.StatusServiceUnavailable, "Gateway is not configured", err)
	case errors.Is(err, context.DeadlineExceeded):
		sendError(c, http.StatusGatewayTimeout, "Request timed out", err)
	case errors.Is(err, context.Canceled):
		sendError(c, http.StatusServiceUnavailable, "Request cancelled", err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// respondSubmission records the outcome and writes the result or the mapped error
func (s *CommonServices) respondSubmission(c *gin.Context, gateway business.Gateway, result *business.SubmissionResult, err error) {
	if result != nil {
		s.recorder.RecordSubmission(gateway, result.Status)
	}
	if err != nil {
		handleFilingError(c, err, result)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}
