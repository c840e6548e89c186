package handlers

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"go.uber.org/zap"
)

// MaxBatchSize bounds the number of periods computed per batch request
const MaxBatchSize = 500

// TaxHandler serves corporation tax computations and CT600 returns
type TaxHandler struct {
	common           *CommonServices
	allowedPollHosts map[string]bool
}

// NewTaxHandler creates a tax handler. Caller supplied poll URLs are only
// followed when their host is in allowedPollHosts.
func NewTaxHandler(common *CommonServices, allowedPollHosts []string) *TaxHandler {
	hosts := make(map[string]bool, len(allowedPollHosts))
	for _, h := range allowedPollHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts[h] = true
		}
	}
	return &TaxHandler{common: common, allowedPollHosts: hosts}
}

// ComputeBatchRequest is the body of a batch computation
type ComputeBatchRequest struct {
	Records []business.FinancialData `json:"records" binding:"required,min=1"`
}

// TaxReturnRequest carries everything needed to build or submit a CT600 return
type TaxReturnRequest struct {
	FinancialData business.FinancialData `json:"financial_data"`
	Company       business.CompanyInfo   `json:"company"`
}

// TaxReturnResponse is a built but unsent return
type TaxReturnResponse struct {
	*business.AnnualFilingPackage
	EnvelopeXML string `json:"envelope_xml"`
}

// ComputeTax handles POST /api/v1/tax/computations
func (h *TaxHandler) ComputeTax(c *gin.Context) {
	var data business.FinancialData
	if err := c.ShouldBindJSON(&data); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	computation, err := h.common.filing.ComputeTax(c.Request.Context(), data)
	if err != nil {
		handleFilingError(c, err, nil)
		return
	}
	sendSuccess(c, http.StatusOK, computation)
}

// ComputeTaxBatch handles POST /api/v1/tax/computations/batch
func (h *TaxHandler) ComputeTaxBatch(c *gin.Context) {
	var req ComputeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Records) > MaxBatchSize {
		sendError(c, http.StatusRequestEntityTooLarge, "Too many records in batch", nil)
		return
	}

	computations, err := h.common.filing.ComputeTaxBatch(c.Request.Context(), req.Records)
	if err != nil {
		handleFilingError(c, err, nil)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{
		"object": "list",
		"data":   computations,
	})
}

// BuildTaxReturn handles POST /api/v1/tax/returns. The signed envelope is
// returned base64 encoded and is not sent.
func (h *TaxHandler) BuildTaxReturn(c *gin.Context) {
	var req TaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pkg, err := h.common.filing.BuildTaxReturn(c.Request.Context(), req.FinancialData, req.Company)
	if err != nil {
		handleFilingError(c, err, nil)
		return
	}
	sendSuccess(c, http.StatusOK, TaxReturnResponse{
		AnnualFilingPackage: pkg,
		EnvelopeXML:         base64.StdEncoding.EncodeToString(pkg.TaxReturnXML),
	})
}

// SubmitTaxReturn handles POST /api/v1/tax/returns/submit
func (h *TaxHandler) SubmitTaxReturn(c *gin.Context) {
	var req TaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.common.filing.SubmitTaxReturn(c.Request.Context(), req.FinancialData, req.Company)
	if result != nil {
		h.common.logger.Info("Tax return submitted",
			zap.String("correlation_id", result.CorrelationID),
			zap.String("status", string(result.Status)))
	}
	h.common.respondSubmission(c, business.GatewayHMRC, result, err)
}

// GetTaxReturnStatus handles GET /api/v1/tax/returns/:correlation_id/status.
// The optional poll_url query parameter is the endpoint returned by the
// acknowledgement.
func (h *TaxHandler) GetTaxReturnStatus(c *gin.Context) {
	correlationID := c.Param("correlation_id")
	pollURL := c.Query("poll_url")
	if pollURL != "" && !h.pollURLAllowed(pollURL) {
		sendError(c, http.StatusBadRequest, "poll_url is not a recognised gateway endpoint", nil)
		return
	}

	result, err := h.common.filing.PollTaxReturn(c.Request.Context(), correlationID, pollURL)
	h.common.respondSubmission(c, business.GatewayHMRC, result, err)
}

func (h *TaxHandler) pollURLAllowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	return h.allowedPollHosts[strings.ToLower(u.Hostname())]
}
