package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/filing-api/libs/go/constants"
	"github.com/ledgerline/filing-api/libs/go/types/business"
)

// AccountsHandler serves accounts documents and registrar filings
type AccountsHandler struct {
	common *CommonServices
}

func NewAccountsHandler(common *CommonServices) *AccountsHandler {
	return &AccountsHandler{common: common}
}

// SubmitAccountsRequest is the body of an accounts filing
type SubmitAccountsRequest struct {
	Accounts business.AccountsInput `json:"accounts"`
	Company  business.CompanyInfo   `json:"company"`
}

// PreparedAccountsResponse is the JSON rendering of prepared accounts
type PreparedAccountsResponse struct {
	*business.PreparedAccounts
	XHTML string `json:"xhtml"`
}

// PrepareAccounts handles POST /api/v1/accounts/documents. Clients that
// accept application/xhtml+xml get the document itself; others get JSON.
func (h *AccountsHandler) PrepareAccounts(c *gin.Context) {
	var input business.AccountsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	prepared, err := h.common.filing.PrepareAccounts(c.Request.Context(), input)
	if err != nil {
		handleFilingError(c, err, nil)
		return
	}

	if c.NegotiateFormat(gin.MIMEJSON, constants.ContentTypeXHTML) == constants.ContentTypeXHTML {
		c.Header("X-Entity-Size", string(prepared.EntitySize))
		c.Header("X-Fact-Count", strconv.Itoa(prepared.FactCount))
		c.Data(http.StatusOK, constants.ContentTypeXHTML, prepared.XHTML)
		return
	}
	sendSuccess(c, http.StatusOK, PreparedAccountsResponse{
		PreparedAccounts: prepared,
		XHTML:            string(prepared.XHTML),
	})
}

// ValidateAccounts handles POST /api/v1/accounts/validate?entity_size=small.
// The body is an inline XBRL document; validation findings are returned
// with 200 whether or not the document is valid.
func (h *AccountsHandler) ValidateAccounts(c *gin.Context) {
	size := business.EntitySize(c.Query("entity_size"))
	if !size.IsValid() {
		sendError(c, http.StatusBadRequest, "entity_size must be one of micro, small, medium, large", nil)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		sendError(c, http.StatusRequestEntityTooLarge, "Failed to read request body", err)
		return
	}
	if len(body) == 0 {
		sendError(c, http.StatusBadRequest, "Request body is empty", nil)
		return
	}

	result, err := h.common.filing.ValidateAccounts(c.Request.Context(), body, size)
	if err != nil {
		handleFilingError(c, err, nil)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// SubmitAccounts handles POST /api/v1/accounts/submissions
func (h *AccountsHandler) SubmitAccounts(c *gin.Context) {
	var req SubmitAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.common.filing.SubmitAccounts(c.Request.Context(), req.Accounts, req.Company)
	h.common.respondSubmission(c, business.GatewayCompaniesHouse, result, err)
}

// SubmitConfirmationStatement handles POST /api/v1/confirmation-statements/submissions
func (h *AccountsHandler) SubmitConfirmationStatement(c *gin.Context) {
	var input business.ConfirmationStatementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.common.filing.SubmitConfirmationStatement(c.Request.Context(), input)
	h.common.respondSubmission(c, business.GatewayCompaniesHouse, result, err)
}

// GetRegistrarStatus handles GET /api/v1/registrar/submissions/:submission_number/status
func (h *AccountsHandler) GetRegistrarStatus(c *gin.Context) {
	submissionNumber := c.Param("submission_number")
	correlationID := c.Query("correlation_id")

	result, err := h.common.filing.PollRegistrar(c.Request.Context(), submissionNumber, correlationID)
	h.common.respondSubmission(c, business.GatewayCompaniesHouse, result, err)
}
