package handlers

import (
	"bytes"
	"net/http"

	"availability-service/internal/availability"
	"availability-service/internal/export"
	"availability-service/internal/repository"
	"availability-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteHandler serves quote risk checks and exports
type QuoteHandler struct {
	logger  *zap.Logger
	service *availability.Service
}

func NewQuoteHandler(logger *zap.Logger, service *availability.Service) *QuoteHandler {
	return &QuoteHandler{
		logger:  logger,
		service: service,
	}
}

// AssessRisk handles POST /api/v1/quotes/risk
// @Summary      Classify unsaved quote lines
// @Description  Resolves each referenced item and returns the risk of every line plus the overall level.
// @Description  Unknown or unreadable items make their line, and therefore the whole set, red.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      RiskRequest  true  "Lines to classify"
// @Success      200      {object}  RiskResponse
// @Failure      400      {object}  errors.StandardError  "Invalid body or item id"
// @Failure      401      {object}  errors.StandardError  "Missing or invalid JWT"
// @Router       /quotes/risk [post]
func (h *QuoteHandler) AssessRisk(c *gin.Context) {
	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidRequest("invalid risk request", err.Error()))
		c.Abort()
		return
	}

	requests := make([]availability.LineRequest, len(req.Lines))
	for i, line := range req.Lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			c.Error(errors.NewValidationError("invalid item_id, expected a UUID", "lines.item_id"))
			c.Abort()
			return
		}
		requests[i] = availability.LineRequest{ItemID: itemID, Quantity: line.Quantity}
	}

	assessment := h.service.AssessLines(c.Request.Context(), requests)
	c.JSON(http.StatusOK, newRiskResponse(assessment))
}

// GetQuote handles GET /api/v1/quotes/:id
// @Summary      Get quote with availability
// @Description  Returns the quote, each line with breakdown, buffer and risk, the quote total and the overall risk.
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quote ID (UUID)"
// @Success      200  {object}  QuoteResponse
// @Failure      400  {object}  errors.StandardError  "Malformed UUID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404  {object}  errors.StandardError  "Quote not found"
// @Failure      500  {object}  errors.StandardError  "Database error"
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	qa, ok := h.assessQuote(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(qa))
}

// GetQuoteRisk handles GET /api/v1/quotes/:id/risk
// @Summary      Get quote risk
// @Description  Returns only the per line and overall risk of a stored quote.
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quote ID (UUID)"
// @Success      200  {object}  RiskResponse
// @Failure      400  {object}  errors.StandardError  "Malformed UUID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404  {object}  errors.StandardError  "Quote not found"
// @Failure      500  {object}  errors.StandardError  "Database error"
// @Router       /quotes/{id}/risk [get]
func (h *QuoteHandler) GetQuoteRisk(c *gin.Context) {
	qa, ok := h.assessQuote(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newRiskResponse(qa.Assessment))
}

// ExportQuote handles GET /api/v1/quotes/:id/export
// @Summary      Export quote as spreadsheet
// @Description  Downloads an .xlsx workbook with one row per line and a summary sheet with total and risk.
// @Tags         quotes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id   path      string  true  "Quote ID (UUID)"
// @Success      200  {file}    file
// @Failure      400  {object}  errors.StandardError  "Malformed UUID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404  {object}  errors.StandardError  "Quote not found"
// @Failure      500  {object}  errors.StandardError  "Database or export error"
// @Router       /quotes/{id}/export [get]
func (h *QuoteHandler) ExportQuote(c *gin.Context) {
	qa, ok := h.assessQuote(c)
	if !ok {
		return
	}

	buf := &bytes.Buffer{}
	if err := export.WriteQuoteXLSX(buf, qa); err != nil {
		h.logger.Error("Failed to export quote", zap.String("quote_id", qa.Quote.ID.String()), zap.Error(err))
		c.Error(errors.NewExportError("xlsx", err))
		c.Abort()
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.QuoteFileName(qa.Quote)+`"`)
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

func (h *QuoteHandler) assessQuote(c *gin.Context) (*availability.QuoteAssessment, bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}

	qa, err := h.service.AssessQuote(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrQuoteNotFound {
			c.Error(errors.NewQuoteNotFound(id.String()))
		} else {
			h.logger.Error("Failed to load quote", zap.String("quote_id", id.String()), zap.Error(err))
			c.Error(errors.NewDatabaseError("load quote", err))
		}
		c.Abort()
		return nil, false
	}
	return qa, true
}
