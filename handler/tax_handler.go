package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greengrowth-cpas/tax-agent/client"
	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/greengrowth-cpas/tax-agent/service"
	"go.uber.org/zap"
)

type TaxHandler struct {
	extractionService *service.ExtractionService
	taxService        *service.TaxService
	reportService     *service.ReportService
	maxFileSize       int64
	logger            *zap.Logger
}

func NewTaxHandler(
	extractionService *service.ExtractionService,
	taxService *service.TaxService,
	reportService *service.ReportService,
	maxFileSize int64,
	logger *zap.Logger,
) *TaxHandler {
	return &TaxHandler{
		extractionService: extractionService,
		taxService:        taxService,
		reportService:     reportService,
		maxFileSize:       maxFileSize,
		logger:            logger,
	}
}

// Upload handles POST /tax/upload: W-2 PDF in, extracted fields out.
// A failure mid-pipeline can leave the session partially populated (raw text
// without fields); every consumer re-checks presence before trusting a field.
func (h *TaxHandler) Upload(c *gin.Context) {
	sess := CurrentSession(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "UPLOAD_FAILED", "A W-2 PDF file is required", err)
		return
	}
	if fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusRequestEntityTooLarge, "UPLOAD_FAILED",
			fmt.Sprintf("File exceeds the %d MB limit", h.maxFileSize/(1024*1024)), nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		h.sendError(c, http.StatusBadRequest, "UPLOAD_FAILED", "Only PDF uploads are supported", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "UPLOAD_FAILED", "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "UPLOAD_FAILED", "Failed to read uploaded file", err)
		return
	}

	rawText, err := h.extractionService.ExtractDocumentText(pdfData)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED",
			"No readable text found in the PDF. Please try a different file.", err)
		return
	}
	sess.SetRawText(rawText)

	fields, err := h.extractionService.ExtractFields(c.Request.Context(), rawText)
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}
	sess.SetFields(fields)

	h.logger.Info("W-2 processed",
		zap.String("session_id", sess.ID),
		zap.Int("raw_text_chars", len(rawText)),
		zap.Int("field_count", len(fields)))

	c.JSON(http.StatusOK, dto.UploadResponse{
		Fields:       fields,
		RawTextChars: len(rawText),
		ProcessedAt:  time.Now().Format(time.RFC3339),
	})
}

// Calculate handles POST /tax/calculate using the fields stored at upload time.
func (h *TaxHandler) Calculate(c *gin.Context) {
	sess := CurrentSession(c)

	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "CALCULATION_FAILED", "Invalid calculation request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "CALCULATION_FAILED", err.Error(), err)
		return
	}

	fields := sess.Fields()
	if len(fields) == 0 {
		h.sendError(c, http.StatusConflict, "CALCULATION_FAILED", dto.ErrNoExtractedFields.Error(), nil)
		return
	}

	status := dto.ParseFilingStatus(req.FilingStatus)
	summary, warnings, err := h.taxService.ComputeSummary(fields, status, req.AdditionalDeductions)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "CALCULATION_FAILED", "Tax calculation failed", err)
		return
	}
	sess.SetSummary(summary)

	c.JSON(http.StatusOK, dto.CalculateResponse{
		Summary:  summary,
		Warnings: warnings,
	})
}

// DownloadReport handles GET /tax/report, serving the HTML return summary.
func (h *TaxHandler) DownloadReport(c *gin.Context) {
	sess := CurrentSession(c)

	summary := sess.Summary()
	if summary == nil {
		h.sendError(c, http.StatusNotFound, "REPORT_UNAVAILABLE", dto.ErrNoSummary.Error(), nil)
		return
	}

	doc, err := h.reportService.Render(summary)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "REPORT_UNAVAILABLE", "Failed to render return summary", err)
		return
	}

	filename := h.reportService.Filename(summary)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// sendExtractionError maps extraction failures onto the error taxonomy:
// malformed input is the user's problem, upstream status and transport
// failures are the collaborator's.
func (h *TaxHandler) sendExtractionError(c *gin.Context, err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, service.ErrNoJSONFound):
		h.sendError(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED",
			"No structured data found in the model reply. Please try a different file.", err)
	case errors.As(err, &apiErr):
		h.sendError(c, http.StatusBadGateway, "EXTRACTION_FAILED",
			fmt.Sprintf("Extraction service failed: %d - %s", apiErr.Status, apiErr.Body), err)
	case strings.Contains(err.Error(), "failed to decode extracted JSON"):
		h.sendError(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED",
			"The model reply could not be decoded. Please try a different file.", err)
	default:
		h.sendError(c, http.StatusGatewayTimeout, "EXTRACTION_FAILED",
			fmt.Sprintf("Extraction service unavailable: %v", err), err)
	}
}

// sendError sends a structured error response
func (h *TaxHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	if err != nil {
		h.logger.Warn(message, zap.Error(err), zap.Int("status", statusCode))
	}
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}
