package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
	"github.com/SscSPs/transaction_analyzer/internal/dto"
	"github.com/SscSPs/transaction_analyzer/internal/middleware"
	"github.com/SscSPs/transaction_analyzer/internal/utils/upload"
	"github.com/gin-gonic/gin"
)

const importFileField = "file"

// importHandler handles HTTP requests related to CSV imports.
type importHandler struct {
	importService  portssvc.ImportSvc
	jobService     portssvc.ImportJobReaderSvc
	maxUploadBytes int64
}

func newImportHandler(is portssvc.ImportSvc, js portssvc.ImportJobReaderSvc, maxUploadBytes int64) *importHandler {
	return &importHandler{
		importService:  is,
		jobService:     js,
		maxUploadBytes: maxUploadBytes,
	}
}

// registerImportRoutes registers routes related to imports. guards run before the upload handler only.
func registerImportRoutes(rg *gin.RouterGroup, h *importHandler, guards ...gin.HandlerFunc) {
	imports := rg.Group("/imports")
	{
		imports.POST("", append(guards, h.startImport)...)
		imports.GET("/:importJobID/status", h.getImportStatus)
	}
}

// startImport godoc
// @Summary Import transactions from a CSV file
// @Description Stores the uploaded CSV and imports it in the background. Poll the returned job for the outcome.
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "CSV file with columns iban,date,currency,category,amount"
// @Success 202 {object} dto.ImportJobResponse
// @Failure 400 {object} map[string]string "Missing file"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to start import"
// @Router /imports [post]
func (h *importHandler) startImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile(importFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Import upload too large", slog.Int64("limit_bytes", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		logger.Warn("Import request without file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing multipart file field '" + importFileField + "'"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	// The multipart parts are removed when the request ends; the import outlives it.
	spooled, err := upload.Spool(src, "")
	if err != nil {
		logger.Error("Failed to spool uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	logger.Info("Received import request", slog.String("filename", fileHeader.Filename), slog.Int64("size_bytes", fileHeader.Size))

	job, err := h.importService.ProcessImport(c.Request.Context(), spooled)
	if err != nil {
		logger.Error("Failed to start import", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start import"})
		return
	}

	logger.Info("Import job started", slog.String("import_job_id", job.ID.String()))
	middleware.SetAnalyticsProperty(c, "import_job_id", job.ID.String())
	middleware.SetAnalyticsProperty(c, "upload_bytes", fileHeader.Size)
	c.JSON(http.StatusAccepted, dto.ToImportJobResponse(job))
}

// getImportStatus godoc
// @Summary Get the status of an import job
// @Description Returns the current state of an import job, including the failure message of failed imports
// @Tags imports
// @Produce  json
// @Param   importJobID path string true "Import job ID"
// @Success 200 {object} dto.ImportJobResponse
// @Failure 400 {object} map[string]string "Malformed import job ID"
// @Failure 404 {object} map[string]string "Import job not found"
// @Failure 500 {object} map[string]string "Failed to retrieve import job"
// @Router /imports/{importJobID}/status [get]
func (h *importHandler) getImportStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rawID := c.Param("importJobID")

	id, err := domain.ParseImportJobID(rawID)
	if err != nil {
		logger.Warn("Malformed import job ID", slog.String("import_job_id", rawID))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("import_job_id", id.String()))
	job, err := h.jobService.GetImportJobByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Import job not found")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get import job from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve import job"})
		}
		return
	}

	middleware.SetAnalyticsProperty(c, "import_status", string(job.Status))
	c.JSON(http.StatusOK, dto.ToImportJobResponse(job))
}
