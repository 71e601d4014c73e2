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
	"github.com/gin-gonic/gin"
)

// statisticsHandler handles HTTP requests for aggregate reports.
type statisticsHandler struct {
	statisticsService portssvc.StatisticsSvc
}

func newStatisticsHandler(ss portssvc.StatisticsSvc) *statisticsHandler {
	return &statisticsHandler{
		statisticsService: ss,
	}
}

func registerStatisticsRoutes(rg *gin.RouterGroup, statisticsService portssvc.StatisticsSvc) {
	h := newStatisticsHandler(statisticsService)

	stats := rg.Group("/stats")
	{
		stats.GET("/most-spent", h.getMostSpent)
		stats.GET("/balance", h.getBalance)
	}
}

// getMostSpent godoc
// @Summary Rank expense groups
// @Description Sums expenses in one currency per group and returns the largest groups first
// @Tags statistics
// @Produce  json
// @Param   filterBy query string true "Grouping attribute" Enums(CATEGORY, YEAR_MONTH, IBAN, CURRENCY, DATE)
// @Param   resultSize query int true "Maximum number of groups"
// @Param   currency query string true "3-letter currency code"
// @Success 200 {array} dto.TopSpentByResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 501 {object} map[string]string "Grouping attribute not supported yet"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Router /stats/most-spent [get]
func (h *statisticsHandler) getMostSpent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.MostSpentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind most-spent query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	attribute, err := domain.ParseFilterAttribute(query.FilterBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.statisticsService.MostSpentByAttribute(c.Request.Context(), attribute, query.ResultSize, query.Currency)
	if err != nil {
		writeStatisticsError(c, err)
		return
	}

	trackStatisticsQuery(c, attribute, query.Currency)
	c.JSON(http.StatusOK, dto.ToTopSpentByResponse(rows))
}

// getBalance godoc
// @Summary Balance of one attribute value
// @Description Splits the movements matching the attribute value in one currency into expenses and income
// @Tags statistics
// @Produce  json
// @Param   filterBy query string true "Filter attribute" Enums(CATEGORY, YEAR_MONTH, IBAN, CURRENCY, DATE)
// @Param   value query string true "Attribute value, e.g. an IBAN"
// @Param   currency query string true "3-letter currency code"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 501 {object} map[string]string "Filter attribute not supported yet"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Router /stats/balance [get]
func (h *statisticsHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind balance query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	attribute, err := domain.ParseFilterAttribute(query.FilterBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.statisticsService.BalanceByAttribute(c.Request.Context(), attribute, query.Value, query.Currency)
	if err != nil {
		writeStatisticsError(c, err)
		return
	}

	trackStatisticsQuery(c, attribute, query.Currency)
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func trackStatisticsQuery(c *gin.Context, attribute domain.FilterAttribute, currency string) {
	middleware.SetAnalyticsProperty(c, "filter_by", string(attribute))
	middleware.SetAnalyticsProperty(c, "currency", currency)
}

func writeStatisticsError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotImplemented):
		logger.Info("Unsupported statistics request", slog.String("error", err.Error()))
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid statistics request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to compute statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
	}
}
