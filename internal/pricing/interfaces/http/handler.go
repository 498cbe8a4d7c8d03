// Package http exposes the pricing service over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionpricer/internal/pricing/application"
	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
	"github.com/wyfcoding/optionpricer/pkg/response"
)

type PricingHandler struct {
	commands *application.PricingCommandService
	queries  *application.PricingQuery
}

func NewPricingHandler(commands *application.PricingCommandService, queries *application.PricingQuery) *PricingHandler {
	return &PricingHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts the pricing API under /api/v1/pricing.
func (h *PricingHandler) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/api/v1/pricing")
	{
		group.POST("/option/price", h.PriceOption)
		group.POST("/option/price/batch", h.BatchPriceOptions)
		group.GET("/results/:symbol", h.GetLatestResult)
		group.GET("/results/:symbol/history", h.GetResultHistory)
	}
	r.GET("/health", h.Health)
}

type durationRequest struct {
	Value  float64 `json:"value" binding:"required"`
	Factor float64 `json:"factor" binding:"required"`
}

type priceOptionRequest struct {
	Symbol          string          `json:"symbol" binding:"required"`
	OptionType      string          `json:"option_type" binding:"required"`
	StrikePrice     float64         `json:"strike_price" binding:"required,gt=0"`
	UnderlyingPrice float64         `json:"underlying_price" binding:"required,gt=0"`
	Expiry          durationRequest `json:"expiry" binding:"required"`
	RiskFreeRate    float64         `json:"risk_free_rate"`
	Volatility      float64         `json:"volatility" binding:"required,gt=0"`
	Steps           int             `json:"steps"`
}

type batchPriceRequest struct {
	BatchID   string               `json:"batch_id"`
	Contracts []priceOptionRequest `json:"contracts" binding:"required,min=1,dive"`
}

func toCommand(req priceOptionRequest) application.PriceOptionCommand {
	return application.PriceOptionCommand{
		Symbol:          req.Symbol,
		OptionType:      req.OptionType,
		StrikePrice:     req.StrikePrice,
		UnderlyingPrice: req.UnderlyingPrice,
		Expiry:          domain.TimeDuration{Value: req.Expiry.Value, Factor: req.Expiry.Factor},
		RiskFreeRate:    req.RiskFreeRate,
		Volatility:      req.Volatility,
		Steps:           req.Steps,
	}
}

// PriceOption prices a single American option.
func (h *PricingHandler) PriceOption(c *gin.Context) {
	var req priceOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.commands.PriceOption(c.Request.Context(), toCommand(req))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, result)
}

// BatchPriceOptions prices a batch of contracts.
func (h *PricingHandler) BatchPriceOptions(c *gin.Context) {
	var req batchPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.BatchPriceOptionsCommand{BatchID: req.BatchID}
	for _, contract := range req.Contracts {
		cmd.Contracts = append(cmd.Contracts, toCommand(contract))
	}

	result, err := h.commands.BatchPriceOptions(c.Request.Context(), cmd)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, result)
}

// GetLatestResult returns the freshest pricing result for a symbol.
func (h *PricingHandler) GetLatestResult(c *gin.Context) {
	result, err := h.queries.GetLatestResult(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, result)
}

// GetResultHistory returns recent pricing results for a symbol, newest first.
func (h *PricingHandler) GetResultHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	results, err := h.queries.GetResultHistory(c.Request.Context(), c.Param("symbol"), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, results)
}

func (h *PricingHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderError maps domain errors onto HTTP status codes.
func (h *PricingHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOptionType),
		errors.Is(err, domain.ErrInvalidStepCount),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidParams),
		errors.Is(err, domain.ErrDegenerateLattice):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrResultNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
	default:
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error())
	}
}
