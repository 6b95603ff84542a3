package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

// SalesHandler exposes the sales reports.
type SalesHandler struct {
	facade SalesFacade
}

// NewSalesHandler constructs SalesHandler.
func NewSalesHandler(facade SalesFacade) *SalesHandler {
	return &SalesHandler{facade: facade}
}

// Overview handles GET /orders/sales.
func (h *SalesHandler) Overview(c *gin.Context) {
	overview, err := h.facade.SalesOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.SalesOverviewResponse{
		Daily:   dto.NewSalesResponse(overview.Daily),
		Monthly: dto.NewSalesResponse(overview.Monthly),
	})
}

// Daily handles GET /orders/sales/daily?date=YYYY-MM-DD.
func (h *SalesHandler) Daily(c *gin.Context) {
	summary, err := h.facade.DailySales(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.NewSalesResponse(summary))
}

// Monthly handles GET /orders/sales/monthly?month=YYYY-MM.
func (h *SalesHandler) Monthly(c *gin.Context) {
	summary, err := h.facade.MonthlySales(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.NewSalesResponse(summary))
}
