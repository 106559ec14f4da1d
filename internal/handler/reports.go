package handler

import (
	"net/http"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/apierror"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc service.ReportService
}

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ProfitLoss godoc
// @Summary Profit and loss aggregate over all, daily, weekly or monthly window
// @Tags reports
// @Produce json
// @Param filter query string false "all | daily | weekly | monthly" default(all)
// @Success 200 {object} dto.ProfitLossResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reports/profit-loss [get]
func (h *ReportsHandler) ProfitLoss(c *gin.Context) {
	filter := c.DefaultQuery("filter", service.FilterAll)
	switch filter {
	case service.FilterAll, service.FilterDaily, service.FilterWeekly, service.FilterMonthly:
	default:
		c.JSON(http.StatusBadRequest, apierror.New("filter must be one of: all, daily, weekly, monthly"))
		return
	}
	resp, err := h.svc.ProfitLossStats(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
