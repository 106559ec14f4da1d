package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/apierror"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const priceCacheTTL = 4 * time.Hour

// PriceCheckHandler serves the public price check endpoint.
// Read-only, no side effects; answers go through a Redis cache that the
// catalog service invalidates on every medicine edit.
type PriceCheckHandler struct {
	medicineRepo repository.MedicineRepository
	invoiceRepo  repository.InvoiceRepository
	rdb          *redis.Client
}

func NewPriceCheckHandler(medicineRepo repository.MedicineRepository, invoiceRepo repository.InvoiceRepository, rdb *redis.Client) *PriceCheckHandler {
	return &PriceCheckHandler{medicineRepo: medicineRepo, invoiceRepo: invoiceRepo, rdb: rdb}
}

// GetPrice godoc
// @Summary Public price check by medicine name
// @Tags price
// @Produce json
// @Param medicine path string true "Medicine name"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{medicine} [get]
func (h *PriceCheckHandler) GetPrice(c *gin.Context) {
	name := c.Param("medicine")
	ctx := c.Request.Context()
	cacheKey := "price:" + name

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceCheckResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	medicine, err := h.medicineRepo.FindByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("medicine not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	billed, err := h.invoiceRepo.TotalBilled(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	pos := service.DerivePosition(medicine, billed)

	resp := dto.PriceCheckResponse{
		Name:            medicine.Name,
		BaseSellingRate: medicine.BaseSellingRate,
		MRP:             medicine.MRP,
		InHandStock:     pos.InHand,
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
