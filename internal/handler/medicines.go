package handler

import (
	"net/http"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// MedicinesHandler exposes the catalog plus the derived stock operations.
type MedicinesHandler struct {
	svc   service.MedicineService
	stock service.StockService
}

func NewMedicinesHandler(svc service.MedicineService, stock service.StockService) *MedicinesHandler {
	return &MedicinesHandler{svc: svc, stock: stock}
}

// Upsert godoc
// @Summary Create a medicine or update every field of an existing one
// @Tags medicines
// @Accept json
// @Produce json
// @Param body body dto.UpsertMedicineRequest true "Medicine"
// @Success 200 {object} dto.MedicineResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/medicines [post]
func (h *MedicinesHandler) Upsert(c *gin.Context) {
	var req dto.UpsertMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List the catalog with derived stock columns
// @Tags medicines
// @Produce json
// @Success 200 {array} dto.MedicineResponse
// @Router /v1/medicines [get]
func (h *MedicinesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one medicine by name
// @Tags medicines
// @Produce json
// @Param name path string true "Medicine name"
// @Success 200 {object} dto.MedicineResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/medicines/{name} [get]
func (h *MedicinesHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Remove a medicine from the catalog
// @Tags medicines
// @Param name path string true "Medicine name"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/medicines/{name} [delete]
func (h *MedicinesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Billed godoc
// @Summary Total quantity billed for one medicine across all invoices
// @Tags medicines
// @Produce json
// @Param name path string true "Medicine name"
// @Success 200 {object} dto.BilledQuantityResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/medicines/{name}/billed [get]
func (h *MedicinesHandler) Billed(c *gin.Context) {
	name := c.Param("name")
	billed, err := h.stock.TotalBilled(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BilledQuantityResponse{Name: name, TotalBilled: billed})
}

// UpdateOpeningStock godoc
// @Summary Set the opening stock counter
// @Tags medicines
// @Accept json
// @Param name path string true "Medicine name"
// @Param body body dto.StockValueRequest true "New value"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/medicines/{name}/opening-stock [patch]
func (h *MedicinesHandler) UpdateOpeningStock(c *gin.Context) {
	var req dto.StockValueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.stock.UpdateOpeningStock(c.Request.Context(), c.Param("name"), req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSampling godoc
// @Summary Set the sampling counter
// @Tags medicines
// @Accept json
// @Param name path string true "Medicine name"
// @Param body body dto.StockValueRequest true "New value"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/medicines/{name}/sampling [patch]
func (h *MedicinesHandler) UpdateSampling(c *gin.Context) {
	var req dto.StockValueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.stock.UpdateSampling(c.Request.Context(), c.Param("name"), req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReduceStock godoc
// @Summary Decrement the raw purchasable stock counter
// @Tags medicines
// @Accept json
// @Param name path string true "Medicine name"
// @Param body body dto.ReduceStockRequest true "Quantity to subtract"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/medicines/{name}/reduce-stock [patch]
func (h *MedicinesHandler) ReduceStock(c *gin.Context) {
	var req dto.ReduceStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.stock.ReduceStock(c.Request.Context(), c.Param("name"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
