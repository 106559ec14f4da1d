package handler

import (
	"net/http"
	"strconv"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// DoctorsHandler exposes the doctor registry, their custom price lists,
// the price-change audit trail and the credit ledger summary.
type DoctorsHandler struct {
	svc     service.DoctorService
	pricing service.PricingService
	ledger  service.LedgerService
}

func NewDoctorsHandler(svc service.DoctorService, pricing service.PricingService, ledger service.LedgerService) *DoctorsHandler {
	return &DoctorsHandler{svc: svc, pricing: pricing, ledger: ledger}
}

// Create godoc
// @Summary Register a doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Param body body dto.CreateDoctorRequest true "Doctor"
// @Success 201 {object} dto.DoctorResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/doctors [post]
func (h *DoctorsHandler) Create(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List all doctors with their override maps
// @Tags doctors
// @Produce json
// @Success 200 {array} dto.DoctorResponse
// @Router /v1/doctors [get]
func (h *DoctorsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one doctor by name
// @Tags doctors
// @Produce json
// @Param name path string true "Doctor name"
// @Success 200 {object} dto.DoctorResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name} [get]
func (h *DoctorsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update a doctor's shipping address
// @Tags doctors
// @Accept json
// @Produce json
// @Param name path string true "Doctor name"
// @Param body body dto.UpdateDoctorRequest true "Fields"
// @Success 200 {object} dto.DoctorResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name} [put]
func (h *DoctorsHandler) Update(c *gin.Context) {
	var req dto.UpdateDoctorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Remove a doctor and their custom price list
// @Tags doctors
// @Param name path string true "Doctor name"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name} [delete]
func (h *DoctorsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Prices godoc
// @Summary The doctor's override map (medicine name → price)
// @Tags doctors
// @Produce json
// @Param name path string true "Doctor name"
// @Success 200 {object} map[string]int64
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name}/prices [get]
func (h *DoctorsHandler) Prices(c *gin.Context) {
	prices, err := h.pricing.AllPrices(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

// ResolvePrice godoc
// @Summary Effective unit price this doctor pays for a medicine
// @Tags doctors
// @Produce json
// @Param name path string true "Doctor name"
// @Param medicine path string true "Medicine name"
// @Success 200 {object} dto.ResolvedPriceResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name}/prices/{medicine} [get]
func (h *DoctorsHandler) ResolvePrice(c *gin.Context) {
	doctorName := c.Param("name")
	medicineName := c.Param("medicine")
	price, overridden, err := h.pricing.ResolvePrice(c.Request.Context(), doctorName, medicineName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResolvedPriceResponse{
		DoctorName:   doctorName,
		MedicineName: medicineName,
		Price:        price,
		Overridden:   overridden,
	})
}

// SetPrice godoc
// @Summary Set a doctor's custom price for a medicine
// @Tags doctors
// @Accept json
// @Param name path string true "Doctor name"
// @Param medicine path string true "Medicine name"
// @Param body body dto.SetPriceRequest true "Price"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name}/prices/{medicine} [put]
func (h *DoctorsHandler) SetPrice(c *gin.Context) {
	var req dto.SetPriceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.pricing.SetOverride(c.Request.Context(), c.Param("name"), c.Param("medicine"), req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearPrice godoc
// @Summary Remove a doctor's custom price so the base rate applies again
// @Tags doctors
// @Param name path string true "Doctor name"
// @Param medicine path string true "Medicine name"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name}/prices/{medicine} [delete]
func (h *DoctorsHandler) ClearPrice(c *gin.Context) {
	if err := h.pricing.ClearOverride(c.Request.Context(), c.Param("name"), c.Param("medicine")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PriceHistory godoc
// @Summary Page through a doctor's price-change audit trail
// @Tags doctors
// @Produce json
// @Param name path string true "Doctor name"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.PriceChangeListResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name}/price-history [get]
func (h *DoctorsHandler) PriceHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.pricing.PriceHistory(c.Request.Context(), c.Param("name"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ledger godoc
// @Summary Credit position of one doctor across all their credit invoices
// @Tags doctors
// @Produce json
// @Param name path string true "Doctor name"
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/doctors/{name}/ledger [get]
func (h *DoctorsHandler) Ledger(c *gin.Context) {
	resp, err := h.ledger.DoctorLedgerSummary(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
