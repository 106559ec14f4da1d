package handler

import (
	"net/http"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the firm letterhead singleton and the full-store
// backup snapshot.
type SettingsHandler struct {
	svc    service.SettingsService
	backup service.BackupService
}

func NewSettingsHandler(svc service.SettingsService, backup service.BackupService) *SettingsHandler {
	return &SettingsHandler{svc: svc, backup: backup}
}

// Get godoc
// @Summary Fetch the firm letterhead settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.FirmSettingsResponse
// @Router /v1/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Overwrite the firm letterhead settings
// @Tags settings
// @Accept json
// @Produce json
// @Param body body dto.UpdateFirmSettingsRequest true "Settings"
// @Success 200 {object} dto.FirmSettingsResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateFirmSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Backup godoc
// @Summary Versioned full-store snapshot
// @Tags settings
// @Produce json
// @Success 200 {object} dto.BackupResponse
// @Router /v1/backup [get]
func (h *SettingsHandler) Backup(c *gin.Context) {
	resp, err := h.backup.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
