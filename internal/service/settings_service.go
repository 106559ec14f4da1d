package service

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
)

// SettingsService manages the firm letterhead singleton. Fields pass through
// verbatim; the fallback when nothing has been saved is all-empty values.
type SettingsService interface {
	Get(ctx context.Context) (*dto.FirmSettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateFirmSettingsRequest) (*dto.FirmSettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*dto.FirmSettingsResponse, error) {
	firm, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		return &dto.FirmSettingsResponse{}, nil
	}
	return settingsToResponse(firm), nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateFirmSettingsRequest) (*dto.FirmSettingsResponse, error) {
	firm, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		firm = &model.FirmSettings{}
	}
	firm.Name = req.Name
	firm.Address = req.Address
	firm.GSTIN = req.GSTIN
	firm.Contact = req.Contact
	firm.Email = req.Email
	firm.DefaultShippingAddress = req.DefaultShippingAddress
	firm.DILNumber = req.DILNumber
	if err := s.repo.Upsert(ctx, firm); err != nil {
		return nil, err
	}
	return settingsToResponse(firm), nil
}

func settingsToResponse(f *model.FirmSettings) *dto.FirmSettingsResponse {
	return &dto.FirmSettingsResponse{
		Name:                   f.Name,
		Address:                f.Address,
		GSTIN:                  f.GSTIN,
		Contact:                f.Contact,
		Email:                  f.Email,
		DefaultShippingAddress: f.DefaultShippingAddress,
		DILNumber:              f.DILNumber,
	}
}
