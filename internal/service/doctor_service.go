package service

import (
	"context"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
)

// DoctorService manages the customer registry. Doctors are keyed by name;
// their custom price lists live in PricingService.
type DoctorService interface {
	Create(ctx context.Context, req dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, name string, req dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Get(ctx context.Context, name string) (*dto.DoctorResponse, error)
	List(ctx context.Context) ([]dto.DoctorResponse, error)
	Delete(ctx context.Context, name string) error
}

type doctorService struct {
	repo repository.DoctorRepository
}

func NewDoctorService(repo repository.DoctorRepository) DoctorService {
	return &doctorService{repo: repo}
}

func (s *doctorService) Create(ctx context.Context, req dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	_, err := s.repo.FindByName(ctx, req.Name)
	if err == nil {
		return nil, ErrDuplicateKey
	}
	if !isNotFound(err) {
		return nil, err
	}
	doctor := &model.Doctor{Name: req.Name, ShippingAddress: req.ShippingAddress}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return s.doctorToResponse(ctx, doctor)
}

func (s *doctorService) Update(ctx context.Context, name string, req dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}
	doctor.ShippingAddress = req.ShippingAddress
	if err := s.repo.Save(ctx, doctor); err != nil {
		return nil, err
	}
	return s.doctorToResponse(ctx, doctor)
}

func (s *doctorService) Get(ctx context.Context, name string) (*dto.DoctorResponse, error) {
	doctor, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}
	return s.doctorToResponse(ctx, doctor)
}

func (s *doctorService) List(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		resp, err := s.doctorToResponse(ctx, &doctors[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Delete removes the doctor and, via the FK cascade, their custom price
// list. Past invoices keep the doctor's name as a plain string.
func (s *doctorService) Delete(ctx context.Context, name string) error {
	if _, err := s.repo.FindByName(ctx, name); err != nil {
		if isNotFound(err) {
			return ErrUnknownDoctor
		}
		return err
	}
	return s.repo.DeleteByName(ctx, name)
}

func (s *doctorService) doctorToResponse(ctx context.Context, d *model.Doctor) (*dto.DoctorResponse, error) {
	prices, err := s.repo.ListPrices(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	custom := make(map[string]int64, len(prices))
	for _, p := range prices {
		custom[p.MedicineName] = p.Price
	}
	return &dto.DoctorResponse{
		Name:            d.Name,
		ShippingAddress: d.ShippingAddress,
		CustomPrices:    custom,
	}, nil
}
