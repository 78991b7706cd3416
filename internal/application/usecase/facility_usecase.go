package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// FacilityUseCase casos de uso CRUD para instalaciones y sus áreas.
type FacilityUseCase struct {
	facilityRepo repository.FacilityRepository
	areaRepo     repository.AreaRepository
}

// NewFacilityUseCase construye el caso de uso.
func NewFacilityUseCase(facilityRepo repository.FacilityRepository, areaRepo repository.AreaRepository) *FacilityUseCase {
	return &FacilityUseCase{facilityRepo: facilityRepo, areaRepo: areaRepo}
}

// Create crea una nueva instalación para la empresa.
func (uc *FacilityUseCase) Create(companyID string, in dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	facility := &entity.Facility{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.facilityRepo.Create(facility); err != nil {
		return nil, err
	}
	resp := dto.ToFacilityResponse(facility)
	return &resp, nil
}

// GetByID obtiene una instalación verificando que pertenezca a la empresa.
func (uc *FacilityUseCase) GetByID(companyID, id string) (*dto.FacilityResponse, error) {
	facility, err := uc.facilityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrNotFound
	}
	if facility.CompanyID != companyID {
		return nil, domain.ErrOwnershipMismatch
	}
	resp := dto.ToFacilityResponse(facility)
	return &resp, nil
}

// List lista las instalaciones de la empresa con paginación.
func (uc *FacilityUseCase) List(companyID string, page dto.PageRequest) ([]dto.FacilityResponse, error) {
	page.DefaultPage()
	list, err := uc.facilityRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacilityResponse, 0, len(list))
	for _, f := range list {
		items = append(items, dto.ToFacilityResponse(f))
	}
	return items, nil
}

// CreateArea crea un área dentro de una instalación de la empresa.
func (uc *FacilityUseCase) CreateArea(companyID, facilityID string, in dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.facilityRepo.GetByID(facilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrNotFound
	}
	if facility.CompanyID != companyID {
		return nil, domain.ErrOwnershipMismatch
	}
	now := time.Now()
	area := &entity.Area{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		FacilityID:       facilityID,
		Name:             in.Name,
		AreaType:         in.AreaType,
		Capacity:         in.Capacity,
		CurrentOccupancy: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.areaRepo.Create(area); err != nil {
		return nil, err
	}
	resp := dto.ToAreaResponse(area)
	return &resp, nil
}

// ListAreas lista las áreas de una instalación de la empresa.
func (uc *FacilityUseCase) ListAreas(companyID, facilityID string, page dto.PageRequest) ([]dto.AreaResponse, error) {
	facility, err := uc.facilityRepo.GetByID(facilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrNotFound
	}
	if facility.CompanyID != companyID {
		return nil, domain.ErrOwnershipMismatch
	}
	page.DefaultPage()
	list, err := uc.areaRepo.ListByFacility(facilityID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ToAreaResponse(a))
	}
	return items, nil
}
