package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// CultivarUseCase casos de uso para cultivares y el catálogo de tipos de
// cultivo.
type CultivarUseCase struct {
	cultivarRepo repository.CultivarRepository
	cropTypeRepo repository.CropTypeRepository
}

// NewCultivarUseCase construye el caso de uso.
func NewCultivarUseCase(cultivarRepo repository.CultivarRepository, cropTypeRepo repository.CropTypeRepository) *CultivarUseCase {
	return &CultivarUseCase{cultivarRepo: cultivarRepo, cropTypeRepo: cropTypeRepo}
}

// Create crea un cultivar; el tipo de cultivo debe existir en el catálogo.
func (uc *CultivarUseCase) Create(companyID string, in dto.CreateCultivarRequest) (*dto.CultivarResponse, error) {
	if in.Name == "" || in.CropTypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	cropType, err := uc.cropTypeRepo.GetByID(in.CropTypeID)
	if err != nil {
		return nil, err
	}
	if cropType == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	cultivar := &entity.Cultivar{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CropTypeID:  in.CropTypeID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.cultivarRepo.Create(cultivar); err != nil {
		return nil, err
	}
	resp := dto.ToCultivarResponse(cultivar)
	return &resp, nil
}

// GetByID obtiene un cultivar verificando que pertenezca a la empresa.
func (uc *CultivarUseCase) GetByID(companyID, id string) (*dto.CultivarResponse, error) {
	cultivar, err := uc.cultivarRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cultivar == nil {
		return nil, domain.ErrNotFound
	}
	if cultivar.CompanyID != companyID {
		return nil, domain.ErrOwnershipMismatch
	}
	resp := dto.ToCultivarResponse(cultivar)
	return &resp, nil
}

// List lista los cultivares de la empresa con paginación.
func (uc *CultivarUseCase) List(companyID string, page dto.PageRequest) ([]dto.CultivarResponse, error) {
	page.DefaultPage()
	list, err := uc.cultivarRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CultivarResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ToCultivarResponse(c))
	}
	return items, nil
}

// ListCropTypes devuelve el catálogo completo de tipos de cultivo.
func (uc *CultivarUseCase) ListCropTypes() ([]dto.CropTypeResponse, error) {
	list, err := uc.cropTypeRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CropTypeResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ToCropTypeResponse(c))
	}
	return items, nil
}
