package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// ProductionOrderUseCase casos de uso CRUD para órdenes de producción.
// Los contadores (actual_plants, actual_yield) los acumula el motor de lotes.
type ProductionOrderUseCase struct {
	orderRepo    repository.ProductionOrderRepository
	cropTypeRepo repository.CropTypeRepository
	cultivarRepo repository.CultivarRepository
}

// NewProductionOrderUseCase construye el caso de uso.
func NewProductionOrderUseCase(orderRepo repository.ProductionOrderRepository, cropTypeRepo repository.CropTypeRepository, cultivarRepo repository.CultivarRepository) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{orderRepo: orderRepo, cropTypeRepo: cropTypeRepo, cultivarRepo: cultivarRepo}
}

// Create crea una orden de producción en estado "open".
func (uc *ProductionOrderUseCase) Create(companyID string, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.Code == "" || in.CropTypeID == "" || in.PlannedQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cropType, err := uc.cropTypeRepo.GetByID(in.CropTypeID)
	if err != nil {
		return nil, err
	}
	if cropType == nil {
		return nil, domain.ErrNotFound
	}
	if in.CultivarID != "" {
		cultivar, err := uc.cultivarRepo.GetByID(in.CultivarID)
		if err != nil {
			return nil, err
		}
		if cultivar == nil {
			return nil, domain.ErrNotFound
		}
		if cultivar.CompanyID != companyID {
			return nil, domain.ErrOwnershipMismatch
		}
	}
	now := time.Now()
	order := &entity.ProductionOrder{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Code:            in.Code,
		CropTypeID:      in.CropTypeID,
		CultivarID:      in.CultivarID,
		PlannedQuantity: in.PlannedQuantity,
		Status:          "open",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	resp := dto.ToProductionOrderResponse(order)
	return &resp, nil
}

// GetByID obtiene una orden verificando que pertenezca a la empresa.
func (uc *ProductionOrderUseCase) GetByID(companyID, id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrOwnershipMismatch
	}
	resp := dto.ToProductionOrderResponse(order)
	return &resp, nil
}

// List lista las órdenes de la empresa con paginación.
func (uc *ProductionOrderUseCase) List(companyID string, page dto.PageRequest) ([]dto.ProductionOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.ToProductionOrderResponse(o))
	}
	return items, nil
}
