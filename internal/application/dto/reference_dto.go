package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// CreateFacilityRequest body para POST /api/facilities.
type CreateFacilityRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// FacilityResponse representación HTTP de una finca.
type FacilityResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToFacilityResponse convierte la entidad a su representación HTTP.
func ToFacilityResponse(f *entity.Facility) FacilityResponse {
	return FacilityResponse{
		ID:        f.ID,
		CompanyID: f.CompanyID,
		Name:      f.Name,
		Address:   f.Address,
		City:      f.City,
		Country:   f.Country,
		CreatedAt: f.CreatedAt,
	}
}

// CreateAreaRequest body para POST /api/facilities/:id/areas.
type CreateAreaRequest struct {
	Name     string `json:"name"`
	AreaType string `json:"area_type,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// AreaResponse representación HTTP de un área de cultivo.
type AreaResponse struct {
	ID               string    `json:"id"`
	FacilityID       string    `json:"facility_id"`
	CompanyID        string    `json:"company_id"`
	Name             string    `json:"name"`
	AreaType         string    `json:"area_type,omitempty"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"current_occupancy"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToAreaResponse convierte la entidad a su representación HTTP.
func ToAreaResponse(a *entity.Area) AreaResponse {
	return AreaResponse{
		ID:               a.ID,
		FacilityID:       a.FacilityID,
		CompanyID:        a.CompanyID,
		Name:             a.Name,
		AreaType:         a.AreaType,
		Capacity:         a.Capacity,
		CurrentOccupancy: a.CurrentOccupancy,
		CreatedAt:        a.CreatedAt,
	}
}

// CreateCultivarRequest body para POST /api/cultivars.
type CreateCultivarRequest struct {
	CropTypeID  string `json:"crop_type_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CultivarResponse representación HTTP de un cultivar.
type CultivarResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CropTypeID  string    `json:"crop_type_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCultivarResponse convierte la entidad a su representación HTTP.
func ToCultivarResponse(c *entity.Cultivar) CultivarResponse {
	return CultivarResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		CropTypeID:  c.CropTypeID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// CropTypeResponse representación HTTP de un tipo de cultivo.
type CropTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// ToCropTypeResponse convierte la entidad a su representación HTTP.
func ToCropTypeResponse(c *entity.CropType) CropTypeResponse {
	return CropTypeResponse{ID: c.ID, Name: c.Name, Category: c.Category}
}

// CreateProductionOrderRequest body para POST /api/production-orders.
type CreateProductionOrderRequest struct {
	Code            string `json:"code"`
	CropTypeID      string `json:"crop_type_id"`
	CultivarID      string `json:"cultivar_id,omitempty"`
	PlannedQuantity int    `json:"planned_quantity"`
}

// ProductionOrderResponse representación HTTP de una orden de producción.
type ProductionOrderResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Code            string          `json:"code"`
	CropTypeID      string          `json:"crop_type_id"`
	CultivarID      string          `json:"cultivar_id,omitempty"`
	PlannedQuantity int             `json:"planned_quantity"`
	ActualPlants    int             `json:"actual_plants"`
	ActualYield     decimal.Decimal `json:"actual_yield"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToProductionOrderResponse convierte la entidad a su representación HTTP.
func ToProductionOrderResponse(o *entity.ProductionOrder) ProductionOrderResponse {
	return ProductionOrderResponse{
		ID:              o.ID,
		CompanyID:       o.CompanyID,
		Code:            o.Code,
		CropTypeID:      o.CropTypeID,
		CultivarID:      o.CultivarID,
		PlannedQuantity: o.PlannedQuantity,
		ActualPlants:    o.ActualPlants,
		ActualYield:     o.ActualYield,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}

// PlantResponse representación HTTP de una planta individual.
type PlantResponse struct {
	ID           string    `json:"id"`
	PlantCode    string    `json:"plant_code"`
	BatchID      string    `json:"batch_id"`
	AreaID       string    `json:"area_id,omitempty"`
	PlantStage   string    `json:"plant_stage"`
	Status       string    `json:"status"`
	HealthStatus string    `json:"health_status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToPlantResponse convierte la entidad a su representación HTTP.
func ToPlantResponse(p *entity.Plant) PlantResponse {
	return PlantResponse{
		ID:           p.ID,
		PlantCode:    p.PlantCode,
		BatchID:      p.BatchID,
		AreaID:       p.AreaID,
		PlantStage:   p.PlantStage,
		Status:       p.Status,
		HealthStatus: p.HealthStatus,
		CreatedAt:    p.CreatedAt,
	}
}
