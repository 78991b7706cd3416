package repository

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// AreaRepository define el puerto de persistencia para Area.
type AreaRepository interface {
	Create(area *entity.Area) error
	GetByID(id string) (*entity.Area, error)
	ListByFacility(facilityID string, limit, offset int) ([]*entity.Area, error)
	// AdjustOccupancy aplica un delta relativo a current_occupancy, con piso
	// en 0. Nunca se recalcula la ocupación desde cero.
	AdjustOccupancy(id string, delta int) error
}

// FacilityRepository define el puerto de persistencia para Facility.
type FacilityRepository interface {
	Create(facility *entity.Facility) error
	GetByID(id string) (*entity.Facility, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Facility, error)
}
