package repository

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// CropTypeRepository define el puerto de lectura para CropType (catálogo).
type CropTypeRepository interface {
	GetByID(id string) (*entity.CropType, error)
	List() ([]*entity.CropType, error)
}

// CultivarRepository define el puerto de persistencia para Cultivar.
type CultivarRepository interface {
	Create(cultivar *entity.Cultivar) error
	GetByID(id string) (*entity.Cultivar, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Cultivar, error)
}
