package repository

import (
	"github.com/shopspring/decimal"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// ProductionOrderRepository define el puerto de persistencia para
// ProductionOrder. El motor solo acumula contadores; el CRUD de órdenes vive
// en la capa de referencia.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.ProductionOrder, error)
	// AddActualPlants incrementa el contador de plantas reales de la orden.
	AddActualPlants(id string, quantity int) error
	// AddYield acumula el peso cosechado (gramos) en actual_yield.
	AddYield(id string, weight decimal.Decimal) error
}
