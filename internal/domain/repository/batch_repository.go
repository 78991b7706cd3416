package repository

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// BatchFilter filtros de listado de lotes.
type BatchFilter struct {
	Status string
	AreaID string
	Limit  int
	Offset int
}

// BatchRepository define el puerto de persistencia para Batch (DIP).
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	ListByCompany(companyID string, filter BatchFilter) ([]*entity.Batch, error)
	// ListChildren devuelve los lotes cuyo parent_batch_id es parentID.
	ListChildren(parentID string) ([]*entity.Batch, error)
	// ListFamily devuelve la familia genealógica: la raíz rootID y todo lote
	// cuyo source_batch_id apunta a ella.
	ListFamily(rootID string) ([]*entity.Batch, error)
}
