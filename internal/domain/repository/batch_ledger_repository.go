package repository

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// Puertos de los sub-libros del lote. Una fila por operación; solo inserción
// y lectura por lote.

// BatchMovementRepository persiste traslados de área.
type BatchMovementRepository interface {
	Create(movement *entity.BatchMovement) error
	ListByBatch(batchID string) ([]*entity.BatchMovement, error)
}

// BatchLossRepository persiste pérdidas.
type BatchLossRepository interface {
	Create(loss *entity.BatchLoss) error
	ListByBatch(batchID string) ([]*entity.BatchLoss, error)
}

// BatchHarvestRepository persiste cosechas.
type BatchHarvestRepository interface {
	Create(harvest *entity.BatchHarvest) error
	GetByBatch(batchID string) (*entity.BatchHarvest, error)
}

// BatchCodeRepository asigna la secuencia diaria de códigos de lote.
type BatchCodeRepository interface {
	// NextSequence devuelve el siguiente número de secuencia para la empresa
	// en el día dado (formato YYMMDD), de forma atómica: dos llamadas
	// concurrentes nunca obtienen el mismo valor.
	NextSequence(companyID, day string) (int, error)
}
