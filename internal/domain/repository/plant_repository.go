package repository

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// PlantRepository define el puerto de persistencia para Plant.
// Las operaciones por lote mantienen a las plantas en sincronía con el área y
// la fase autoritativas del lote.
type PlantRepository interface {
	BulkCreate(plants []*entity.Plant) error
	ListByBatch(batchID string) ([]*entity.Plant, error)
	CountActiveByBatch(batchID string) (int, error)
	// UpdateAreaByBatch mueve todas las plantas del lote al área indicada.
	UpdateAreaByBatch(batchID, areaID string) error
	// UpdateStageByBatch actualiza la fase de todas las plantas del lote.
	UpdateStageByBatch(batchID, stage string) error
	// MarkDead marca como muertas quantity plantas activas del lote,
	// en orden de código (las más antiguas primero).
	MarkDead(batchID string, quantity int) error
	// ReassignBatch reasigna quantity plantas activas (en orden de código)
	// al lote y área destino. quantity <= 0 reasigna todas.
	ReassignBatch(fromBatchID, toBatchID, areaID string, quantity int) error
}
