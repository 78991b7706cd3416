package batches

import (
	"context"

	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Cultivars es de solo lectura; el resto puede escribir.
type TxRepos struct {
	Batches    repository.BatchRepository
	Plants     repository.PlantRepository
	Areas      repository.AreaRepository
	Orders     repository.ProductionOrderRepository
	Activities repository.ActivityRepository
	Movements  repository.BatchMovementRepository
	Losses     repository.BatchLossRepository
	Harvests   repository.BatchHarvestRepository
	Codes      repository.BatchCodeRepository
	Cultivars  repository.CultivarRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de lotes:
// cada operación de ciclo de vida es lee-valida-escribe dentro de una única
// transacción y ningún lector concurrente observa estados parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
