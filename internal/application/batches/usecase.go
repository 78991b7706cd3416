package batches

import (
	"time"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// LifecycleUseCase es el motor de ciclo de vida de lotes: Create, Move,
// RecordLoss, Split, Merge, Harvest, Archive y UpdatePhase como transiciones
// atómicas con efectos cruzados (ocupación de áreas, plantas, log de
// actividades). Toda validación ocurre antes de la primera escritura y la
// transacción entera hace Commit o Rollback.
type LifecycleUseCase struct {
	txRunner     TxRunner
	batchRepo    repository.BatchRepository
	facilityRepo repository.FacilityRepository
	areaRepo     repository.AreaRepository
	cropTypeRepo repository.CropTypeRepository
	cultivarRepo repository.CultivarRepository
	orderRepo    repository.ProductionOrderRepository
	activityRepo repository.ActivityRepository
}

// NewLifecycleUseCase construye el motor.
func NewLifecycleUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	facilityRepo repository.FacilityRepository,
	areaRepo repository.AreaRepository,
	cropTypeRepo repository.CropTypeRepository,
	cultivarRepo repository.CultivarRepository,
	orderRepo repository.ProductionOrderRepository,
	activityRepo repository.ActivityRepository,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		facilityRepo: facilityRepo,
		areaRepo:     areaRepo,
		cropTypeRepo: cropTypeRepo,
		cultivarRepo: cultivarRepo,
		orderRepo:    orderRepo,
		activityRepo: activityRepo,
	}
}

// newActivity arma una entrada del log para un lote.
func newActivity(id, companyID, userID, batchID, activityType string, before, after int, metadata map[string]any, now time.Time) *entity.Activity {
	return &entity.Activity{
		ID:             id,
		CompanyID:      companyID,
		EntityType:     "batch",
		EntityID:       batchID,
		ActivityType:   activityType,
		QuantityBefore: before,
		QuantityAfter:  after,
		Metadata:       metadata,
		PerformedBy:    userID,
		CreatedAt:      now,
	}
}
