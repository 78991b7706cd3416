package batches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// Merge fusiona el lote secundario dentro del primario. Ambos deben estar
// activos y compartir cultivar y fase. Las cantidades del secundario
// (actual, inicial, perdida) se acumulan en el primario y la mortalidad se
// recalcula sobre los totales; el secundario queda en estado merged con
// cantidad 0 y merged_into_batch_id apuntando al primario (genealogía
// terminal: no admite más operaciones). Se escriben dos actividades, una por
// lote, para que cada historial quede completo por sí solo.
func (uc *LifecycleUseCase) Merge(ctx context.Context, companyID, userID, primaryID, secondaryID, reason string) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	if primaryID == "" || secondaryID == "" || primaryID == secondaryID {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		// Bloqueo en orden de id para evitar interbloqueos entre dos
		// fusiones concurrentes sobre el mismo par.
		firstID, secondID := primaryID, secondaryID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := r.Batches.GetForUpdate(firstID)
		if err != nil {
			return err
		}
		second, err := r.Batches.GetForUpdate(secondID)
		if err != nil {
			return err
		}

		primary, secondary := first, second
		if primary != nil && primary.ID != primaryID {
			primary, secondary = second, first
		}
		if primary == nil || secondary == nil {
			return domain.ErrNotFound
		}
		if primary.CompanyID != companyID || secondary.CompanyID != companyID {
			return domain.ErrOwnershipMismatch
		}
		if err := batchdomain.RequireActive(primary); err != nil {
			return err
		}
		if err := batchdomain.RequireActive(secondary); err != nil {
			return err
		}
		if primary.CultivarID != secondary.CultivarID || primary.CurrentPhase != secondary.CurrentPhase {
			return domain.ErrIncompatibleBatch
		}

		now := time.Now()
		primaryBefore := primary.CurrentQuantity
		secondaryBefore := secondary.CurrentQuantity

		primary.CurrentQuantity += secondary.CurrentQuantity
		primary.InitialQuantity += secondary.InitialQuantity
		primary.LostQuantity += secondary.LostQuantity
		primary.MortalityRate = batchdomain.MortalityRate(primary.LostQuantity, primary.InitialQuantity)
		primary.UpdatedAt = now

		if err := batchdomain.Transition(secondary, entity.BatchStatusMerged); err != nil {
			return err
		}
		secondary.CurrentQuantity = 0
		secondary.MergedIntoBatchID = primary.ID
		secondary.UpdatedAt = now

		if err := r.Batches.Update(primary); err != nil {
			return err
		}
		if err := r.Batches.Update(secondary); err != nil {
			return err
		}

		if secondary.AreaID != primary.AreaID {
			if err := r.Areas.AdjustOccupancy(secondary.AreaID, -secondaryBefore); err != nil {
				return err
			}
			if err := r.Areas.AdjustOccupancy(primary.AreaID, secondaryBefore); err != nil {
				return err
			}
		}

		if primary.EnableIndividualTracking && secondary.EnableIndividualTracking {
			if err := r.Plants.ReassignBatch(secondary.ID, primary.ID, primary.AreaID, 0); err != nil {
				return err
			}
		}

		if err := r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, primary.ID, entity.ActivityBatchMerge,
			primaryBefore, primary.CurrentQuantity,
			map[string]any{
				"merged_from_batch_id": secondary.ID,
				"reason":               reason,
			}, now,
		)); err != nil {
			return err
		}
		return r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, secondary.ID, entity.ActivityBatchMerge,
			secondaryBefore, 0,
			map[string]any{
				"merged_into_batch_id": primary.ID,
				"reason":               reason,
			}, now,
		))
	})
}
