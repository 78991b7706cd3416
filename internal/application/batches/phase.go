package batches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// UpdatePhase cambia la fase de cultivo de un lote activo (germination ->
// vegetation -> flowering -> ...) y sincroniza la fase de todas sus plantas
// si hay trazabilidad individual. Registra la transición en el log con la
// fase anterior y la nueva.
func (uc *LifecycleUseCase) UpdatePhase(ctx context.Context, companyID, userID, batchID, newPhase, notes string) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	if newPhase == "" {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		b, err := r.Batches.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.CompanyID != companyID {
			return domain.ErrOwnershipMismatch
		}
		if err := batchdomain.RequireActive(b); err != nil {
			return err
		}

		now := time.Now()
		previous := b.CurrentPhase
		b.CurrentPhase = newPhase
		b.UpdatedAt = now
		if err := r.Batches.Update(b); err != nil {
			return err
		}

		if b.EnableIndividualTracking {
			if err := r.Plants.UpdateStageByBatch(b.ID, newPhase); err != nil {
				return err
			}
		}

		return r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, b.ID, entity.ActivityPhaseTransition,
			b.CurrentQuantity, b.CurrentQuantity,
			map[string]any{
				"previous_phase": previous,
				"new_phase":      newPhase,
				"notes":          notes,
			}, now,
		))
	})
}
