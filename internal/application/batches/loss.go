package batches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// LossInput entrada para registrar una pérdida.
type LossInput struct {
	Quantity    int
	Reason      string
	Description string
	Photos      []string
	DetectedAt  *time.Time
}

// RecordLoss registra una pérdida sobre un lote activo: inserta la fila del
// sub-libro, descuenta la cantidad actual, acumula la perdida, recalcula la
// mortalidad y ajusta la ocupación del área. Si la cantidad actual llega
// exactamente a 0, el lote pasa a estado lost. Conservación: en todo momento
// current + lost <= initial.
func (uc *LifecycleUseCase) RecordLoss(ctx context.Context, companyID, userID, batchID string, in LossInput) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	if in.Quantity <= 0 {
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
		if in.Quantity > b.CurrentQuantity {
			return domain.ErrQuantityMismatch
		}

		now := time.Now()
		if err := r.Losses.Create(&entity.BatchLoss{
			ID:          uuid.New().String(),
			BatchID:     b.ID,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			Description: in.Description,
			Photos:      in.Photos,
			DetectedAt:  in.DetectedAt,
			RecordedBy:  userID,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		before := b.CurrentQuantity
		b.CurrentQuantity -= in.Quantity
		b.LostQuantity += in.Quantity
		b.MortalityRate = batchdomain.MortalityRate(b.LostQuantity, b.InitialQuantity)
		if b.CurrentQuantity == 0 {
			if err := batchdomain.Transition(b, entity.BatchStatusLost); err != nil {
				return err
			}
		}
		b.UpdatedAt = now
		if err := r.Batches.Update(b); err != nil {
			return err
		}

		if err := r.Areas.AdjustOccupancy(b.AreaID, -in.Quantity); err != nil {
			return err
		}

		if b.EnableIndividualTracking {
			if err := r.Plants.MarkDead(b.ID, in.Quantity); err != nil {
				return err
			}
		}

		return r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, b.ID, entity.ActivityLossRecord,
			before, b.CurrentQuantity,
			map[string]any{
				"reason":        in.Reason,
				"quantity_lost": in.Quantity,
			}, now,
		))
	})
}
