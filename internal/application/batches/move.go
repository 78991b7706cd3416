package batches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// MoveInput entrada para trasladar un lote de área.
type MoveInput struct {
	ToAreaID string
	Reason   string
	Notes    string
}

// Move traslada un lote activo a otra área de la misma instalación: registra
// el movimiento, ajusta la ocupación de origen y destino por la cantidad
// actual del lote, y sincroniza el área de las plantas si hay trazabilidad
// individual. El traslado no cambia cantidades, solo ubicación.
func (uc *LifecycleUseCase) Move(ctx context.Context, companyID, userID, batchID string, in MoveInput) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	if in.ToAreaID == "" {
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
		if in.ToAreaID == b.AreaID {
			return domain.ErrInvalidInput
		}

		target, err := r.Areas.GetByID(in.ToAreaID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if target.FacilityID != b.FacilityID {
			return domain.ErrOwnershipMismatch
		}

		now := time.Now()
		fromAreaID := b.AreaID

		if err := r.Movements.Create(&entity.BatchMovement{
			ID:         uuid.New().String(),
			BatchID:    b.ID,
			FromAreaID: fromAreaID,
			ToAreaID:   target.ID,
			Reason:     in.Reason,
			Notes:      in.Notes,
			MovedBy:    userID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		if err := r.Areas.AdjustOccupancy(fromAreaID, -b.CurrentQuantity); err != nil {
			return err
		}
		if err := r.Areas.AdjustOccupancy(target.ID, b.CurrentQuantity); err != nil {
			return err
		}

		b.AreaID = target.ID
		b.UpdatedAt = now
		if err := r.Batches.Update(b); err != nil {
			return err
		}

		if b.EnableIndividualTracking {
			if err := r.Plants.UpdateAreaByBatch(b.ID, target.ID); err != nil {
				return err
			}
		}

		return r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, b.ID, entity.ActivityMovement,
			b.CurrentQuantity, b.CurrentQuantity,
			map[string]any{
				"from_area_id": fromAreaID,
				"to_area_id":   target.ID,
				"reason":       in.Reason,
			}, now,
		))
	})
}
