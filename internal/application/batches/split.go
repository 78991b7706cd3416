package batches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// SplitGroup un grupo de destino de una división.
type SplitGroup struct {
	Quantity int
	ToAreaID string
	Code     string // opcional; vacío genera uno con el contador diario
}

// SplitInput entrada para dividir un lote.
type SplitInput struct {
	Groups []SplitGroup
	Reason string
}

// SplitResult resultado de una división.
type SplitResult struct {
	NewBatchIDs []string
}

// Split divide un lote activo en N lotes nuevos. La suma de los grupos debe
// ser exactamente la cantidad actual (sin divisiones parciales ni restos).
// Cada hijo hereda cultivo, cultivar y orden de producción, apunta su
// genealogía al original (parent_batch_id) y a la raíz transitiva
// (source_batch_id), y suma su cantidad a la ocupación del área destino.
// El original termina en estado split con cantidad 0.
func (uc *LifecycleUseCase) Split(ctx context.Context, companyID, userID, batchID string, in SplitInput) (*SplitResult, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Groups) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, g := range in.Groups {
		if g.Quantity <= 0 || g.ToAreaID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	result := &SplitResult{}
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
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

		total := 0
		for _, g := range in.Groups {
			total += g.Quantity
		}
		if total != b.CurrentQuantity {
			return domain.ErrQuantityMismatch
		}

		// Validar todas las áreas destino antes de la primera escritura.
		for _, g := range in.Groups {
			area, err := r.Areas.GetByID(g.ToAreaID)
			if err != nil {
				return err
			}
			if area == nil {
				return domain.ErrNotFound
			}
			if area.FacilityID != b.FacilityID {
				return domain.ErrOwnershipMismatch
			}
		}

		cultivarName := ""
		if b.CultivarID != "" {
			cultivar, err := r.Cultivars.GetByID(b.CultivarID)
			if err != nil {
				return err
			}
			if cultivar != nil {
				cultivarName = cultivar.Name
			}
		}

		now := time.Now()
		preQty := b.CurrentQuantity
		sourceID := b.SourceOrSelf()

		for _, g := range in.Groups {
			code := g.Code
			if code == "" {
				seq, err := r.Codes.NextSequence(companyID, now.Format(batchdomain.CodeDayFormat))
				if err != nil {
					return err
				}
				code = batchdomain.Code(cultivarName, now, seq)
			}

			child := &entity.Batch{
				ID:                       uuid.New().String(),
				CompanyID:                b.CompanyID,
				FacilityID:               b.FacilityID,
				AreaID:                   g.ToAreaID,
				CropTypeID:               b.CropTypeID,
				CultivarID:               b.CultivarID,
				ParentBatchID:            b.ID,
				SourceBatchID:            sourceID,
				ProductionOrderID:        b.ProductionOrderID,
				BatchCode:                code,
				BatchType:                b.BatchType,
				SourceType:               entity.SourceTypeRescue,
				PlannedQuantity:          g.Quantity,
				InitialQuantity:          g.Quantity,
				CurrentQuantity:          g.Quantity,
				CurrentPhase:             b.CurrentPhase,
				Status:                   entity.BatchStatusActive,
				EnableIndividualTracking: b.EnableIndividualTracking,
				StartDate:                now,
				CreatedBy:                userID,
				CreatedAt:                now,
				UpdatedAt:                now,
			}
			if err := r.Batches.Create(child); err != nil {
				return err
			}
			if err := r.Areas.AdjustOccupancy(g.ToAreaID, g.Quantity); err != nil {
				return err
			}
			if b.EnableIndividualTracking {
				// Reasigna g.Quantity plantas (por orden de código) al hijo.
				if err := r.Plants.ReassignBatch(b.ID, child.ID, g.ToAreaID, g.Quantity); err != nil {
					return err
				}
			}
			result.NewBatchIDs = append(result.NewBatchIDs, child.ID)
		}

		if err := batchdomain.Transition(b, entity.BatchStatusSplit); err != nil {
			return err
		}
		b.CurrentQuantity = 0
		b.UpdatedAt = now
		if err := r.Batches.Update(b); err != nil {
			return err
		}
		if err := r.Areas.AdjustOccupancy(b.AreaID, -preQty); err != nil {
			return err
		}

		return r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, b.ID, entity.ActivityBatchSplit,
			preQty, 0,
			map[string]any{
				"new_batch_ids": result.NewBatchIDs,
				"reason":        in.Reason,
			}, now,
		))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
