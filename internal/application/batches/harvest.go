package batches

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// HarvestInput entrada para cosechar un lote.
type HarvestInput struct {
	HarvestDate       time.Time
	TotalWeight       decimal.Decimal
	WeightUnit        string // g por defecto
	QualityGrade      string
	HumidityPct       *decimal.Decimal
	DestinationAreaID string
	Photos            []string
	Notes             string
}

// Harvest cosecha un lote activo: inserta la fila del sub-libro, marca el
// lote como harvested con fecha y calidad, y libera la ocupación del área por
// la cantidad actual. La cantidad del lote NO se pone a cero: el material
// físico sigue existiendo como producto cosechado, solo deja de ocupar
// espacio de cultivo (por eso se limpia area_id). Si hay orden de producción,
// acumula el peso en su rendimiento real.
func (uc *LifecycleUseCase) Harvest(ctx context.Context, companyID, userID, batchID string, in HarvestInput) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	if !in.TotalWeight.GreaterThan(decimal.Zero) {
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
		harvestDate := in.HarvestDate
		if harvestDate.IsZero() {
			harvestDate = now
		}
		unit := in.WeightUnit
		if unit == "" {
			unit = "g"
		}

		if err := r.Harvests.Create(&entity.BatchHarvest{
			ID:                uuid.New().String(),
			BatchID:           b.ID,
			HarvestDate:       harvestDate,
			TotalWeight:       in.TotalWeight,
			WeightUnit:        unit,
			QualityGrade:      in.QualityGrade,
			HumidityPct:       in.HumidityPct,
			DestinationAreaID: in.DestinationAreaID,
			Photos:            in.Photos,
			Notes:             in.Notes,
			HarvestedBy:       userID,
			CreatedAt:         now,
		}); err != nil {
			return err
		}

		prevAreaID := b.AreaID
		if err := batchdomain.Transition(b, entity.BatchStatusHarvested); err != nil {
			return err
		}
		b.HarvestDate = &harvestDate
		b.QualityGrade = in.QualityGrade
		b.ActualCompletionDate = &now
		b.AreaID = "" // ya no ocupa espacio de cultivo
		b.UpdatedAt = now
		if err := r.Batches.Update(b); err != nil {
			return err
		}

		if err := r.Areas.AdjustOccupancy(prevAreaID, -b.CurrentQuantity); err != nil {
			return err
		}

		if b.ProductionOrderID != "" {
			if err := r.Orders.AddYield(b.ProductionOrderID, in.TotalWeight); err != nil {
				return err
			}
		}

		metadata := map[string]any{
			"total_weight":  in.TotalWeight.String(),
			"weight_unit":   unit,
			"quality_grade": in.QualityGrade,
		}
		if in.HumidityPct != nil {
			metadata["humidity_pct"] = in.HumidityPct.String()
		}
		return r.Activities.Create(newActivity(
			uuid.New().String(), companyID, userID, b.ID, entity.ActivityHarvest,
			b.CurrentQuantity, b.CurrentQuantity, metadata, now,
		))
	})
}
