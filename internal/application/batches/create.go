package batches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// CreateInput entrada para crear un lote.
type CreateInput struct {
	CompanyID  string
	UserID     string
	FacilityID string
	AreaID     string
	CropTypeID string
	CultivarID string // opcional; sin cultivar el código usa el prefijo GEN

	ProductionOrderID string // opcional
	BatchType         string
	SourceType        string
	CurrentPhase      string

	PlannedQuantity          int
	InitialQuantity          int
	EnableIndividualTracking bool
}

// Create valida las referencias (instalación de la empresa, área de la
// instalación, cultivar del tipo de cultivo), genera el código con el
// contador atómico por empresa y día, e inserta el lote con su ocupación,
// sus plantas (si hay trazabilidad individual) y el contador de la orden de
// producción. Todo en una transacción; cualquier fallo de validación ocurre
// antes de la primera escritura.
func (uc *LifecycleUseCase) Create(ctx context.Context, in CreateInput) (*entity.Batch, error) {
	if in.CompanyID == "" || in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.InitialQuantity <= 0 || in.PlannedQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	facility, err := uc.facilityRepo.GetByID(in.FacilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrNotFound
	}
	if facility.CompanyID != in.CompanyID {
		return nil, domain.ErrOwnershipMismatch
	}

	area, err := uc.areaRepo.GetByID(in.AreaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrNotFound
	}
	if area.FacilityID != in.FacilityID {
		return nil, domain.ErrOwnershipMismatch
	}

	cropType, err := uc.cropTypeRepo.GetByID(in.CropTypeID)
	if err != nil {
		return nil, err
	}
	if cropType == nil {
		return nil, domain.ErrNotFound
	}

	cultivarName := ""
	if in.CultivarID != "" {
		cultivar, err := uc.cultivarRepo.GetByID(in.CultivarID)
		if err != nil {
			return nil, err
		}
		if cultivar == nil {
			return nil, domain.ErrNotFound
		}
		if cultivar.CropTypeID != in.CropTypeID {
			return nil, domain.ErrOwnershipMismatch
		}
		cultivarName = cultivar.Name
	}

	if in.ProductionOrderID != "" {
		order, err := uc.orderRepo.GetByID(in.ProductionOrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		if order.CompanyID != in.CompanyID {
			return nil, domain.ErrOwnershipMismatch
		}
	}

	now := time.Now()
	phase := in.CurrentPhase
	if phase == "" {
		phase = "germination"
	}
	sourceType := in.SourceType
	if sourceType == "" {
		sourceType = entity.SourceTypeSeed
	}

	b := &entity.Batch{
		ID:                       uuid.New().String(),
		CompanyID:                in.CompanyID,
		FacilityID:               in.FacilityID,
		AreaID:                   in.AreaID,
		CropTypeID:               in.CropTypeID,
		CultivarID:               in.CultivarID,
		ProductionOrderID:        in.ProductionOrderID,
		BatchType:                in.BatchType,
		SourceType:               sourceType,
		PlannedQuantity:          in.PlannedQuantity,
		InitialQuantity:          in.InitialQuantity,
		CurrentQuantity:          in.InitialQuantity,
		CurrentPhase:             phase,
		Status:                   entity.BatchStatusActive,
		EnableIndividualTracking: in.EnableIndividualTracking,
		StartDate:                now,
		CreatedBy:                in.UserID,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		seq, err := r.Codes.NextSequence(in.CompanyID, now.Format(batchdomain.CodeDayFormat))
		if err != nil {
			return err
		}
		b.BatchCode = batchdomain.Code(cultivarName, now, seq)

		if err := r.Batches.Create(b); err != nil {
			return err
		}
		if err := r.Areas.AdjustOccupancy(in.AreaID, in.InitialQuantity); err != nil {
			return err
		}
		if in.EnableIndividualTracking {
			if err := r.Plants.BulkCreate(newPlantsForBatch(b, now)); err != nil {
				return err
			}
		}
		if in.ProductionOrderID != "" {
			if err := r.Orders.AddActualPlants(in.ProductionOrderID, in.InitialQuantity); err != nil {
				return err
			}
		}
		// La creación no escribe actividad: el log registra transiciones
		// posteriores, el alta queda en la propia fila del lote.
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// newPlantsForBatch genera una fila Plant por unidad inicial del lote,
// con códigos secuenciales {batch_code}-P{n}.
func newPlantsForBatch(b *entity.Batch, now time.Time) []*entity.Plant {
	plants := make([]*entity.Plant, 0, b.InitialQuantity)
	for i := 1; i <= b.InitialQuantity; i++ {
		plants = append(plants, &entity.Plant{
			ID:           uuid.New().String(),
			CompanyID:    b.CompanyID,
			PlantCode:    batchdomain.PlantCode(b.BatchCode, i),
			BatchID:      b.ID,
			AreaID:       b.AreaID,
			PlantStage:   b.CurrentPhase,
			Status:       entity.PlantStatusActive,
			HealthStatus: "healthy",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return plants
}
