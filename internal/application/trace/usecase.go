package trace

import (
	"context"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// SheetData todo lo que la hoja de trazabilidad de un lote necesita:
// el lote, sus datos de referencia, la genealogía y los sub-libros.
type SheetData struct {
	Batch     *entity.Batch
	Cultivar  *entity.Cultivar
	CropType  *entity.CropType
	Facility  *entity.Facility
	Area      *entity.Area
	Family    []*entity.Batch
	Links     []batchdomain.Link
	Movements []*entity.BatchMovement
	Losses    []*entity.BatchLoss
	Harvest   *entity.BatchHarvest
	History   []*entity.Activity
}

// SheetGenerator renderiza la hoja de trazabilidad (PDF).
type SheetGenerator interface {
	Generate(data *SheetData) ([]byte, error)
}

// SheetUseCase arma los datos de la hoja de trazabilidad y delega el
// renderizado al generador.
type SheetUseCase struct {
	batchRepo    repository.BatchRepository
	cultivarRepo repository.CultivarRepository
	cropTypeRepo repository.CropTypeRepository
	facilityRepo repository.FacilityRepository
	areaRepo     repository.AreaRepository
	movementRepo repository.BatchMovementRepository
	lossRepo     repository.BatchLossRepository
	harvestRepo  repository.BatchHarvestRepository
	activityRepo repository.ActivityRepository
	generator    SheetGenerator
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(
	batchRepo repository.BatchRepository,
	cultivarRepo repository.CultivarRepository,
	cropTypeRepo repository.CropTypeRepository,
	facilityRepo repository.FacilityRepository,
	areaRepo repository.AreaRepository,
	movementRepo repository.BatchMovementRepository,
	lossRepo repository.BatchLossRepository,
	harvestRepo repository.BatchHarvestRepository,
	activityRepo repository.ActivityRepository,
	generator SheetGenerator,
) *SheetUseCase {
	return &SheetUseCase{
		batchRepo:    batchRepo,
		cultivarRepo: cultivarRepo,
		cropTypeRepo: cropTypeRepo,
		facilityRepo: facilityRepo,
		areaRepo:     areaRepo,
		movementRepo: movementRepo,
		lossRepo:     lossRepo,
		harvestRepo:  harvestRepo,
		activityRepo: activityRepo,
		generator:    generator,
	}
}

// BuildSheet reúne los datos de trazabilidad de un lote de la empresa.
func (uc *SheetUseCase) BuildSheet(ctx context.Context, companyID, batchID string) (*SheetData, error) {
	b, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.CompanyID != companyID {
		return nil, domain.ErrOwnershipMismatch
	}

	data := &SheetData{Batch: b}

	if b.CultivarID != "" {
		if data.Cultivar, err = uc.cultivarRepo.GetByID(b.CultivarID); err != nil {
			return nil, err
		}
	}
	if data.CropType, err = uc.cropTypeRepo.GetByID(b.CropTypeID); err != nil {
		return nil, err
	}
	if data.Facility, err = uc.facilityRepo.GetByID(b.FacilityID); err != nil {
		return nil, err
	}
	if b.AreaID != "" {
		if data.Area, err = uc.areaRepo.GetByID(b.AreaID); err != nil {
			return nil, err
		}
	}

	family, err := uc.batchRepo.ListFamily(b.SourceOrSelf())
	if err != nil {
		return nil, err
	}
	data.Family = family
	data.Links = batchdomain.BuildLineage(family).Links()

	if data.Movements, err = uc.movementRepo.ListByBatch(batchID); err != nil {
		return nil, err
	}
	if data.Losses, err = uc.lossRepo.ListByBatch(batchID); err != nil {
		return nil, err
	}
	if data.Harvest, err = uc.harvestRepo.GetByBatch(batchID); err != nil {
		return nil, err
	}
	if data.History, err = uc.activityRepo.ListByEntity("batch", batchID, 100, 0); err != nil {
		return nil, err
	}
	return data, nil
}

// RenderSheet arma los datos y renderiza el PDF de la hoja de trazabilidad.
func (uc *SheetUseCase) RenderSheet(ctx context.Context, companyID, batchID string) ([]byte, error) {
	data, err := uc.BuildSheet(ctx, companyID, batchID)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(data)
}
