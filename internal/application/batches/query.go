package batches

import (
	"context"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// Consultas de solo lectura del modelo de lotes. Van contra el pool
// (no necesitan transacción) y aplican el mismo control de pertenencia que
// las operaciones de escritura.

// GetByID devuelve un lote de la empresa.
func (uc *LifecycleUseCase) GetByID(ctx context.Context, companyID, batchID string) (*entity.Batch, error) {
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
	return b, nil
}

// List lista los lotes de la empresa con filtros opcionales.
func (uc *LifecycleUseCase) List(ctx context.Context, companyID string, filter repository.BatchFilter) ([]*entity.Batch, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.batchRepo.ListByCompany(companyID, filter)
}

// History devuelve el historial de actividades de un lote.
func (uc *LifecycleUseCase) History(ctx context.Context, companyID, batchID string, limit, offset int) ([]*entity.Activity, error) {
	if _, err := uc.GetByID(ctx, companyID, batchID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.activityRepo.ListByEntity("batch", batchID, limit, offset)
}

// Children devuelve los lotes creados al dividir batchID.
func (uc *LifecycleUseCase) Children(ctx context.Context, companyID, batchID string) ([]*entity.Batch, error) {
	if _, err := uc.GetByID(ctx, companyID, batchID); err != nil {
		return nil, err
	}
	return uc.batchRepo.ListChildren(batchID)
}

// LineageResult la familia genealógica de un lote con sus vínculos
// etiquetados (parent_of / split_from / merged_into).
type LineageResult struct {
	RootID  string
	Batches []*entity.Batch
	Links   []batchdomain.Link
}

// Lineage construye el grafo genealógico explícito de la familia del lote:
// la raíz transitiva y todos los lotes derivados de ella.
func (uc *LifecycleUseCase) Lineage(ctx context.Context, companyID, batchID string) (*LineageResult, error) {
	b, err := uc.GetByID(ctx, companyID, batchID)
	if err != nil {
		return nil, err
	}
	rootID := b.SourceOrSelf()
	family, err := uc.batchRepo.ListFamily(rootID)
	if err != nil {
		return nil, err
	}
	lineage := batchdomain.BuildLineage(family)
	return &LineageResult{
		RootID:  rootID,
		Batches: family,
		Links:   lineage.Links(),
	}, nil
}
