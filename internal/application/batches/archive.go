package batches

import (
	"context"
	"time"

	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// Archive archiva un lote ya terminal (harvested, lost, split o merged).
// Un lote activo no puede archivarse directamente: la máquina de estados lo
// rechaza con ErrInvalidState. No toca cantidades ni ocupación: eso quedó
// saldado en la transición terminal previa. Tampoco escribe actividad.
func (uc *LifecycleUseCase) Archive(ctx context.Context, companyID, userID, batchID, notes string) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	_ = notes // las notas del archivado no se persisten hoy

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
		if err := batchdomain.Transition(b, entity.BatchStatusArchived); err != nil {
			return err
		}
		b.UpdatedAt = time.Now()
		return r.Batches.Update(b)
	})
}
