package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// Columnas del lote en el orden de scanBatch. Las FK opcionales viajan como
// NULL en la BD y como string vacío en la entidad (NULLIF/COALESCE).
const batchColumns = `
	id, company_id, facility_id, COALESCE(area_id, ''), crop_type_id,
	COALESCE(cultivar_id, ''), COALESCE(parent_batch_id, ''),
	COALESCE(merged_into_batch_id, ''), COALESCE(source_batch_id, ''),
	COALESCE(production_order_id, ''), batch_code, batch_type, source_type,
	planned_quantity, initial_quantity, current_quantity, lost_quantity,
	mortality_rate, current_phase, status, enable_individual_tracking,
	harvest_date, quality_grade, actual_completion_date,
	start_date, created_by, created_at, updated_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.CompanyID, &b.FacilityID, &b.AreaID, &b.CropTypeID,
		&b.CultivarID, &b.ParentBatchID,
		&b.MergedIntoBatchID, &b.SourceBatchID,
		&b.ProductionOrderID, &b.BatchCode, &b.BatchType, &b.SourceType,
		&b.PlannedQuantity, &b.InitialQuantity, &b.CurrentQuantity, &b.LostQuantity,
		&b.MortalityRate, &b.CurrentPhase, &b.Status, &b.EnableIndividualTracking,
		&b.HarvestDate, &b.QualityGrade, &b.ActualCompletionDate,
		&b.StartDate, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un nuevo lote.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (
			id, company_id, facility_id, area_id, crop_type_id, cultivar_id,
			parent_batch_id, merged_into_batch_id, source_batch_id,
			production_order_id, batch_code, batch_type, source_type,
			planned_quantity, initial_quantity, current_quantity, lost_quantity,
			mortality_rate, current_phase, status, enable_individual_tracking,
			harvest_date, quality_grade, actual_completion_date,
			start_date, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''),
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
			NULLIF($10, ''), $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20, $21,
			$22, $23, $24,
			$25, $26, $27, $28
		)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.FacilityID, batch.AreaID, batch.CropTypeID, batch.CultivarID,
		batch.ParentBatchID, batch.MergedIntoBatchID, batch.SourceBatchID,
		batch.ProductionOrderID, batch.BatchCode, batch.BatchType, batch.SourceType,
		batch.PlannedQuantity, batch.InitialQuantity, batch.CurrentQuantity, batch.LostQuantity,
		batch.MortalityRate, batch.CurrentPhase, batch.Status, batch.EnableIndividualTracking,
		batch.HarvestDate, batch.QualityGrade, batch.ActualCompletionDate,
		batch.StartDate, batch.CreatedBy, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE).
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// Update actualiza un lote existente.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches SET
			area_id = NULLIF($2, ''),
			parent_batch_id = NULLIF($3, ''),
			merged_into_batch_id = NULLIF($4, ''),
			source_batch_id = NULLIF($5, ''),
			current_quantity = $6, lost_quantity = $7, mortality_rate = $8,
			current_phase = $9, status = $10,
			harvest_date = $11, quality_grade = $12, actual_completion_date = $13,
			updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.AreaID,
		batch.ParentBatchID, batch.MergedIntoBatchID, batch.SourceBatchID,
		batch.CurrentQuantity, batch.LostQuantity, batch.MortalityRate,
		batch.CurrentPhase, batch.Status,
		batch.HarvestDate, batch.QualityGrade, batch.ActualCompletionDate,
		batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// ListByCompany lista lotes de la empresa con filtros opcionales.
func (r *BatchRepo) ListByCompany(companyID string, filter repository.BatchFilter) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR area_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		companyID, filter.Status, filter.AreaID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// ListChildren devuelve los lotes cuyo parent_batch_id es parentID.
func (r *BatchRepo) ListChildren(parentID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE parent_batch_id = $1 ORDER BY batch_code`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// ListFamily devuelve la familia genealógica completa: la raíz rootID y
// todo lote cuyo source_batch_id apunta a ella.
func (r *BatchRepo) ListFamily(rootID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE id = $1 OR source_batch_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, rootID)
	if err != nil {
		return nil, fmt.Errorf("list family: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

func collectBatches(rows pgx.Rows) ([]*entity.Batch, error) {
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
