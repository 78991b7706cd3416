package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

var (
	_ repository.BatchMovementRepository = (*BatchMovementRepo)(nil)
	_ repository.BatchLossRepository     = (*BatchLossRepo)(nil)
	_ repository.BatchHarvestRepository  = (*BatchHarvestRepo)(nil)
)

// BatchMovementRepo persiste traslados de área (usable con pool o tx).
type BatchMovementRepo struct {
	q Querier
}

// NewBatchMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchMovementRepository(q Querier) *BatchMovementRepo {
	return &BatchMovementRepo{q: q}
}

// Create persiste un traslado.
func (r *BatchMovementRepo) Create(movement *entity.BatchMovement) error {
	query := `
		INSERT INTO batch_movements (id, batch_id, from_area_id, to_area_id, reason, notes, moved_by, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BatchID, movement.FromAreaID, movement.ToAreaID,
		movement.Reason, movement.Notes, movement.MovedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch movement: %w", err)
	}
	return nil
}

// ListByBatch lista los traslados de un lote en orden cronológico.
func (r *BatchMovementRepo) ListByBatch(batchID string) ([]*entity.BatchMovement, error) {
	query := `
		SELECT id, batch_id, COALESCE(from_area_id, ''), to_area_id, reason, notes, moved_by, created_at
		FROM batch_movements WHERE batch_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchMovement
	for rows.Next() {
		var m entity.BatchMovement
		if err := rows.Scan(&m.ID, &m.BatchID, &m.FromAreaID, &m.ToAreaID,
			&m.Reason, &m.Notes, &m.MovedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// BatchLossRepo persiste pérdidas (usable con pool o tx).
type BatchLossRepo struct {
	q Querier
}

// NewBatchLossRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchLossRepository(q Querier) *BatchLossRepo {
	return &BatchLossRepo{q: q}
}

// Create persiste una pérdida.
func (r *BatchLossRepo) Create(loss *entity.BatchLoss) error {
	query := `
		INSERT INTO batch_losses (id, batch_id, quantity, reason, description, photos, detected_at, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		loss.ID, loss.BatchID, loss.Quantity, loss.Reason, loss.Description,
		loss.Photos, loss.DetectedAt, loss.RecordedBy, loss.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch loss: %w", err)
	}
	return nil
}

// ListByBatch lista las pérdidas de un lote en orden cronológico.
func (r *BatchLossRepo) ListByBatch(batchID string) ([]*entity.BatchLoss, error) {
	query := `
		SELECT id, batch_id, quantity, reason, description, photos, detected_at, recorded_by, created_at
		FROM batch_losses WHERE batch_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch losses: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchLoss
	for rows.Next() {
		var l entity.BatchLoss
		if err := rows.Scan(&l.ID, &l.BatchID, &l.Quantity, &l.Reason, &l.Description,
			&l.Photos, &l.DetectedAt, &l.RecordedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch loss: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// BatchHarvestRepo persiste cosechas (usable con pool o tx).
type BatchHarvestRepo struct {
	q Querier
}

// NewBatchHarvestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchHarvestRepository(q Querier) *BatchHarvestRepo {
	return &BatchHarvestRepo{q: q}
}

// Create persiste una cosecha.
func (r *BatchHarvestRepo) Create(harvest *entity.BatchHarvest) error {
	query := `
		INSERT INTO batch_harvests (id, batch_id, harvest_date, total_weight, weight_unit, quality_grade, humidity_pct, destination_area_id, photos, notes, harvested_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		harvest.ID, harvest.BatchID, harvest.HarvestDate, harvest.TotalWeight,
		harvest.WeightUnit, harvest.QualityGrade, harvest.HumidityPct,
		harvest.DestinationAreaID, harvest.Photos, harvest.Notes,
		harvest.HarvestedBy, harvest.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch harvest: %w", err)
	}
	return nil
}

// GetByBatch devuelve la cosecha de un lote, o nil si aún no se cosechó.
func (r *BatchHarvestRepo) GetByBatch(batchID string) (*entity.BatchHarvest, error) {
	query := `
		SELECT id, batch_id, harvest_date, total_weight, weight_unit, quality_grade, humidity_pct, COALESCE(destination_area_id, ''), photos, notes, harvested_by, created_at
		FROM batch_harvests WHERE batch_id = $1`
	var h entity.BatchHarvest
	err := r.q.QueryRow(context.Background(), query, batchID).Scan(
		&h.ID, &h.BatchID, &h.HarvestDate, &h.TotalWeight,
		&h.WeightUnit, &h.QualityGrade, &h.HumidityPct,
		&h.DestinationAreaID, &h.Photos, &h.Notes,
		&h.HarvestedBy, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch harvest: %w", err)
	}
	return &h, nil
}
