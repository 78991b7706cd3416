package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

var _ repository.PlantRepository = (*PlantRepo)(nil)

// PlantRepo implementación de PlantRepository sobre PostgreSQL (usable con pool o tx).
// Las operaciones por lote van en orden de plant_code: las plantas más
// antiguas se marcan o reasignan primero.
type PlantRepo struct {
	q Querier
}

// NewPlantRepository construye el adaptador de plantas. Pasar pool o tx (Querier).
func NewPlantRepository(q Querier) *PlantRepo {
	return &PlantRepo{q: q}
}

// BulkCreate inserta todas las plantas de un lote en un solo batch de pgx.
func (r *PlantRepo) BulkCreate(plants []*entity.Plant) error {
	if len(plants) == 0 {
		return nil
	}
	query := `
		INSERT INTO plants (id, company_id, plant_code, batch_id, area_id, plant_stage, status, health_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)`
	batch := &pgx.Batch{}
	for _, p := range plants {
		batch.Queue(query,
			p.ID, p.CompanyID, p.PlantCode, p.BatchID, p.AreaID,
			p.PlantStage, p.Status, p.HealthStatus, p.CreatedAt, p.UpdatedAt,
		)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range plants {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("bulk insert plants: %w", err)
		}
	}
	return nil
}

// ListByBatch lista las plantas de un lote por código.
func (r *PlantRepo) ListByBatch(batchID string) ([]*entity.Plant, error) {
	query := `
		SELECT id, company_id, plant_code, batch_id, COALESCE(area_id, ''), plant_stage, status, health_status, created_at, updated_at
		FROM plants WHERE batch_id = $1 ORDER BY plant_code`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plant
	for rows.Next() {
		var p entity.Plant
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.PlantCode, &p.BatchID, &p.AreaID,
			&p.PlantStage, &p.Status, &p.HealthStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountActiveByBatch cuenta las plantas activas de un lote.
func (r *PlantRepo) CountActiveByBatch(batchID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM plants WHERE batch_id = $1 AND status = $2`,
		batchID, entity.PlantStatusActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active plants: %w", err)
	}
	return count, nil
}

// UpdateAreaByBatch mueve todas las plantas del lote al área indicada.
func (r *PlantRepo) UpdateAreaByBatch(batchID, areaID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE plants SET area_id = NULLIF($2, ''), updated_at = now() WHERE batch_id = $1`,
		batchID, areaID,
	)
	if err != nil {
		return fmt.Errorf("update plant areas: %w", err)
	}
	return nil
}

// UpdateStageByBatch actualiza la fase de todas las plantas del lote.
func (r *PlantRepo) UpdateStageByBatch(batchID, stage string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE plants SET plant_stage = $2, updated_at = now() WHERE batch_id = $1`,
		batchID, stage,
	)
	if err != nil {
		return fmt.Errorf("update plant stages: %w", err)
	}
	return nil
}

// MarkDead marca como muertas quantity plantas activas del lote, en orden
// de código.
func (r *PlantRepo) MarkDead(batchID string, quantity int) error {
	query := `
		UPDATE plants SET status = $3, updated_at = now()
		WHERE id IN (
			SELECT id FROM plants
			WHERE batch_id = $1 AND status = $4
			ORDER BY plant_code
			LIMIT $2
		)`
	_, err := r.q.Exec(context.Background(), query,
		batchID, quantity, entity.PlantStatusDead, entity.PlantStatusActive)
	if err != nil {
		return fmt.Errorf("mark plants dead: %w", err)
	}
	return nil
}

// ReassignBatch reasigna quantity plantas activas (en orden de código) al
// lote y área destino. quantity <= 0 reasigna todas.
func (r *PlantRepo) ReassignBatch(fromBatchID, toBatchID, areaID string, quantity int) error {
	if quantity <= 0 {
		_, err := r.q.Exec(context.Background(),
			`UPDATE plants SET batch_id = $2, area_id = NULLIF($3, ''), updated_at = now()
			 WHERE batch_id = $1 AND status = $4`,
			fromBatchID, toBatchID, areaID, entity.PlantStatusActive,
		)
		if err != nil {
			return fmt.Errorf("reassign plants: %w", err)
		}
		return nil
	}
	query := `
		UPDATE plants SET batch_id = $2, area_id = NULLIF($3, ''), updated_at = now()
		WHERE id IN (
			SELECT id FROM plants
			WHERE batch_id = $1 AND status = $5
			ORDER BY plant_code
			LIMIT $4
		)`
	_, err := r.q.Exec(context.Background(), query,
		fromBatchID, toBatchID, areaID, quantity, entity.PlantStatusActive)
	if err != nil {
		return fmt.Errorf("reassign plants: %w", err)
	}
	return nil
}
