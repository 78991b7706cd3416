package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository sobre PostgreSQL
// (usable con pool o tx). El metadata viaja como jsonb.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador del log de actividades. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste una entrada del log.
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	metadata, err := json.Marshal(activity.Metadata)
	if err != nil {
		return fmt.Errorf("marshal activity metadata: %w", err)
	}
	query := `
		INSERT INTO activities (id, company_id, entity_type, entity_id, activity_type, quantity_before, quantity_after, metadata, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		activity.ID, activity.CompanyID, activity.EntityType, activity.EntityID,
		activity.ActivityType, activity.QuantityBefore, activity.QuantityAfter,
		metadata, activity.PerformedBy, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByEntity lista actividades de una entidad, las más recientes primero.
func (r *ActivityRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT id, company_id, entity_type, entity_id, activity_type, quantity_before, quantity_after, metadata, performed_by, created_at
		FROM activities
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		var metadata []byte
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.EntityType, &a.EntityID,
			&a.ActivityType, &a.QuantityBefore, &a.QuantityAfter,
			&metadata, &a.PerformedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal activity metadata: %w", err)
			}
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
