package repository

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// ActivityRepository define el puerto del log de actividades.
// Append-only: no hay Update ni Delete.
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Activity, error)
}
