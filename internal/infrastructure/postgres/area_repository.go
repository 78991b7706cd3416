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

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación de AreaRepository sobre PostgreSQL (usable con pool o tx).
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador de áreas. Pasar pool o tx (Querier).
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

// Create persiste una nueva área.
func (r *AreaRepo) Create(area *entity.Area) error {
	query := `
		INSERT INTO areas (id, company_id, facility_id, name, area_type, capacity, current_occupancy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		area.ID, area.CompanyID, area.FacilityID, area.Name, area.AreaType,
		area.Capacity, area.CurrentOccupancy, area.CreatedAt, area.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

// GetByID obtiene un área por ID.
func (r *AreaRepo) GetByID(id string) (*entity.Area, error) {
	query := `
		SELECT id, company_id, facility_id, name, area_type, capacity, current_occupancy, created_at, updated_at
		FROM areas WHERE id = $1`
	var a entity.Area
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.FacilityID, &a.Name, &a.AreaType,
		&a.Capacity, &a.CurrentOccupancy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

// ListByFacility lista áreas por instalación con paginación.
func (r *AreaRepo) ListByFacility(facilityID string, limit, offset int) ([]*entity.Area, error) {
	query := `
		SELECT id, company_id, facility_id, name, area_type, capacity, current_occupancy, created_at, updated_at
		FROM areas WHERE facility_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, facilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.FacilityID, &a.Name, &a.AreaType,
			&a.Capacity, &a.CurrentOccupancy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// AdjustOccupancy aplica un delta relativo a current_occupancy con piso en 0.
func (r *AreaRepo) AdjustOccupancy(id string, delta int) error {
	query := `
		UPDATE areas
		SET current_occupancy = GREATEST(current_occupancy + $2, 0), updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust occupancy: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
