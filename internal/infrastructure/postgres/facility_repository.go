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

var _ repository.FacilityRepository = (*FacilityRepo)(nil)

// FacilityRepo implementación de FacilityRepository sobre PostgreSQL (usable con pool o tx).
type FacilityRepo struct {
	q Querier
}

// NewFacilityRepository construye el adaptador de instalaciones. Pasar pool o tx (Querier).
func NewFacilityRepository(q Querier) *FacilityRepo {
	return &FacilityRepo{q: q}
}

// Create persiste una nueva instalación.
func (r *FacilityRepo) Create(facility *entity.Facility) error {
	query := `
		INSERT INTO facilities (id, company_id, name, address, city, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		facility.ID, facility.CompanyID, facility.Name, facility.Address,
		facility.City, facility.Country, facility.CreatedAt, facility.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert facility: %w", err)
	}
	return nil
}

// GetByID obtiene una instalación por ID.
func (r *FacilityRepo) GetByID(id string) (*entity.Facility, error) {
	query := `
		SELECT id, company_id, name, address, city, country, created_at, updated_at
		FROM facilities WHERE id = $1`
	var f entity.Facility
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.City, &f.Country, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get facility: %w", err)
	}
	return &f, nil
}

// ListByCompany lista instalaciones por empresa con paginación.
func (r *FacilityRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Facility, error) {
	query := `
		SELECT id, company_id, name, address, city, country, created_at, updated_at
		FROM facilities WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Facility
	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.City, &f.Country, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
