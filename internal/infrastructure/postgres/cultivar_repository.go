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

var (
	_ repository.CultivarRepository = (*CultivarRepo)(nil)
	_ repository.CropTypeRepository = (*CropTypeRepo)(nil)
)

// CultivarRepo implementación de CultivarRepository sobre PostgreSQL (usable con pool o tx).
type CultivarRepo struct {
	q Querier
}

// NewCultivarRepository construye el adaptador de cultivares. Pasar pool o tx (Querier).
func NewCultivarRepository(q Querier) *CultivarRepo {
	return &CultivarRepo{q: q}
}

// Create persiste un nuevo cultivar.
func (r *CultivarRepo) Create(cultivar *entity.Cultivar) error {
	query := `
		INSERT INTO cultivars (id, company_id, crop_type_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		cultivar.ID, cultivar.CompanyID, cultivar.CropTypeID,
		cultivar.Name, cultivar.Description, cultivar.CreatedAt, cultivar.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cultivar: %w", err)
	}
	return nil
}

// GetByID obtiene un cultivar por ID.
func (r *CultivarRepo) GetByID(id string) (*entity.Cultivar, error) {
	query := `
		SELECT id, company_id, crop_type_id, name, description, created_at, updated_at
		FROM cultivars WHERE id = $1`
	var c entity.Cultivar
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.CropTypeID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cultivar: %w", err)
	}
	return &c, nil
}

// ListByCompany lista cultivares por empresa con paginación.
func (r *CultivarRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Cultivar, error) {
	query := `
		SELECT id, company_id, crop_type_id, name, description, created_at, updated_at
		FROM cultivars WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cultivars: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cultivar
	for rows.Next() {
		var c entity.Cultivar
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.CropTypeID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cultivar: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CropTypeRepo implementación de CropTypeRepository sobre PostgreSQL.
// Catálogo global de solo lectura desde la API.
type CropTypeRepo struct {
	q Querier
}

// NewCropTypeRepository construye el adaptador del catálogo de tipos de cultivo.
func NewCropTypeRepository(q Querier) *CropTypeRepo {
	return &CropTypeRepo{q: q}
}

// GetByID obtiene un tipo de cultivo por ID.
func (r *CropTypeRepo) GetByID(id string) (*entity.CropType, error) {
	query := `SELECT id, name, category, created_at FROM crop_types WHERE id = $1`
	var c entity.CropType
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &c.Category, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crop type: %w", err)
	}
	return &c, nil
}

// List devuelve el catálogo completo.
func (r *CropTypeRepo) List() ([]*entity.CropType, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, category, created_at FROM crop_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list crop types: %w", err)
	}
	defer rows.Close()
	var list []*entity.CropType
	for rows.Next() {
		var c entity.CropType
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan crop type: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
