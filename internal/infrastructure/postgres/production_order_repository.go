package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una nueva orden de producción.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, company_id, code, crop_type_id, cultivar_id, planned_quantity, actual_plants, actual_yield, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.Code, order.CropTypeID, order.CultivarID,
		order.PlannedQuantity, order.ActualPlants, order.ActualYield,
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `
		SELECT id, company_id, code, crop_type_id, COALESCE(cultivar_id, ''), planned_quantity, actual_plants, actual_yield, status, created_at, updated_at
		FROM production_orders WHERE id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CompanyID, &o.Code, &o.CropTypeID, &o.CultivarID,
		&o.PlannedQuantity, &o.ActualPlants, &o.ActualYield,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// ListByCompany lista órdenes por empresa con paginación.
func (r *ProductionOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT id, company_id, code, crop_type_id, COALESCE(cultivar_id, ''), planned_quantity, actual_plants, actual_yield, status, created_at, updated_at
		FROM production_orders WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Code, &o.CropTypeID, &o.CultivarID,
			&o.PlannedQuantity, &o.ActualPlants, &o.ActualYield,
			&o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// AddActualPlants incrementa el contador de plantas reales de la orden.
func (r *ProductionOrderRepo) AddActualPlants(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET actual_plants = actual_plants + $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("add actual plants: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddYield acumula el peso cosechado (gramos) en actual_yield.
func (r *ProductionOrderRepo) AddYield(id string, weight decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET actual_yield = actual_yield + $2, updated_at = now() WHERE id = $1`,
		id, weight,
	)
	if err != nil {
		return fmt.Errorf("add yield: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
