package postgres

import (
	"context"
	"fmt"

	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

var _ repository.BatchCodeRepository = (*BatchCodeRepo)(nil)

// BatchCodeRepo asigna secuencias diarias de códigos de lote sobre un
// contador por empresa y día. El upsert es atómico: dos transacciones
// concurrentes nunca reciben la misma secuencia, la segunda espera el lock
// de fila de la primera.
type BatchCodeRepo struct {
	q Querier
}

// NewBatchCodeRepository construye el adaptador del contador de códigos. Pasar pool o tx (Querier).
func NewBatchCodeRepository(q Querier) *BatchCodeRepo {
	return &BatchCodeRepo{q: q}
}

// NextSequence devuelve el siguiente número de secuencia para la empresa en
// el día dado (formato YYMMDD).
func (r *BatchCodeRepo) NextSequence(companyID, day string) (int, error) {
	query := `
		INSERT INTO batch_code_counters (company_id, day, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, day)
		DO UPDATE SET seq = batch_code_counters.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, companyID, day).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next batch code sequence: %w", err)
	}
	return seq, nil
}
