package batch

import (
	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// Máquina de estados del lote (servicio de dominio). Toda transición de
// status pasa por Transition; las operaciones no tocan el campo directamente.
//
//	active ──> harvested ──> archived
//	   │                        ▲
//	   ├─────> split ───────────┤
//	   ├─────> merged ──────────┤
//	   └─────> lost ────────────┘
var transitions = map[string][]string{
	entity.BatchStatusActive: {
		entity.BatchStatusHarvested,
		entity.BatchStatusSplit,
		entity.BatchStatusMerged,
		entity.BatchStatusLost,
	},
	entity.BatchStatusHarvested: {entity.BatchStatusArchived},
	entity.BatchStatusSplit:     {entity.BatchStatusArchived},
	entity.BatchStatusMerged:    {entity.BatchStatusArchived},
	entity.BatchStatusLost:      {entity.BatchStatusArchived},
	entity.BatchStatusArchived:  {},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si un estado ya no admite operaciones de ciclo de vida.
// Los estados terminales solo pueden archivarse.
func IsTerminal(status string) bool {
	switch status {
	case entity.BatchStatusHarvested, entity.BatchStatusSplit,
		entity.BatchStatusMerged, entity.BatchStatusLost:
		return true
	}
	return false
}

// Transition aplica la transición sobre el lote o devuelve ErrInvalidState.
func Transition(b *entity.Batch, to string) error {
	if !CanTransition(b.Status, to) {
		return domain.ErrInvalidState
	}
	b.Status = to
	return nil
}

// RequireActive valida la precondición común de Move/RecordLoss/Split/Merge/
// Harvest/UpdatePhase: solo lotes activos.
func RequireActive(b *entity.Batch) error {
	if !b.IsActive() {
		return domain.ErrInvalidState
	}
	return nil
}
