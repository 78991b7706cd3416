package entity

import "time"

// Tipos de actividad registrados por el motor de lotes. Una entrada por
// operación visible al exterior (Merge escribe dos: una por lote).
const (
	ActivityMovement        = "movement"
	ActivityLossRecord      = "loss_record"
	ActivityBatchSplit      = "batch_split"
	ActivityBatchMerge      = "batch_merge"
	ActivityHarvest         = "harvest"
	ActivityPhaseTransition = "phase_transition"
)

// Activity es una entrada del log de auditoría. Append-only: el motor la
// escribe, nadie la modifica.
type Activity struct {
	ID             string
	CompanyID      string
	EntityType     string // siempre "batch" para el motor de lotes
	EntityID       string
	ActivityType   string
	QuantityBefore int
	QuantityAfter  int
	Metadata       map[string]any
	PerformedBy    string // UserID
	CreatedAt      time.Time
}
