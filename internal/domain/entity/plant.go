package entity

import "time"

// Estados de una planta individual.
const (
	PlantStatusActive = "active"
	PlantStatusDead   = "dead"
)

// Plant representa una planta física dentro de un lote con trazabilidad
// individual. El ciclo de vida lo posee el lote: área y fase de cada planta
// siempre reflejan el estado autoritativo del lote, nunca al revés.
type Plant struct {
	ID           string
	CompanyID    string
	PlantCode    string // derivado: {batch_code}-P{seq}
	BatchID      string
	AreaID       string
	PlantStage   string // refleja CurrentPhase del lote
	Status       string
	HealthStatus string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
