package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sub-libros del lote: una fila por movimiento, pérdida o cosecha.
// Complementan al log de actividades con los datos propios de cada operación.

// BatchMovement registra un traslado de área.
type BatchMovement struct {
	ID         string
	BatchID    string
	FromAreaID string
	ToAreaID   string
	Reason     string
	Notes      string
	MovedBy    string
	CreatedAt  time.Time
}

// BatchLoss registra una pérdida (mortalidad, plaga, descarte).
type BatchLoss struct {
	ID          string
	BatchID     string
	Quantity    int
	Reason      string
	Description string
	Photos      []string
	DetectedAt  *time.Time
	RecordedBy  string
	CreatedAt   time.Time
}

// BatchHarvest registra la cosecha de un lote.
type BatchHarvest struct {
	ID                string
	BatchID           string
	HarvestDate       time.Time
	TotalWeight       decimal.Decimal
	WeightUnit        string // g, kg, lb
	QualityGrade      string
	HumidityPct       *decimal.Decimal
	DestinationAreaID string
	Photos            []string
	Notes             string
	HarvestedBy       string
	CreatedAt         time.Time
}
