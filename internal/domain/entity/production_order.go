package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrder representa una orden de producción a la que se asocian
// lotes. El motor solo incrementa ActualPlants (al crear lotes) y
// ActualYield (al cosechar).
type ProductionOrder struct {
	ID              string
	CompanyID       string
	Code            string
	CropTypeID      string
	CultivarID      string
	PlannedQuantity int
	ActualPlants    int
	ActualYield     decimal.Decimal // peso acumulado de cosechas, en gramos
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
