package entity

import "time"

// Company representa una empresa (tenant). Todos los recursos cuelgan de una
// empresa y ninguna operación cruza empresas.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
