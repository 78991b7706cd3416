package entity

import "time"

// Area representa un espacio de cultivo dentro de una instalación
// (invernadero, sala de vegetación, secadero). CurrentOccupancy la mantiene
// el motor de lotes por deltas; nadie la recalcula desde cero.
type Area struct {
	ID               string
	CompanyID        string
	FacilityID       string
	Name             string
	AreaType         string // germination, vegetation, flowering, drying...
	Capacity         int
	CurrentOccupancy int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
