package entity

import "time"

// Facility representa una finca o instalación de cultivo (multi-instalación).
type Facility struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
