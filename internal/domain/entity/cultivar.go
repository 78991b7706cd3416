package entity

import "time"

// CropType representa un tipo de cultivo (cannabis, café, etc.).
type CropType struct {
	ID        string
	Name      string
	Category  string
	CreatedAt time.Time
}

// Cultivar representa una variedad de un tipo de cultivo
// ("Café Castillo", "OG Kush"). Dato de referencia: el motor lo lee,
// nunca lo modifica.
type Cultivar struct {
	ID          string
	CompanyID   string
	CropTypeID  string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
