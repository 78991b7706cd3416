package dto

import (
	"time"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Country string `json:"country,omitempty"`
}

// CompanyResponse representación HTTP de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCompanyResponse convierte la entidad a su representación HTTP.
func ToCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
	}
}
