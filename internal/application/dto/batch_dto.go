package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	FacilityID               string `json:"facility_id"`
	AreaID                   string `json:"area_id"`
	CropTypeID               string `json:"crop_type_id"`
	CultivarID               string `json:"cultivar_id,omitempty"`
	ProductionOrderID        string `json:"production_order_id,omitempty"`
	BatchType                string `json:"batch_type,omitempty"`
	SourceType               string `json:"source_type,omitempty"`
	CurrentPhase             string `json:"current_phase,omitempty"`
	PlannedQuantity          int    `json:"planned_quantity"`
	InitialQuantity          int    `json:"initial_quantity"`
	EnableIndividualTracking bool   `json:"enable_individual_tracking"`
}

// MoveBatchRequest body para POST /api/batches/:id/move.
type MoveBatchRequest struct {
	ToAreaID string `json:"to_area_id"`
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// RecordLossRequest body para POST /api/batches/:id/losses.
type RecordLossRequest struct {
	Quantity    int        `json:"quantity"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
	Photos      []string   `json:"photos,omitempty"`
	DetectedAt  *time.Time `json:"detected_at,omitempty"`
}

// SplitGroupRequest un grupo destino de la división.
type SplitGroupRequest struct {
	Quantity int    `json:"quantity"`
	ToAreaID string `json:"to_area_id"`
	Code     string `json:"code,omitempty"`
}

// SplitBatchRequest body para POST /api/batches/:id/split.
type SplitBatchRequest struct {
	Groups []SplitGroupRequest `json:"groups"`
	Reason string              `json:"reason,omitempty"`
}

// SplitBatchResponse respuesta de la división.
type SplitBatchResponse struct {
	Success     bool     `json:"success"`
	NewBatchIDs []string `json:"new_batch_ids"`
}

// MergeBatchRequest body para POST /api/batches/:id/merge.
type MergeBatchRequest struct {
	SecondaryBatchID string `json:"secondary_batch_id"`
	Reason           string `json:"reason,omitempty"`
}

// HarvestBatchRequest body para POST /api/batches/:id/harvest.
type HarvestBatchRequest struct {
	HarvestDate       *time.Time       `json:"harvest_date,omitempty"`
	TotalWeight       decimal.Decimal  `json:"total_weight"`
	WeightUnit        string           `json:"weight_unit,omitempty"`
	QualityGrade      string           `json:"quality_grade,omitempty"`
	HumidityPct       *decimal.Decimal `json:"humidity_pct,omitempty"`
	DestinationAreaID string           `json:"destination_area_id,omitempty"`
	Photos            []string         `json:"photos,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// ArchiveBatchRequest body para POST /api/batches/:id/archive.
type ArchiveBatchRequest struct {
	Notes string `json:"notes,omitempty"`
}

// UpdatePhaseRequest body para POST /api/batches/:id/phase.
type UpdatePhaseRequest struct {
	NewPhase string `json:"new_phase"`
	Notes    string `json:"notes,omitempty"`
}

// BatchResponse representación HTTP de un lote.
type BatchResponse struct {
	ID                       string     `json:"id"`
	BatchCode                string     `json:"batch_code"`
	CompanyID                string     `json:"company_id"`
	FacilityID               string     `json:"facility_id"`
	AreaID                   string     `json:"area_id,omitempty"`
	CropTypeID               string     `json:"crop_type_id"`
	CultivarID               string     `json:"cultivar_id,omitempty"`
	ParentBatchID            string     `json:"parent_batch_id,omitempty"`
	MergedIntoBatchID        string     `json:"merged_into_batch_id,omitempty"`
	SourceBatchID            string     `json:"source_batch_id,omitempty"`
	ProductionOrderID        string     `json:"production_order_id,omitempty"`
	BatchType                string     `json:"batch_type,omitempty"`
	SourceType               string     `json:"source_type,omitempty"`
	PlannedQuantity          int        `json:"planned_quantity"`
	InitialQuantity          int        `json:"initial_quantity"`
	CurrentQuantity          int        `json:"current_quantity"`
	LostQuantity             int        `json:"lost_quantity"`
	MortalityRate            int        `json:"mortality_rate"`
	CurrentPhase             string     `json:"current_phase"`
	Status                   string     `json:"status"`
	EnableIndividualTracking bool       `json:"enable_individual_tracking"`
	HarvestDate              *time.Time `json:"harvest_date,omitempty"`
	QualityGrade             string     `json:"quality_grade,omitempty"`
	StartDate                time.Time  `json:"start_date"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// ToBatchResponse convierte la entidad a su representación HTTP.
func ToBatchResponse(b *entity.Batch) BatchResponse {
	return BatchResponse{
		ID:                       b.ID,
		BatchCode:                b.BatchCode,
		CompanyID:                b.CompanyID,
		FacilityID:               b.FacilityID,
		AreaID:                   b.AreaID,
		CropTypeID:               b.CropTypeID,
		CultivarID:               b.CultivarID,
		ParentBatchID:            b.ParentBatchID,
		MergedIntoBatchID:        b.MergedIntoBatchID,
		SourceBatchID:            b.SourceBatchID,
		ProductionOrderID:        b.ProductionOrderID,
		BatchType:                b.BatchType,
		SourceType:               b.SourceType,
		PlannedQuantity:          b.PlannedQuantity,
		InitialQuantity:          b.InitialQuantity,
		CurrentQuantity:          b.CurrentQuantity,
		LostQuantity:             b.LostQuantity,
		MortalityRate:            b.MortalityRate,
		CurrentPhase:             b.CurrentPhase,
		Status:                   b.Status,
		EnableIndividualTracking: b.EnableIndividualTracking,
		HarvestDate:              b.HarvestDate,
		QualityGrade:             b.QualityGrade,
		StartDate:                b.StartDate,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}

// ActivityResponse entrada del historial de un lote.
type ActivityResponse struct {
	ID             string         `json:"id"`
	ActivityType   string         `json:"activity_type"`
	QuantityBefore int            `json:"quantity_before"`
	QuantityAfter  int            `json:"quantity_after"`
	Metadata       map[string]any `json:"activity_metadata,omitempty"`
	PerformedBy    string         `json:"performed_by"`
	CreatedAt      time.Time      `json:"timestamp"`
}

// ToActivityResponse convierte la entidad a su representación HTTP.
func ToActivityResponse(a *entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:             a.ID,
		ActivityType:   a.ActivityType,
		QuantityBefore: a.QuantityBefore,
		QuantityAfter:  a.QuantityAfter,
		Metadata:       a.Metadata,
		PerformedBy:    a.PerformedBy,
		CreatedAt:      a.CreatedAt,
	}
}

// LineageLinkResponse un vínculo etiquetado del grafo genealógico.
type LineageLinkResponse struct {
	Kind string `json:"kind"`
	From string `json:"from"`
	To   string `json:"to"`
}

// LineageResponse la familia genealógica de un lote.
type LineageResponse struct {
	RootID  string                `json:"root_id"`
	Batches []BatchResponse       `json:"batches"`
	Links   []LineageLinkResponse `json:"links"`
}
