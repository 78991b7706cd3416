package entity

import "time"

// Estados del ciclo de vida de un lote. Exactamente uno a la vez;
// las transiciones permitidas viven en domain/batch (máquina de estados).
const (
	BatchStatusActive    = "active"
	BatchStatusHarvested = "harvested"
	BatchStatusArchived  = "archived"
	BatchStatusSplit     = "split"
	BatchStatusMerged    = "merged"
	BatchStatusLost      = "lost"
)

// Origen de un lote.
const (
	SourceTypeSeed     = "seed"     // sembrado desde semilla
	SourceTypeClone    = "clone"    // esqueje
	SourceTypePurchase = "purchase" // comprado a proveedor
	SourceTypeRescue   = "rescue"   // resultado de una división (split)
)

// Batch representa un lote: una cohorte de plantas trazada como unidad.
// Si EnableIndividualTracking es true, además existe una fila Plant por planta
// física, sincronizada con el área y la fase del lote.
type Batch struct {
	ID         string
	CompanyID  string
	FacilityID string
	AreaID     string // ubicación actual; vacío tras cosecha (ya no ocupa espacio de cultivo)
	CropTypeID string
	CultivarID string

	// Genealogía: referencias débiles, el grafo explícito se deriva en domain/batch.
	ParentBatchID     string // lote del que se dividió
	MergedIntoBatchID string // lote primario al que se fusionó
	SourceBatchID     string // raíz transitiva de la genealogía

	ProductionOrderID string

	BatchCode  string // único, legible: {CULTIVAR3}-{YYMMDD}-{SEQ3}
	BatchType  string
	SourceType string

	PlannedQuantity int
	InitialQuantity int
	CurrentQuantity int
	LostQuantity    int
	MortalityRate   int // porcentaje redondeado, derivado de Lost/Initial

	CurrentPhase string
	Status       string

	EnableIndividualTracking bool

	HarvestDate          *time.Time
	QualityGrade         string
	ActualCompletionDate *time.Time

	StartDate time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el lote admite operaciones de ciclo de vida.
func (b *Batch) IsActive() bool {
	return b.Status == BatchStatusActive
}

// SourceOrSelf devuelve la raíz genealógica: el SourceBatchID si existe,
// o el propio lote (para hijos de primera generación).
func (b *Batch) SourceOrSelf() string {
	if b.SourceBatchID != "" {
		return b.SourceBatchID
	}
	return b.ID
}
