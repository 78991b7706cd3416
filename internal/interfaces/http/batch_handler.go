package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/verdeflow/trazo-api/internal/application/batches"
	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/application/trace"
	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// BatchHandler expone el motor de ciclo de vida de lotes sobre HTTP.
type BatchHandler struct {
	uc      *batches.LifecycleUseCase
	traceUC *trace.SheetUseCase
}

// NewBatchHandler construye el handler de lotes.
func NewBatchHandler(uc *batches.LifecycleUseCase, traceUC *trace.SheetUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, traceUC: traceUC}
}

// batchError mapea errores de dominio a status HTTP. Una sola vez para todas
// las operaciones del motor.
func batchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrOwnershipMismatch):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OWNERSHIP_MISMATCH", Message: "el recurso pertenece a otra empresa o instalación"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el estado del lote no permite la operación"})
	case errors.Is(err, domain.ErrQuantityMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "QUANTITY_MISMATCH", Message: "las cantidades no cuadran"})
	case errors.Is(err, domain.ErrIncompatibleBatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INCOMPATIBLE_BATCH", Message: "lotes incompatibles para fusión"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear lote
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "datos del lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
// @Security     BearerAuth
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Create(c.UserContext(), batches.CreateInput{
		CompanyID:                GetCompanyID(c),
		UserID:                   GetUserID(c),
		FacilityID:               in.FacilityID,
		AreaID:                   in.AreaID,
		CropTypeID:               in.CropTypeID,
		CultivarID:               in.CultivarID,
		ProductionOrderID:        in.ProductionOrderID,
		BatchType:                in.BatchType,
		SourceType:               in.SourceType,
		CurrentPhase:             in.CurrentPhase,
		PlannedQuantity:          in.PlannedQuantity,
		InitialQuantity:          in.InitialQuantity,
		EnableIndividualTracking: in.EnableIndividualTracking,
	})
	if err != nil {
		return batchError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBatchResponse(b))
}

// GetByID godoc
// @Summary      Consultar lote
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "batch ID"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
// @Security     BearerAuth
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(dto.ToBatchResponse(b))
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        area_id query  string  false  "filtrar por área"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
// @Security     BearerAuth
func (h *BatchHandler) List(c *fiber.Ctx) error {
	filter := repository.BatchFilter{
		Status: c.Query("status"),
		AreaID: c.Query("area_id"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	list, err := h.uc.List(c.UserContext(), GetCompanyID(c), filter)
	if err != nil {
		return batchError(c, err)
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.ToBatchResponse(b))
	}
	return c.JSON(items)
}

// Move godoc
// @Summary      Trasladar lote de área
// @Tags         batches
// @Accept       json
// @Param        id    path  string                true  "batch ID"
// @Param        body  body  dto.MoveBatchRequest  true  "área destino"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/move [post]
// @Security     BearerAuth
func (h *BatchHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Move(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), batches.MoveInput{
		ToAreaID: in.ToAreaID,
		Reason:   in.Reason,
		Notes:    in.Notes,
	})
	if err != nil {
		return batchError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordLoss godoc
// @Summary      Registrar pérdida
// @Tags         batches
// @Accept       json
// @Param        id    path  string                 true  "batch ID"
// @Param        body  body  dto.RecordLossRequest  true  "cantidad y motivo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/losses [post]
// @Security     BearerAuth
func (h *BatchHandler) RecordLoss(c *fiber.Ctx) error {
	var in dto.RecordLossRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.RecordLoss(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), batches.LossInput{
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Description: in.Description,
		Photos:      in.Photos,
		DetectedAt:  in.DetectedAt,
	})
	if err != nil {
		return batchError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Split godoc
// @Summary      Dividir lote
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "batch ID"
// @Param        body  body  dto.SplitBatchRequest  true  "grupos destino"
// @Success      201  {object}  dto.SplitBatchResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/split [post]
// @Security     BearerAuth
func (h *BatchHandler) Split(c *fiber.Ctx) error {
	var in dto.SplitBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	groups := make([]batches.SplitGroup, 0, len(in.Groups))
	for _, g := range in.Groups {
		groups = append(groups, batches.SplitGroup{
			Quantity: g.Quantity,
			ToAreaID: g.ToAreaID,
			Code:     g.Code,
		})
	}
	result, err := h.uc.Split(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), batches.SplitInput{
		Groups: groups,
		Reason: in.Reason,
	})
	if err != nil {
		return batchError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SplitBatchResponse{
		Success:     true,
		NewBatchIDs: result.NewBatchIDs,
	})
}

// Merge godoc
// @Summary      Fusionar lotes
// @Tags         batches
// @Accept       json
// @Param        id    path  string                 true  "batch ID primario"
// @Param        body  body  dto.MergeBatchRequest  true  "lote secundario"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/merge [post]
// @Security     BearerAuth
func (h *BatchHandler) Merge(c *fiber.Ctx) error {
	var in dto.MergeBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SecondaryBatchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "secondary_batch_id es requerido"})
	}
	err := h.uc.Merge(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.SecondaryBatchID, in.Reason)
	if err != nil {
		return batchError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Harvest godoc
// @Summary      Cosechar lote
// @Tags         batches
// @Accept       json
// @Param        id    path  string                   true  "batch ID"
// @Param        body  body  dto.HarvestBatchRequest  true  "peso y calidad"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/harvest [post]
// @Security     BearerAuth
func (h *BatchHandler) Harvest(c *fiber.Ctx) error {
	var in dto.HarvestBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	harvestDate := time.Now()
	if in.HarvestDate != nil {
		harvestDate = *in.HarvestDate
	}
	err := h.uc.Harvest(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), batches.HarvestInput{
		HarvestDate:       harvestDate,
		TotalWeight:       in.TotalWeight,
		WeightUnit:        in.WeightUnit,
		QualityGrade:      in.QualityGrade,
		HumidityPct:       in.HumidityPct,
		DestinationAreaID: in.DestinationAreaID,
		Photos:            in.Photos,
		Notes:             in.Notes,
	})
	if err != nil {
		return batchError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Archive godoc
// @Summary      Archivar lote
// @Tags         batches
// @Accept       json
// @Param        id    path  string                   true  "batch ID"
// @Param        body  body  dto.ArchiveBatchRequest  false  "notas"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/archive [post]
// @Security     BearerAuth
func (h *BatchHandler) Archive(c *fiber.Ctx) error {
	var in dto.ArchiveBatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.uc.Archive(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Notes); err != nil {
		return batchError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdatePhase godoc
// @Summary      Cambiar fase de cultivo
// @Tags         batches
// @Accept       json
// @Param        id    path  string                  true  "batch ID"
// @Param        body  body  dto.UpdatePhaseRequest  true  "nueva fase"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/phase [post]
// @Security     BearerAuth
func (h *BatchHandler) UpdatePhase(c *fiber.Ctx) error {
	var in dto.UpdatePhaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NewPhase == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "new_phase es requerido"})
	}
	if err := h.uc.UpdatePhase(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.NewPhase, in.Notes); err != nil {
		return batchError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Historial de actividades del lote
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "batch ID"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/batches/{id}/activities [get]
// @Security     BearerAuth
func (h *BatchHandler) History(c *fiber.Ctx) error {
	list, err := h.uc.History(c.UserContext(), GetCompanyID(c), c.Params("id"),
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return batchError(c, err)
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ToActivityResponse(a))
	}
	return c.JSON(items)
}

// Children godoc
// @Summary      Lotes hijos de una división
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "batch ID"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches/{id}/children [get]
// @Security     BearerAuth
func (h *BatchHandler) Children(c *fiber.Ctx) error {
	list, err := h.uc.Children(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.ToBatchResponse(b))
	}
	return c.JSON(items)
}

// Lineage godoc
// @Summary      Genealogía completa del lote
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "batch ID"
// @Success      200  {object}  dto.LineageResponse
// @Router       /api/batches/{id}/lineage [get]
// @Security     BearerAuth
func (h *BatchHandler) Lineage(c *fiber.Ctx) error {
	result, err := h.uc.Lineage(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	resp := dto.LineageResponse{RootID: result.RootID}
	for _, b := range result.Batches {
		resp.Batches = append(resp.Batches, dto.ToBatchResponse(b))
	}
	for _, l := range result.Links {
		resp.Links = append(resp.Links, dto.LineageLinkResponse{Kind: l.Kind, From: l.From, To: l.To})
	}
	return c.JSON(resp)
}

// TraceSheet godoc
// @Summary      Hoja de trazabilidad en PDF
// @Tags         batches
// @Produce      application/pdf
// @Param        id  path  string  true  "batch ID"
// @Success      200  {file}  binary
// @Router       /api/batches/{id}/trace-sheet [get]
// @Security     BearerAuth
func (h *BatchHandler) TraceSheet(c *fiber.Ctx) error {
	pdfBytes, err := h.traceUC.RenderSheet(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="trace-sheet.pdf"`)
	return c.Send(pdfBytes)
}
