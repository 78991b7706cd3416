package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/application/usecase"
)

// FacilityHandler maneja instalaciones y sus áreas.
type FacilityHandler struct {
	uc *usecase.FacilityUseCase
}

// NewFacilityHandler construye el handler de instalaciones.
func NewFacilityHandler(uc *usecase.FacilityUseCase) *FacilityHandler {
	return &FacilityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear instalación
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFacilityRequest  true  "datos de la instalación"
// @Success      201  {object}  dto.FacilityResponse
// @Router       /api/facilities [post]
// @Security     BearerAuth
func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFacilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return batchError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar instalación
// @Tags         facilities
// @Produce      json
// @Param        id  path  string  true  "facility ID"
// @Success      200  {object}  dto.FacilityResponse
// @Router       /api/facilities/{id} [get]
// @Security     BearerAuth
func (h *FacilityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar instalaciones
// @Tags         facilities
// @Produce      json
// @Success      200  {array}  dto.FacilityResponse
// @Router       /api/facilities [get]
// @Security     BearerAuth
func (h *FacilityHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// CreateArea godoc
// @Summary      Crear área de cultivo
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "facility ID"
// @Param        body  body  dto.CreateAreaRequest  true  "datos del área"
// @Success      201  {object}  dto.AreaResponse
// @Router       /api/facilities/{id}/areas [post]
// @Security     BearerAuth
func (h *FacilityHandler) CreateArea(c *fiber.Ctx) error {
	var in dto.CreateAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateArea(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return batchError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAreas godoc
// @Summary      Listar áreas de una instalación
// @Tags         facilities
// @Produce      json
// @Param        id  path  string  true  "facility ID"
// @Success      200  {array}  dto.AreaResponse
// @Router       /api/facilities/{id}/areas [get]
// @Security     BearerAuth
func (h *FacilityHandler) ListAreas(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.ListAreas(GetCompanyID(c), c.Params("id"), page)
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}
