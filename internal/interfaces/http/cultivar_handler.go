package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/application/usecase"
)

// CultivarHandler maneja cultivares y el catálogo de tipos de cultivo.
type CultivarHandler struct {
	uc *usecase.CultivarUseCase
}

// NewCultivarHandler construye el handler de cultivares.
func NewCultivarHandler(uc *usecase.CultivarUseCase) *CultivarHandler {
	return &CultivarHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cultivar
// @Tags         cultivars
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCultivarRequest  true  "datos del cultivar"
// @Success      201  {object}  dto.CultivarResponse
// @Router       /api/cultivars [post]
// @Security     BearerAuth
func (h *CultivarHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCultivarRequest
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
// @Summary      Consultar cultivar
// @Tags         cultivars
// @Produce      json
// @Param        id  path  string  true  "cultivar ID"
// @Success      200  {object}  dto.CultivarResponse
// @Router       /api/cultivars/{id} [get]
// @Security     BearerAuth
func (h *CultivarHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cultivares
// @Tags         cultivars
// @Produce      json
// @Success      200  {array}  dto.CultivarResponse
// @Router       /api/cultivars [get]
// @Security     BearerAuth
func (h *CultivarHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// ListCropTypes godoc
// @Summary      Catálogo de tipos de cultivo
// @Tags         cultivars
// @Produce      json
// @Success      200  {array}  dto.CropTypeResponse
// @Router       /api/crop-types [get]
// @Security     BearerAuth
func (h *CultivarHandler) ListCropTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListCropTypes()
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}
