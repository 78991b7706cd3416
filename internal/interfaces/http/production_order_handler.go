package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/application/usecase"
)

// ProductionOrderHandler maneja órdenes de producción.
type ProductionOrderHandler struct {
	uc *usecase.ProductionOrderUseCase
}

// NewProductionOrderHandler construye el handler de órdenes.
func NewProductionOrderHandler(uc *usecase.ProductionOrderUseCase) *ProductionOrderHandler {
	return &ProductionOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         production-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "datos de la orden"
// @Success      201  {object}  dto.ProductionOrderResponse
// @Router       /api/production-orders [post]
// @Security     BearerAuth
func (h *ProductionOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
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
// @Summary      Consultar orden de producción
// @Tags         production-orders
// @Produce      json
// @Param        id  path  string  true  "order ID"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Router       /api/production-orders/{id} [get]
// @Security     BearerAuth
func (h *ProductionOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         production-orders
// @Produce      json
// @Success      200  {array}  dto.ProductionOrderResponse
// @Router       /api/production-orders [get]
// @Security     BearerAuth
func (h *ProductionOrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}
