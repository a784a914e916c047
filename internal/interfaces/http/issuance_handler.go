package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/application/issuance"
)

// IssuanceHandler maneja salidas de stock (protegido).
type IssuanceHandler struct {
	uc *issuance.UseCase
}

// NewIssuanceHandler construye el handler.
func NewIssuanceHandler(uc *issuance.UseCase) *IssuanceHandler {
	return &IssuanceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar salida de stock
// @Tags         issuances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssuanceRequest  true  "product_id, quantity (> 0), cliente, sucursal"
// @Success      201   {object}  dto.IssuanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issuances [post]
func (h *IssuanceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateIssuanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar salidas de stock
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.IssuanceListResponse
// @Router       /api/issuances [get]
func (h *IssuanceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Listar salidas de un producto
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductIssuancesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/issuances [get]
func (h *IssuanceHandler) ListByProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListByProduct(c.Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}
