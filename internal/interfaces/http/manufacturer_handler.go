package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/usecase"
)

// ManufacturerHandler maneja las peticiones HTTP de fabricantes (protegido).
type ManufacturerHandler struct {
	uc *usecase.ManufacturerUseCase
}

// NewManufacturerHandler construye el handler.
func NewManufacturerHandler(uc *usecase.ManufacturerUseCase) *ManufacturerHandler {
	return &ManufacturerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear fabricante
// @Tags         manufacturers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManufacturerRequest  true  "Datos del fabricante"
// @Success      201   {object}  dto.ManufacturerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manufacturers [post]
func (h *ManufacturerHandler) Create(c *fiber.Ctx) error {
	var in dto.ManufacturerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener fabricante por ID
// @Tags         manufacturers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del fabricante"
// @Success      200  {object}  dto.ManufacturerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manufacturers/{id} [get]
func (h *ManufacturerHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fabricante no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fabricantes
// @Tags         manufacturers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ManufacturerResponse
// @Router       /api/manufacturers [get]
func (h *ManufacturerHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar fabricante
// @Tags         manufacturers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del fabricante"
// @Param        body  body  dto.ManufacturerRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.ManufacturerResponse
// @Router       /api/manufacturers/{id} [put]
func (h *ManufacturerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.ManufacturerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fabricante no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar fabricante
// @Tags         manufacturers
// @Security     Bearer
// @Param        id  path  int  true  "ID del fabricante"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manufacturers/{id} [delete]
func (h *ManufacturerHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
