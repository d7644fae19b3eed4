package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/usecase"
	"github.com/sathler/bomlink/internal/infrastructure/excel"
)

// BOMHandler maneja cabeceras de BOM y sus exportaciones (protegido).
type BOMHandler struct {
	uc      *usecase.BOMUseCase
	builder *excel.Builder
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase, builder *excel.Builder) *BOMHandler {
	return &BOMHandler{uc: uc, builder: builder}
}

// Create godoc
// @Summary      Crear BOM
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "Cabecera del BOM"
// @Success      201   {object}  dto.BOMResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id es requerido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener BOM con líneas, drafts y conteos
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del BOM"
// @Success      200  {object}  dto.BOMDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetDetail(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "BOM no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar BOMs
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Success      200     {array}  dto.BOMResponse
// @Router       /api/boms [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera de BOM
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del BOM"
// @Param        body  body  dto.UpdateBOMRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BOMResponse
// @Router       /api/boms/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.UpdateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "BOM no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar BOM (con líneas y drafts)
// @Tags         boms
// @Security     Bearer
// @Param        id  path  int  true  "ID del BOM"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [delete]
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV godoc
// @Summary      Exportar líneas del BOM como CSV
// @Tags         boms
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  int  true  "ID del BOM"
// @Success      200
// @Router       /api/boms/{id}/export/csv [get]
func (h *BOMHandler) ExportCSV(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	bom, items, err := h.uc.ExportData(int64(id))
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Part Number", "Description", "Quantity", "Manufacturer"})
	for _, it := range items {
		_ = w.Write([]string{it.PartNumber, it.PartDescription, strconv.Itoa(it.Quantity), it.ManufacturerName})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, bom.BOMNumber()))
	return c.Send(buf.Bytes())
}

// ExportXLSX godoc
// @Summary      Exportar líneas del BOM como xlsx
// @Tags         boms
// @Security     Bearer
// @Param        id  path  int  true  "ID del BOM"
// @Success      200
// @Router       /api/boms/{id}/export/xlsx [get]
func (h *BOMHandler) ExportXLSX(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	bom, items, err := h.uc.ExportData(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.builder.BuildBOMWorkbook(bom, items)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, bom.BOMNumber()))
	return c.Send(data)
}
