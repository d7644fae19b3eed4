package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/rfq"
	"github.com/sathler/bomlink/internal/domain/repository"
	"github.com/sathler/bomlink/internal/infrastructure/excel"
	"github.com/sathler/bomlink/internal/infrastructure/pdf"
	"github.com/sathler/bomlink/pkg/metrics"
)

// RFQHandler maneja generación, ciclo de vida y exportaciones de RFQs
// (protegido).
type RFQHandler struct {
	uc      *rfq.UseCase
	builder *excel.Builder
	pdfGen  *pdf.RFQGenerator
	metrics *metrics.Metrics
}

// NewRFQHandler construye el handler.
func NewRFQHandler(uc *rfq.UseCase, builder *excel.Builder, pdfGen *pdf.RFQGenerator, m *metrics.Metrics) *RFQHandler {
	return &RFQHandler{uc: uc, builder: builder, pdfGen: pdfGen, metrics: m}
}

// Generate godoc
// @Summary      Generar RFQs para un BOM en estado Ready
// @Description  Sin asignaciones corre el modo automático; si algún fabricante
// @Description  mapea a más de un proveedor devuelve las opciones sin escribir.
// @Tags         rfqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true   "ID del BOM"
// @Param        body  body  dto.GenerateRFQRequest  false  "Asignaciones fabricante→proveedor"
// @Success      200   {object}  dto.GenerateRFQResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/rfqs [post]
func (h *RFQHandler) Generate(c *fiber.Ctx) error {
	bomID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.GenerateRFQRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Generate(c.UserContext(), int64(bomID), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	if h.metrics != nil && !out.NeedsDisambiguation() {
		h.metrics.RFQsGenerated.Add(float64(len(out.RFQs)))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar RFQs
// @Tags         rfqs
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Filtro por estado"
// @Param        supplier_id  query  int     false  "Filtro por proveedor"
// @Param        bom_id       query  int     false  "Filtro por BOM"
// @Success      200  {array}  dto.RFQResponse
// @Router       /api/rfqs [get]
func (h *RFQHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.RFQFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if v, err := strconv.ParseInt(c.Query("supplier_id"), 10, 64); err == nil {
		filter.SupplierID = v
	}
	if v, err := strconv.ParseInt(c.Query("bom_id"), 10, 64); err == nil {
		filter.BOMID = v
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener RFQ con items y totales
// @Tags         rfqs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200  {object}  dto.RFQDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id} [get]
func (h *RFQHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetDetail(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "RFQ no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera de RFQ (solo borrador)
// @Tags         rfqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del RFQ"
// @Param        body  body  dto.UpdateRFQRequest  true  "Campos"
// @Success      200   {object}  dto.RFQResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id} [put]
func (h *RFQHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.UpdateRFQRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItems godoc
// @Summary      Actualizar items del RFQ en lote (solo borrador)
// @Tags         rfqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del RFQ"
// @Param        body  body  dto.UpdateRFQItemsRequest  true  "Items"
// @Success      200   {object}  dto.RFQDetailResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id}/items [put]
func (h *RFQHandler) UpdateItems(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.UpdateRFQItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItems(c.UserContext(), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar un item del RFQ (solo borrador)
// @Tags         rfqs
// @Security     Bearer
// @Param        id      path  int  true  "ID del RFQ"
// @Param        itemId  path  int  true  "ID del item"
// @Success      204
// @Router       /api/rfqs/{id}/items/{itemId} [delete]
func (h *RFQHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.DeleteItem(int64(id), int64(itemID)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar RFQ (solo borrador; recalcula el estado del BOM)
// @Tags         rfqs
// @Security     Bearer
// @Param        id  path  int  true  "ID del RFQ"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id} [delete]
func (h *RFQHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Send godoc
// @Summary      Enviar RFQ al proveedor por correo (solo borrador)
// @Tags         rfqs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200  {object}  dto.RFQResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rfqs/{id}/send [post]
func (h *RFQHandler) Send(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.Send(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if h.metrics != nil {
		h.metrics.RFQsSent.Inc()
	}
	return c.JSON(out)
}

// MarkReceived godoc
// @Summary      Marcar RFQ enviado como recibido
// @Tags         rfqs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200  {object}  dto.RFQResponse
// @Router       /api/rfqs/{id}/receive [post]
func (h *RFQHandler) MarkReceived(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.MarkReceived(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkCanceled godoc
// @Summary      Cancelar RFQ enviado
// @Tags         rfqs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200  {object}  dto.RFQResponse
// @Router       /api/rfqs/{id}/cancel [post]
func (h *RFQHandler) MarkCanceled(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.MarkCanceled(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar items del RFQ como CSV
// @Tags         rfqs
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200
// @Router       /api/rfqs/{id}/export/csv [get]
func (h *RFQHandler) ExportCSV(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	r, items, err := h.uc.ExportData(int64(id))
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Part Number", "Description", "Quantity", "Manufacturer", "Price", "UOM", "ETA"})
	for _, it := range items {
		price, uom, eta := "", "", ""
		if it.Price != nil {
			price = it.Price.StringFixed(2)
		}
		if it.UOM != nil {
			uom = *it.UOM
		}
		if it.ETA != nil {
			eta = *it.ETA
		}
		_ = w.Write([]string{it.PartNumber, it.PartDescription, strconv.Itoa(it.Quantity), it.ManufacturerName, price, uom, eta})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, r.RFQNumber()))
	return c.Send(buf.Bytes())
}

// ExportXLSX godoc
// @Summary      Exportar items del RFQ como xlsx
// @Tags         rfqs
// @Security     Bearer
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200
// @Router       /api/rfqs/{id}/export/xlsx [get]
func (h *RFQHandler) ExportXLSX(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	r, items, err := h.uc.ExportData(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.builder.BuildRFQWorkbook(r, items)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, r.RFQNumber()))
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar RFQ como PDF
// @Tags         rfqs
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del RFQ"
// @Success      200
// @Router       /api/rfqs/{id}/export/pdf [get]
func (h *RFQHandler) ExportPDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	r, items, err := h.uc.ExportData(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.pdfGen.Generate(r, items)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, r.RFQNumber()))
	return c.Send(data)
}
