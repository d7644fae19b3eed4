package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sathler/bomlink/internal/application/bomitems"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/importing"
	"github.com/sathler/bomlink/pkg/metrics"
)

// BOMItemHandler maneja líneas de BOM, borradores y los tres orígenes de
// importación (protegido).
type BOMItemHandler struct {
	items   *bomitems.UseCase
	imports *importing.UseCase
	metrics *metrics.Metrics
}

// NewBOMItemHandler construye el handler.
func NewBOMItemHandler(items *bomitems.UseCase, imports *importing.UseCase, m *metrics.Metrics) *BOMItemHandler {
	return &BOMItemHandler{items: items, imports: imports, metrics: m}
}

// AddItem godoc
// @Summary      Agregar línea manual a un BOM
// @Tags         bom-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del BOM"
// @Param        body  body  dto.CreateBOMItemRequest  true  "Línea"
// @Success      201   {object}  dto.BOMItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/items [post]
func (h *BOMItemHandler) AddItem(c *fiber.Ctx) error {
	bomID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.CreateBOMItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.items.AddItem(c.UserContext(), int64(bomID), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar una línea
// @Tags         bom-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  int                       true  "ID de la línea"
// @Param        body    body  dto.UpdateBOMItemRequest  true  "Campos"
// @Success      200     {object}  dto.BOMItemResponse
// @Router       /api/bom-items/{itemId} [put]
func (h *BOMItemHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.UpdateBOMItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.items.UpdateItem(c.UserContext(), int64(itemID), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar una línea
// @Tags         bom-items
// @Security     Bearer
// @Param        itemId  path  int  true  "ID de la línea"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bom-items/{itemId} [delete]
func (h *BOMItemHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.items.DeleteItem(c.UserContext(), int64(itemID)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// importColumns lee los índices de columna (base 1) del formulario, con
// defaults 1 y 2.
func importColumns(c *fiber.Ctx) (int, int) {
	partCol, err := strconv.Atoi(c.FormValue("part_column", "1"))
	if err != nil {
		partCol = 1
	}
	qtyCol, err := strconv.Atoi(c.FormValue("quantity_column", "2"))
	if err != nil {
		qtyCol = 2
	}
	return partCol, qtyCol
}

func (h *BOMItemHandler) countImport(source string, res *dto.ImportResultResponse) {
	if h.metrics != nil && res != nil {
		h.metrics.ImportRows.WithLabelValues(source).Add(float64(res.Processed))
	}
}

// ImportCSV godoc
// @Summary      Importar líneas desde un CSV (multipart)
// @Tags         bom-items
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id               path      int     true   "ID del BOM"
// @Param        file             formData  file    true   "Archivo CSV"
// @Param        part_column      formData  int     false  "Columna del número de parte (base 1)"
// @Param        quantity_column  formData  int     false  "Columna de cantidad (base 1)"
// @Success      200  {object}  dto.ImportResultResponse
// @Router       /api/boms/{id}/import/csv [post]
func (h *BOMItemHandler) ImportCSV(c *fiber.Ctx) error {
	bomID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo requerido en el campo file"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	partCol, qtyCol := importColumns(c)
	res, err := h.imports.ImportCSV(c.UserContext(), int64(bomID), f, partCol, qtyCol)
	if err != nil {
		return respondError(c, err)
	}
	h.countImport("csv", res)
	return c.JSON(res)
}

// ImportXLSX godoc
// @Summary      Importar líneas desde un xlsx (multipart)
// @Tags         bom-items
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id               path      int     true   "ID del BOM"
// @Param        file             formData  file    true   "Archivo xlsx"
// @Param        part_column      formData  int     false  "Columna del número de parte (base 1)"
// @Param        quantity_column  formData  int     false  "Columna de cantidad (base 1)"
// @Success      200  {object}  dto.ImportResultResponse
// @Router       /api/boms/{id}/import/xlsx [post]
func (h *BOMItemHandler) ImportXLSX(c *fiber.Ctx) error {
	bomID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo requerido en el campo file"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	partCol, qtyCol := importColumns(c)
	res, err := h.imports.ImportXLSX(c.UserContext(), int64(bomID), f, partCol, qtyCol)
	if err != nil {
		return respondError(c, err)
	}
	h.countImport("xlsx", res)
	return c.JSON(res)
}

// ImportOCR godoc
// @Summary      Importar líneas desde una imagen o PDF vía OCR (multipart)
// @Tags         bom-items
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id    path      int   true  "ID del BOM"
// @Param        file  formData  file  true  "Imagen o PDF"
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/import/ocr [post]
func (h *BOMItemHandler) ImportOCR(c *fiber.Ctx) error {
	bomID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo requerido en el campo file"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	res, err := h.imports.ImportOCR(c.UserContext(), int64(bomID), f)
	if err != nil {
		return respondError(c, err)
	}
	h.countImport("ocr", res)
	return c.JSON(res)
}

// ConfirmDraft godoc
// @Summary      Confirmar un borrador (la parte ya debe existir en catálogo)
// @Tags         bom-items
// @Security     Bearer
// @Produce      json
// @Param        draftId  path  int  true  "ID del borrador"
// @Success      200  {object}  dto.BOMItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/draft-items/{draftId}/confirm [post]
func (h *BOMItemHandler) ConfirmDraft(c *fiber.Ctx) error {
	draftID, err := c.ParamsInt("draftId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.items.ConfirmDraft(c.UserContext(), int64(draftID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectDraft godoc
// @Summary      Rechazar (descartar) un borrador
// @Tags         bom-items
// @Security     Bearer
// @Param        draftId  path  int  true  "ID del borrador"
// @Success      204
// @Router       /api/draft-items/{draftId} [delete]
func (h *BOMItemHandler) RejectDraft(c *fiber.Ctx) error {
	draftID, err := c.ParamsInt("draftId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.items.RejectDraft(c.UserContext(), int64(draftID)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
