// Package excel arma los libros xlsx del sistema: exportación de líneas de
// BOM, exportación de RFQ cotizado y el adjunto de solicitud que viaja en
// el correo al proveedor.
package excel

import (
	"fmt"

	"github.com/sathler/bomlink/internal/application/rfq"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// Verificar en tiempo de compilación que Builder implementa AttachmentBuilder.
var _ rfq.AttachmentBuilder = (*Builder)(nil)

// Builder generador de libros xlsx.
type Builder struct{}

// NewBuilder construye el generador.
func NewBuilder() *Builder { return &Builder{} }

const sheetName = "Sheet1"

// newWorkbook crea un libro con la fila de encabezado en negrita.
func newWorkbook(headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, rowIdx int, values []any) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func finish(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	f.Close()
	return buf.Bytes(), nil
}

// BuildBOMWorkbook exporta las líneas de un BOM.
func (b *Builder) BuildBOMWorkbook(bom *entity.BOM, items []*entity.BOMItem) ([]byte, error) {
	f, err := newWorkbook([]string{"Part Number", "Description", "Quantity", "Manufacturer"})
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		err := setRow(f, i+2, []any{it.PartNumber, it.PartDescription, it.Quantity, it.ManufacturerName})
		if err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetName, "A", "B", 28)
	_ = f.SetColWidth(sheetName, "D", "D", 22)
	return finish(f)
}

// BuildRFQWorkbook exporta un RFQ con los valores cotizados que ya tenga.
func (b *Builder) BuildRFQWorkbook(r *entity.RFQ, items []*entity.RFQItem) ([]byte, error) {
	f, err := newWorkbook([]string{"Part Number", "Description", "Manufacturer", "Quantity", "UOM", "Price", "ETA"})
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		values := []any{it.PartNumber, it.PartDescription, it.ManufacturerName, it.Quantity, "", "", ""}
		if it.UOM != nil {
			values[4] = *it.UOM
		}
		if it.Price != nil {
			price, _ := it.Price.Float64()
			values[5] = price
		}
		if it.ETA != nil {
			values[6] = *it.ETA
		}
		if err := setRow(f, i+2, values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetName, "A", "C", 26)
	return finish(f)
}

// BuildRFQAttachment arma el libro que acompaña al correo de solicitud: las
// columnas UOM, Price y ETA van en blanco para que el proveedor las llene.
func (b *Builder) BuildRFQAttachment(r *entity.RFQ, items []*entity.RFQItem) ([]byte, error) {
	f, err := newWorkbook([]string{"Part Number", "Description", "Manufacturer", "Quantity", "UOM", "Price", "ETA"})
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		err := setRow(f, i+2, []any{it.PartNumber, it.PartDescription, it.ManufacturerName, it.Quantity, "", "", ""})
		if err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetName, "A", "C", 26)
	return finish(f)
}
