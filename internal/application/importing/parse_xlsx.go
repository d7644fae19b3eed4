package importing

import (
	"fmt"
	"io"

	"github.com/sathler/bomlink/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX lee la primera hoja de un libro xlsx con el mismo contrato de
// columnas 1-based que ParseCSV: fila de encabezado y luego datos.
func ParseXLSX(r io.Reader, partCol, qtyCol int) ([]Row, error) {
	if partCol < 1 || qtyCol < 1 {
		return nil, fmt.Errorf("%w: columnas de parte y cantidad deben ser >= 1", domain.ErrInvalidInput)
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrInvalidInput)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer filas xlsx: %w", err)
	}

	var rows []Row
	for i, record := range records {
		if i == 0 {
			continue // fila de encabezado
		}
		rows = append(rows, pickRow(record, partCol, qtyCol))
	}
	return rows, nil
}
