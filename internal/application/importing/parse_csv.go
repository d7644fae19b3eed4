package importing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sathler/bomlink/internal/domain"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ParseCSV lee un CSV con fila de encabezado y devuelve las filas crudas.
// partCol y qtyCol son índices de columna 1-based, como los ve el usuario
// en su planilla. Archivos que no son UTF-8 válido se reinterpretan como
// Windows-1252 (exportaciones viejas de Excel).
func ParseCSV(r io.Reader, partCol, qtyCol int) ([]Row, error) {
	if partCol < 1 || qtyCol < 1 {
		return nil, fmt.Errorf("%w: columnas de parte y cantidad deben ser >= 1", domain.ErrInvalidInput)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("decodificar csv: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsear csv: %w", err)
		}
		if first {
			first = false // fila de encabezado
			continue
		}
		rows = append(rows, pickRow(record, partCol, qtyCol))
	}
	return rows, nil
}

// pickRow extrae parte y cantidad de un registro por índice 1-based.
// Registros cortos o cantidades no numéricas producen una fila inválida
// que Aggregate descarta después.
func pickRow(record []string, partCol, qtyCol int) Row {
	var row Row
	if partCol <= len(record) {
		row.PartNumber = strings.TrimSpace(record[partCol-1])
	}
	if qtyCol <= len(record) {
		if qty, err := strconv.Atoi(strings.TrimSpace(record[qtyCol-1])); err == nil {
			row.Quantity = qty
		}
	}
	return row
}
