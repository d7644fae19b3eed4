// Package importing implementa el pipeline de importación de líneas de BOM
// desde CSV, XLSX y OCR: parseo, normalización, agregación y el volcado
// transaccional match-o-draft contra el catálogo.
package importing

import "github.com/sathler/bomlink/internal/domain/entity"

// Row fila cruda de cualquier origen, antes de normalizar.
type Row struct {
	PartNumber string
	Quantity   int
}

// Aggregate normaliza los números de parte y suma cantidades de filas que
// colapsan a la misma clave. Filas con número vacío tras normalizar o
// cantidad no positiva se descartan en silencio (tolerancia por fila).
// El orden de primera aparición se preserva.
func Aggregate(rows []Row) []Row {
	index := make(map[string]int)
	var out []Row
	for _, r := range rows {
		number := entity.NormalizePartNumber(r.PartNumber)
		if number == "" || r.Quantity <= 0 {
			continue
		}
		if i, ok := index[number]; ok {
			out[i].Quantity += r.Quantity
			continue
		}
		index[number] = len(out)
		out = append(out, Row{PartNumber: number, Quantity: r.Quantity})
	}
	return out
}
