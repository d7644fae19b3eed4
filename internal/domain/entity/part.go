package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Unidades de medida del catálogo. Se persisten como string.
const (
	UnitEach    = "E"  // unidad
	UnitMeter   = "M"  // metro
	UnitHundred = "C"  // ciento
	UnitFoot    = "FT" // pie
)

// Part registro de catálogo con número de parte único ya normalizado.
// No se elimina mientras esté referenciado por líneas de BOM.
type Part struct {
	ID             int64
	PartNumber     string
	Description    string
	ManufacturerID int64
	Unit           string
	Labour         decimal.Decimal // horas de mano de obra, decimal(18,2)
	CreatedAt      time.Time
	UpdatedAt      time.Time

	ManufacturerName string // join, solo lectura
}

// NormalizePartNumber canonicaliza un número de parte: descarta todo lo que
// no sea alfanumérico y pasa a mayúsculas. "ABC-123" y "abc123" colapsan a
// la misma clave "ABC123".
func NormalizePartNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
