package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un BOM. Se persisten como string.
const (
	BOMStatusDraft      = "Draft"      // Creado, sin líneas todavía
	BOMStatusIncomplete = "Incomplete" // Tiene draft items pendientes de revisión
	BOMStatusReady      = "Ready"      // Todas las líneas resueltas, listo para RFQ
	BOMStatusLocked     = "Locked"     // Tiene al menos un RFQ; no se modifica
)

// BOM cabecera de una lista de materiales. Las líneas (BOMItem) y los
// borradores (DraftBOMItem) son de su propiedad exclusiva y se borran en
// cascada con él.
type BOM struct {
	ID          int64
	CustomerID  int64
	JobID       *int64
	Description string
	Notes       string
	UserID      string
	Status      string
	Version     decimal.Decimal // decimal(4,1), arranca en 1.0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BOMNumber devuelve el código visible del BOM, con cero-padding fijo a
// 6 dígitos (se usa en exportaciones, correos y nombres de archivo).
func (b *BOM) BOMNumber() string {
	return fmt.Sprintf("BOM-%06d", b.ID)
}

// RecomputeStatus recalcula el estado como función pura de la existencia de
// RFQs, draft items y líneas resueltas, en ese orden de prioridad. No hay
// tabla de transiciones: un BOM Locked cuyo último RFQ desaparece vuelve a
// Ready/Incomplete/Draft según sus conjuntos actuales.
func (b *BOM) RecomputeStatus(hasRFQs, hasDrafts, hasItems bool) {
	switch {
	case hasRFQs:
		b.Status = BOMStatusLocked
	case hasDrafts:
		b.Status = BOMStatusIncomplete
	case hasItems:
		b.Status = BOMStatusReady
	default:
		b.Status = BOMStatusDraft
	}
}

var versionStep = decimal.NewFromFloat(0.1)

// IncrementVersion suma exactamente 0.1 a la versión. Se invoca cuando cambia
// el contenido de las líneas, no en cambios que solo tocan el estado.
func (b *BOM) IncrementVersion() {
	b.Version = b.Version.Add(versionStep)
}

// BOMItem línea resuelta: par (BOM, Part) único con cantidad >= 1.
type BOMItem struct {
	ID        int64
	BOMID     int64
	PartID    int64
	Quantity  int
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Datos del catálogo cargados por join (solo lectura).
	PartNumber       string
	PartDescription  string
	ManufacturerID   int64
	ManufacturerName string
}

// DraftBOMItem línea sin resolver: el número de parte no existe en el
// catálogo. Se elimina o se promueve a BOMItem cuando se resuelve.
type DraftBOMItem struct {
	ID         int64
	BOMID      int64
	PartNumber string
	Quantity   int
	IsResolved bool
	CreatedAt  time.Time
}
