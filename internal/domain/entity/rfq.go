package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un RFQ. Se persisten como string.
// Draft es el único estado editable; Sent se alcanza solo tras la entrega
// confirmada del correo al transporte.
const (
	RFQStatusDraft    = "Draft"
	RFQStatusSent     = "Sent"
	RFQStatusReceived = "Received"
	RFQStatusCanceled = "Canceled"
)

// RFQ solicitud de cotización a un proveedor para un subconjunto de líneas
// de un BOM. Posee sus RFQItems (borrado en cascada).
type RFQ struct {
	ID         int64
	BOMID      int64
	SupplierID int64
	UserID     string
	Status     string
	Notes      string
	DueDate    time.Time
	SentDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Datos cargados por join (solo lectura).
	SupplierName  string
	SupplierEmail string
}

// RFQNumber devuelve el código visible del RFQ, cero-padded a 6 dígitos.
func (r *RFQ) RFQNumber() string {
	return fmt.Sprintf("RFQ-%06d", r.ID)
}

// CanEdit indica si los items del RFQ admiten edición o borrado.
func (r *RFQ) CanEdit() bool {
	return r.Status == RFQStatusDraft
}

// RFQItem snapshot de una línea del BOM dentro de un RFQ. La cantidad es
// propia (independiente de la cantidad actual del BOMItem). UOM, Price y ETA
// los llena el proveedor al responder; hasta entonces son nulos.
type RFQItem struct {
	ID        int64
	RFQID     int64
	BOMItemID int64
	Quantity  int
	UOM       *string
	Price     *decimal.Decimal // decimal(18,2)
	ETA       *string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Datos cargados por join (solo lectura).
	PartNumber       string
	PartDescription  string
	ManufacturerName string
}

// LineTotal precio por cantidad; cero mientras el proveedor no cotiza.
func (i *RFQItem) LineTotal() decimal.Decimal {
	if i.Price == nil {
		return decimal.Zero
	}
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
