package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateRFQRequest asignación fabricante→proveedor para la generación.
// Vacío dispara el modo automático; cuando algún fabricante admite más de
// un proveedor la respuesta trae las opciones y no escribe nada.
type GenerateRFQRequest struct {
	Assignments map[int64]int64 `json:"assignments"`
}

// ManufacturerOption opciones de proveedor para un fabricante ambiguo.
type ManufacturerOption struct {
	ManufacturerID   int64              `json:"manufacturer_id"`
	ManufacturerName string             `json:"manufacturer_name"`
	Suppliers        []SupplierResponse `json:"suppliers"`
}

// GenerateRFQResponse resultado de la generación. O bien RFQs creados o
// encontrados, o bien las opciones pendientes de desambiguación.
type GenerateRFQResponse struct {
	RFQs    []RFQResponse        `json:"rfqs,omitempty"`
	Options []ManufacturerOption `json:"options,omitempty"`
}

// NeedsDisambiguation indica si el llamador debe resolver asignaciones.
func (r *GenerateRFQResponse) NeedsDisambiguation() bool {
	return len(r.Options) > 0
}

// RFQResponse cabecera de RFQ.
type RFQResponse struct {
	ID           int64      `json:"id"`
	Number       string     `json:"number"`
	BOMID        int64      `json:"bom_id"`
	SupplierID   int64      `json:"supplier_id"`
	SupplierName string     `json:"supplier_name"`
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	DueDate      time.Time  `json:"due_date"`
	SentDate     *time.Time `json:"sent_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RFQItemResponse item de RFQ con total de línea (precio × cantidad).
type RFQItemResponse struct {
	ID               int64            `json:"id"`
	RFQID            int64            `json:"rfq_id"`
	BOMItemID        int64            `json:"bom_item_id"`
	PartNumber       string           `json:"part_number"`
	PartDescription  string           `json:"part_description"`
	ManufacturerName string           `json:"manufacturer_name"`
	Quantity         int              `json:"quantity"`
	UOM              *string          `json:"uom,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	ETA              *string          `json:"eta,omitempty"`
	Notes            string           `json:"notes"`
	LineTotal        decimal.Decimal  `json:"line_total"`
}

// RFQDetailResponse cabecera más items y total.
type RFQDetailResponse struct {
	RFQResponse
	Items []RFQItemResponse `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// RFQItemUpdate actualización de un item dentro del lote.
type RFQItemUpdate struct {
	ID       int64            `json:"id" validate:"required"`
	Quantity *int             `json:"quantity" validate:"omitempty,min=1"`
	UOM      *string          `json:"uom"`
	Price    *decimal.Decimal `json:"price"`
	ETA      *string          `json:"eta"`
	Notes    *string          `json:"notes"`
}

// UpdateRFQItemsRequest lote de edición de items; solo en estado Draft.
type UpdateRFQItemsRequest struct {
	Items []RFQItemUpdate `json:"items" validate:"required,dive"`
}

// UpdateRFQRequest actualización de cabecera; solo en estado Draft.
type UpdateRFQRequest struct {
	Notes   *string    `json:"notes"`
	DueDate *time.Time `json:"due_date"`
}
