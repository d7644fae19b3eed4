package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Partes ────────────────────────────────────────────────────────────────

// CreatePartRequest alta de parte. El número se normaliza antes de guardar.
type CreatePartRequest struct {
	PartNumber     string          `json:"part_number" validate:"required"`
	Description    string          `json:"description"`
	ManufacturerID int64           `json:"manufacturer_id" validate:"required"`
	Unit           string          `json:"unit"`
	Labour         decimal.Decimal `json:"labour"`
}

// UpdatePartRequest actualización parcial de parte.
type UpdatePartRequest struct {
	PartNumber     *string          `json:"part_number"`
	Description    *string          `json:"description"`
	ManufacturerID *int64           `json:"manufacturer_id"`
	Unit           *string          `json:"unit"`
	Labour         *decimal.Decimal `json:"labour"`
}

// PartResponse parte con su fabricante.
type PartResponse struct {
	ID               int64           `json:"id"`
	PartNumber       string          `json:"part_number"`
	Description      string          `json:"description"`
	ManufacturerID   int64           `json:"manufacturer_id"`
	ManufacturerName string          `json:"manufacturer_name"`
	Unit             string          `json:"unit"`
	Labour           decimal.Decimal `json:"labour"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PartListResponse listado paginado de partes.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ── Fabricantes ───────────────────────────────────────────────────────────

// ManufacturerRequest alta/actualización de fabricante.
type ManufacturerRequest struct {
	Name string `json:"name" validate:"required"`
}

// ManufacturerResponse fabricante.
type ManufacturerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Proveedores ───────────────────────────────────────────────────────────

// SupplierRequest alta/actualización de proveedor. ContactEmail es
// obligatorio: es el destino de los RFQ.
type SupplierRequest struct {
	Name         string `json:"name" validate:"required"`
	SupplierCode string `json:"supplier_code" validate:"required"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Province     string `json:"province"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SupplierCode string    `json:"supplier_code"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierMappingResponse par proveedor-fabricante.
type SupplierMappingResponse struct {
	SupplierID       int64  `json:"supplier_id"`
	SupplierName     string `json:"supplier_name"`
	ManufacturerID   int64  `json:"manufacturer_id"`
	ManufacturerName string `json:"manufacturer_name"`
}

// ── Clientes ──────────────────────────────────────────────────────────────

// CustomerRequest alta/actualización de cliente.
type CustomerRequest struct {
	Name         string `json:"name" validate:"required"`
	CustomerCode string `json:"customer_code" validate:"required"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Province     string `json:"province"`
}

// CustomerResponse cliente.
type CustomerResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CustomerCode string    `json:"customer_code"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ── Trabajos ──────────────────────────────────────────────────────────────

// CreateJobRequest alta de trabajo.
type CreateJobRequest struct {
	Number      string     `json:"number" validate:"required"`
	Description string     `json:"description"`
	CustomerID  int64      `json:"customer_id" validate:"required"`
	ContactName string     `json:"contact_name"`
	StartDate   *time.Time `json:"start_date"`
}

// UpdateJobRequest actualización parcial de trabajo.
type UpdateJobRequest struct {
	Number      *string    `json:"number"`
	Description *string    `json:"description"`
	CustomerID  *int64     `json:"customer_id"`
	ContactName *string    `json:"contact_name"`
	Status      *string    `json:"status"`
	StartDate   *time.Time `json:"start_date"`
}

// JobResponse trabajo con su cliente.
type JobResponse struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	Description  string    `json:"description"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ContactName  string    `json:"contact_name"`
	Status       string    `json:"status"`
	UserID       string    `json:"user_id"`
	StartDate    time.Time `json:"start_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
