package entity

import "time"

// Manufacturer fabricante; nombre único.
type Manufacturer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier proveedor; nombre y código únicos. ContactEmail es obligatorio
// porque es el destino de los RFQ.
type Supplier struct {
	ID           int64
	Name         string
	SupplierCode string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Address      string
	City         string
	Province     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplierManufacturer afirma "el proveedor X puede suministrar partes del
// fabricante Y". Es la única fuente de verdad para el ruteo de RFQs.
type SupplierManufacturer struct {
	ID             int64
	SupplierID     int64
	ManufacturerID int64

	SupplierName     string // join, solo lectura
	ManufacturerName string // join, solo lectura
}

// Customer cliente; nombre y código únicos.
type Customer struct {
	ID           int64
	Name         string
	CustomerCode string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Address      string
	City         string
	Province     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
