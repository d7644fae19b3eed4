package repository

import "github.com/sathler/bomlink/internal/domain/entity"

// RFQFilter filtros opcionales para listar RFQs.
type RFQFilter struct {
	Status     string
	SupplierID int64
	BOMID      int64
	Limit      int
	Offset     int
}

// RFQRepository puerto de persistencia del agregado RFQ y sus items.
// El borrado de la cabecera arrastra los items (cascada en el esquema).
type RFQRepository interface {
	Create(rfq *entity.RFQ) error
	GetByID(id int64) (*entity.RFQ, error)
	GetByBOMAndSupplier(bomID, supplierID int64) (*entity.RFQ, error)
	List(filter RFQFilter) ([]*entity.RFQ, error)
	Update(rfq *entity.RFQ) error
	Delete(id int64) error
	// HasByBOM alimenta el recompute de estado del BOM.
	HasByBOM(bomID int64) (bool, error)

	CreateItem(item *entity.RFQItem) error
	UpdateItem(item *entity.RFQItem) error
	DeleteItem(id int64) error
	GetItemByID(id int64) (*entity.RFQItem, error)
	ItemExists(rfqID, bomItemID int64) (bool, error)
	ListItems(rfqID int64) ([]*entity.RFQItem, error)
}
