package repository

import "github.com/sathler/bomlink/internal/domain/entity"

// ManufacturerRepository puerto de persistencia de fabricantes.
type ManufacturerRepository interface {
	Create(m *entity.Manufacturer) error
	GetByID(id int64) (*entity.Manufacturer, error)
	List(limit, offset int) ([]*entity.Manufacturer, error)
	Update(m *entity.Manufacturer) error
	Delete(id int64) error
}

// SupplierRepository puerto de persistencia de proveedores y del mapeo
// proveedor↔fabricante que dirige el ruteo de RFQs.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id int64) error

	AddManufacturer(supplierID, manufacturerID int64) error
	RemoveManufacturer(supplierID, manufacturerID int64) error
	ListMappingsBySupplier(supplierID int64) ([]*entity.SupplierManufacturer, error)
	// ListMappingsByManufacturers devuelve todos los pares (fabricante,
	// proveedor) para los fabricantes dados; insumo del paso de agrupación
	// de la generación de RFQs.
	ListMappingsByManufacturers(manufacturerIDs []int64) ([]*entity.SupplierManufacturer, error)
}

// CustomerRepository puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id int64) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(c *entity.Customer) error
	Delete(id int64) error
}

// JobRepository puerto de persistencia de trabajos.
type JobRepository interface {
	Create(j *entity.Job) error
	GetByID(id int64) (*entity.Job, error)
	List(limit, offset int) ([]*entity.Job, error)
	Update(j *entity.Job) error
	Delete(id int64) error
}
