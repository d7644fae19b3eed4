package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, supplier_code, contact_name, contact_phone, contact_email, address, city, province, created_at, updated_at`

// Create persiste un proveedor; nombre y código son únicos.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, supplier_code, contact_name, contact_phone, contact_email, address, city, province, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.Name, s.SupplierCode, s.ContactName, s.ContactPhone, s.ContactEmail,
		s.Address, s.City, s.Province, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.SupplierCode, &s.ContactName, &s.ContactPhone,
		&s.ContactEmail, &s.Address, &s.City, &s.Province, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores con paginación.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.SupplierCode, &s.ContactName, &s.ContactPhone,
			&s.ContactEmail, &s.Address, &s.City, &s.Province, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, supplier_code = $3, contact_name = $4, contact_phone = $5,
			contact_email = $6, address = $7, city = $8, province = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.SupplierCode, s.ContactName, s.ContactPhone,
		s.ContactEmail, s.Address, s.City, s.Province, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete elimina un proveedor; RESTRICT si tiene RFQs. Los mapeos con
// fabricantes caen en cascada.
func (r *SupplierRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// AddManufacturer registra que el proveedor puede suministrar el fabricante.
func (r *SupplierRepo) AddManufacturer(supplierID, manufacturerID int64) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO supplier_manufacturers (supplier_id, manufacturer_id) VALUES ($1, $2)`,
		supplierID, manufacturerID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier mapping: %w", err)
	}
	return nil
}

// RemoveManufacturer elimina el mapeo proveedor-fabricante.
func (r *SupplierRepo) RemoveManufacturer(supplierID, manufacturerID int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM supplier_manufacturers WHERE supplier_id = $1 AND manufacturer_id = $2`,
		supplierID, manufacturerID)
	if err != nil {
		return fmt.Errorf("delete supplier mapping: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const mappingColumns = `sm.id, sm.supplier_id, sm.manufacturer_id, s.name, m.name`

// ListMappingsBySupplier lista los fabricantes que cubre un proveedor.
func (r *SupplierRepo) ListMappingsBySupplier(supplierID int64) ([]*entity.SupplierManufacturer, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM supplier_manufacturers sm
		JOIN suppliers s ON s.id = sm.supplier_id
		JOIN manufacturers m ON m.id = sm.manufacturer_id
		WHERE sm.supplier_id = $1
		ORDER BY m.name`
	return r.queryMappings(query, supplierID)
}

// ListMappingsByManufacturers devuelve los pares (fabricante, proveedor) para
// los fabricantes dados. Es el insumo de la generación de RFQs.
func (r *SupplierRepo) ListMappingsByManufacturers(manufacturerIDs []int64) ([]*entity.SupplierManufacturer, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM supplier_manufacturers sm
		JOIN suppliers s ON s.id = sm.supplier_id
		JOIN manufacturers m ON m.id = sm.manufacturer_id
		WHERE sm.manufacturer_id = ANY($1)
		ORDER BY m.name, s.name`
	return r.queryMappings(query, manufacturerIDs)
}

func (r *SupplierRepo) queryMappings(query string, args ...any) ([]*entity.SupplierManufacturer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier mappings: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierManufacturer
	for rows.Next() {
		var sm entity.SupplierManufacturer
		if err := rows.Scan(&sm.ID, &sm.SupplierID, &sm.ManufacturerID, &sm.SupplierName, &sm.ManufacturerName); err != nil {
			return nil, fmt.Errorf("scan supplier mapping: %w", err)
		}
		list = append(list, &sm)
	}
	return list, rows.Err()
}
