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

var _ repository.RFQRepository = (*RFQRepo)(nil)

// RFQRepo implementación de RFQRepository sobre PostgreSQL (usable con pool
// o tx).
type RFQRepo struct {
	q Querier
}

// NewRFQRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRFQRepository(q Querier) *RFQRepo {
	return &RFQRepo{q: q}
}

// ── Cabecera ──────────────────────────────────────────────────────────────

const rfqColumns = `r.id, r.bom_id, r.supplier_id, r.user_id, r.status, r.notes, r.due_date, r.sent_date, r.created_at, r.updated_at,
	s.name, s.contact_email`

const rfqJoins = `
	FROM rfqs r
	JOIN suppliers s ON s.id = r.supplier_id`

func scanRFQ(row pgx.Row) (*entity.RFQ, error) {
	var q entity.RFQ
	err := row.Scan(&q.ID, &q.BOMID, &q.SupplierID, &q.UserID, &q.Status, &q.Notes,
		&q.DueDate, &q.SentDate, &q.CreatedAt, &q.UpdatedAt,
		&q.SupplierName, &q.SupplierEmail)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create persiste la cabecera de un RFQ.
func (r *RFQRepo) Create(rfq *entity.RFQ) error {
	query := `
		INSERT INTO rfqs (bom_id, supplier_id, user_id, status, notes, due_date, sent_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		rfq.BOMID, rfq.SupplierID, rfq.UserID, rfq.Status, rfq.Notes,
		rfq.DueDate, rfq.SentDate, rfq.CreatedAt, rfq.UpdatedAt,
	).Scan(&rfq.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert rfq: %w", err)
	}
	return nil
}

// GetByID obtiene un RFQ con los datos de contacto del proveedor.
func (r *RFQRepo) GetByID(id int64) (*entity.RFQ, error) {
	q, err := scanRFQ(r.q.QueryRow(context.Background(),
		`SELECT `+rfqColumns+rfqJoins+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rfq: %w", err)
	}
	return q, nil
}

// GetByBOMAndSupplier obtiene el RFQ en borrador de un par (BOM, proveedor),
// si existe. Es la clave de la idempotencia de la generación.
func (r *RFQRepo) GetByBOMAndSupplier(bomID, supplierID int64) (*entity.RFQ, error) {
	q, err := scanRFQ(r.q.QueryRow(context.Background(),
		`SELECT `+rfqColumns+rfqJoins+` WHERE r.bom_id = $1 AND r.supplier_id = $2 AND r.status = $3`,
		bomID, supplierID, entity.RFQStatusDraft))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rfq by bom and supplier: %w", err)
	}
	return q, nil
}

// List lista RFQs aplicando los filtros presentes, más recientes primero.
func (r *RFQRepo) List(filter repository.RFQFilter) ([]*entity.RFQ, error) {
	query := `SELECT ` + rfqColumns + rfqJoins + ` WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if filter.Status != "" {
		query += ` AND r.status = ` + next(filter.Status)
	}
	if filter.SupplierID != 0 {
		query += ` AND r.supplier_id = ` + next(filter.SupplierID)
	}
	if filter.BOMID != 0 {
		query += ` AND r.bom_id = ` + next(filter.BOMID)
	}
	query += ` ORDER BY r.created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + next(filter.Limit) + ` OFFSET ` + next(filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rfqs: %w", err)
	}
	defer rows.Close()
	var list []*entity.RFQ
	for rows.Next() {
		q, err := scanRFQ(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rfq: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Update actualiza estado, notas y fechas de un RFQ.
func (r *RFQRepo) Update(rfq *entity.RFQ) error {
	query := `
		UPDATE rfqs SET status = $2, notes = $3, due_date = $4, sent_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rfq.ID, rfq.Status, rfq.Notes, rfq.DueDate, rfq.SentDate, rfq.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rfq: %w", err)
	}
	return nil
}

// Delete elimina un RFQ; sus items caen en cascada.
func (r *RFQRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM rfqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rfq: %w", err)
	}
	return nil
}

// HasByBOM indica si el BOM tiene al menos un RFQ. Alimenta el recompute de
// estado.
func (r *RFQRepo) HasByBOM(bomID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM rfqs WHERE bom_id = $1)`, bomID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has rfqs: %w", err)
	}
	return exists, nil
}

// ── Items ─────────────────────────────────────────────────────────────────

const rfqItemColumns = `i.id, i.rfq_id, i.bom_item_id, i.quantity, i.uom, i.price, i.eta, i.notes, i.created_at, i.updated_at,
	p.part_number, p.description, m.name`

const rfqItemJoins = `
	FROM rfq_items i
	JOIN bom_items bi ON bi.id = i.bom_item_id
	JOIN parts p ON p.id = bi.part_id
	JOIN manufacturers m ON m.id = p.manufacturer_id`

func scanRFQItem(row pgx.Row) (*entity.RFQItem, error) {
	var it entity.RFQItem
	err := row.Scan(&it.ID, &it.RFQID, &it.BOMItemID, &it.Quantity, &it.UOM, &it.Price,
		&it.ETA, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
		&it.PartNumber, &it.PartDescription, &it.ManufacturerName)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateItem inserta un item; el par (rfq, bom_item) es único.
func (r *RFQRepo) CreateItem(item *entity.RFQItem) error {
	query := `
		INSERT INTO rfq_items (rfq_id, bom_item_id, quantity, uom, price, eta, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.RFQID, item.BOMItemID, item.Quantity, item.UOM, item.Price,
		item.ETA, item.Notes, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert rfq item: %w", err)
	}
	return nil
}

// UpdateItem actualiza los campos cotizables de un item.
func (r *RFQRepo) UpdateItem(item *entity.RFQItem) error {
	query := `
		UPDATE rfq_items SET quantity = $2, uom = $3, price = $4, eta = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.UOM, item.Price, item.ETA, item.Notes, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rfq item: %w", err)
	}
	return nil
}

// DeleteItem elimina un item de RFQ.
func (r *RFQRepo) DeleteItem(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM rfq_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rfq item: %w", err)
	}
	return nil
}

// GetItemByID obtiene un item con sus datos de catálogo.
func (r *RFQRepo) GetItemByID(id int64) (*entity.RFQItem, error) {
	it, err := scanRFQItem(r.q.QueryRow(context.Background(),
		`SELECT `+rfqItemColumns+rfqItemJoins+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rfq item: %w", err)
	}
	return it, nil
}

// ItemExists indica si el RFQ ya contiene la línea del BOM. Mantiene la
// generación idempotente.
func (r *RFQRepo) ItemExists(rfqID, bomItemID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM rfq_items WHERE rfq_id = $1 AND bom_item_id = $2)`,
		rfqID, bomItemID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("rfq item exists: %w", err)
	}
	return exists, nil
}

// ListItems lista los items de un RFQ ordenados por número de parte.
func (r *RFQRepo) ListItems(rfqID int64) ([]*entity.RFQItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+rfqItemColumns+rfqItemJoins+` WHERE i.rfq_id = $1 ORDER BY p.part_number`, rfqID)
	if err != nil {
		return nil, fmt.Errorf("list rfq items: %w", err)
	}
	defer rows.Close()
	var list []*entity.RFQItem
	for rows.Next() {
		it, err := scanRFQItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rfq item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
