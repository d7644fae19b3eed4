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

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL (usable con pool
// o tx). Cabecera, líneas resueltas y draft items viven aquí porque forman
// un solo agregado.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ── Cabecera ──────────────────────────────────────────────────────────────

const bomColumns = `id, customer_id, job_id, description, notes, user_id, status, version, created_at, updated_at`

func scanBOM(row pgx.Row) (*entity.BOM, error) {
	var b entity.BOM
	err := row.Scan(&b.ID, &b.CustomerID, &b.JobID, &b.Description, &b.Notes,
		&b.UserID, &b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste la cabecera de un BOM.
func (r *BOMRepo) Create(b *entity.BOM) error {
	query := `
		INSERT INTO boms (customer_id, job_id, description, notes, user_id, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		b.CustomerID, b.JobID, b.Description, b.Notes, b.UserID,
		b.Status, b.Version, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert bom: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un BOM.
func (r *BOMRepo) GetByID(id int64) (*entity.BOM, error) {
	b, err := scanBOM(r.q.QueryRow(context.Background(),
		`SELECT `+bomColumns+` FROM boms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	return b, nil
}

// List lista BOMs, más recientes primero.
func (r *BOMRepo) List(limit, offset int) ([]*entity.BOM, error) {
	return r.queryBOMs(
		`SELECT `+bomColumns+` FROM boms ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByStatus lista BOMs filtrados por estado.
func (r *BOMRepo) ListByStatus(status string, limit, offset int) ([]*entity.BOM, error) {
	return r.queryBOMs(
		`SELECT `+bomColumns+` FROM boms WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
}

func (r *BOMRepo) queryBOMs(query string, args ...any) ([]*entity.BOM, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOM
	for rows.Next() {
		b, err := scanBOM(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update actualiza cabecera, estado y versión.
func (r *BOMRepo) Update(b *entity.BOM) error {
	query := `
		UPDATE boms SET customer_id = $2, job_id = $3, description = $4, notes = $5,
			status = $6, version = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.CustomerID, b.JobID, b.Description, b.Notes, b.Status, b.Version, b.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update bom: %w", err)
	}
	return nil
}

// Delete elimina un BOM. Líneas y drafts caen en cascada; los RFQs lo
// bloquean (RESTRICT en el esquema).
func (r *BOMRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM boms WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete bom: %w", err)
	}
	return nil
}

// ── Líneas resueltas ──────────────────────────────────────────────────────

const bomItemColumns = `i.id, i.bom_id, i.part_id, i.quantity, i.notes, i.created_at, i.updated_at,
	p.part_number, p.description, p.manufacturer_id, m.name`

const bomItemJoins = `
	FROM bom_items i
	JOIN parts p ON p.id = i.part_id
	JOIN manufacturers m ON m.id = p.manufacturer_id`

func scanBOMItem(row pgx.Row) (*entity.BOMItem, error) {
	var it entity.BOMItem
	err := row.Scan(&it.ID, &it.BOMID, &it.PartID, &it.Quantity, &it.Notes,
		&it.CreatedAt, &it.UpdatedAt,
		&it.PartNumber, &it.PartDescription, &it.ManufacturerID, &it.ManufacturerName)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateItem inserta una línea; el par (bom, part) es único.
func (r *BOMRepo) CreateItem(item *entity.BOMItem) error {
	query := `
		INSERT INTO bom_items (bom_id, part_id, quantity, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.BOMID, item.PartID, item.Quantity, item.Notes, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert bom item: %w", err)
	}
	return nil
}

// UpdateItem actualiza cantidad y notas de una línea.
func (r *BOMRepo) UpdateItem(item *entity.BOMItem) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bom_items SET quantity = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		item.ID, item.Quantity, item.Notes, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update bom item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea; RESTRICT si está referenciada por RFQItems.
func (r *BOMRepo) DeleteItem(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bom_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete bom item: %w", err)
	}
	return nil
}

// GetItemByID obtiene una línea con sus datos de catálogo.
func (r *BOMRepo) GetItemByID(id int64) (*entity.BOMItem, error) {
	it, err := scanBOMItem(r.q.QueryRow(context.Background(),
		`SELECT `+bomItemColumns+bomItemJoins+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom item: %w", err)
	}
	return it, nil
}

// GetItemByPart obtiene la línea de un BOM para una parte concreta, si existe.
func (r *BOMRepo) GetItemByPart(bomID, partID int64) (*entity.BOMItem, error) {
	it, err := scanBOMItem(r.q.QueryRow(context.Background(),
		`SELECT `+bomItemColumns+bomItemJoins+` WHERE i.bom_id = $1 AND i.part_id = $2`, bomID, partID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom item by part: %w", err)
	}
	return it, nil
}

// ListItems lista las líneas de un BOM ordenadas por número de parte.
func (r *BOMRepo) ListItems(bomID int64) ([]*entity.BOMItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+bomItemColumns+bomItemJoins+` WHERE i.bom_id = $1 ORDER BY p.part_number`, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMItem
	for rows.Next() {
		it, err := scanBOMItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// HasItems indica si el BOM tiene al menos una línea resuelta.
func (r *BOMRepo) HasItems(bomID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM bom_items WHERE bom_id = $1)`, bomID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has bom items: %w", err)
	}
	return exists, nil
}

// ── Draft items ───────────────────────────────────────────────────────────

const draftColumns = `id, bom_id, part_number, quantity, is_resolved, created_at`

func scanDraft(row pgx.Row) (*entity.DraftBOMItem, error) {
	var d entity.DraftBOMItem
	err := row.Scan(&d.ID, &d.BOMID, &d.PartNumber, &d.Quantity, &d.IsResolved, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDraft inserta un draft item; el par (bom, part_number) es único.
func (r *BOMRepo) CreateDraft(d *entity.DraftBOMItem) error {
	query := `
		INSERT INTO draft_bom_items (bom_id, part_number, quantity, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		d.BOMID, d.PartNumber, d.Quantity, d.IsResolved, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert draft item: %w", err)
	}
	return nil
}

// UpdateDraft actualiza cantidad y bandera de resolución de un draft.
func (r *BOMRepo) UpdateDraft(d *entity.DraftBOMItem) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE draft_bom_items SET quantity = $2, is_resolved = $3 WHERE id = $1`,
		d.ID, d.Quantity, d.IsResolved)
	if err != nil {
		return fmt.Errorf("update draft item: %w", err)
	}
	return nil
}

// DeleteDraft elimina un draft item.
func (r *BOMRepo) DeleteDraft(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM draft_bom_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete draft item: %w", err)
	}
	return nil
}

// GetDraftByID obtiene un draft item.
func (r *BOMRepo) GetDraftByID(id int64) (*entity.DraftBOMItem, error) {
	d, err := scanDraft(r.q.QueryRow(context.Background(),
		`SELECT `+draftColumns+` FROM draft_bom_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft item: %w", err)
	}
	return d, nil
}

// GetDraftByPartNumber obtiene el draft de un BOM para un número de parte
// normalizado, si existe.
func (r *BOMRepo) GetDraftByPartNumber(bomID int64, partNumber string) (*entity.DraftBOMItem, error) {
	d, err := scanDraft(r.q.QueryRow(context.Background(),
		`SELECT `+draftColumns+` FROM draft_bom_items WHERE bom_id = $1 AND part_number = $2`,
		bomID, partNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft item by part number: %w", err)
	}
	return d, nil
}

// ListDrafts lista los draft items de un BOM.
func (r *BOMRepo) ListDrafts(bomID int64) ([]*entity.DraftBOMItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+draftColumns+` FROM draft_bom_items WHERE bom_id = $1 ORDER BY part_number`, bomID)
	if err != nil {
		return nil, fmt.Errorf("list draft items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DraftBOMItem
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft item: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// HasDrafts indica si el BOM tiene draft items sin resolver.
func (r *BOMRepo) HasDrafts(bomID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM draft_bom_items WHERE bom_id = $1 AND NOT is_resolved)`, bomID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has draft items: %w", err)
	}
	return exists, nil
}
