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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para partes. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `p.id, p.part_number, p.description, p.manufacturer_id, p.unit, p.labour, p.created_at, p.updated_at, m.name`

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(&p.ID, &p.PartNumber, &p.Description, &p.ManufacturerID,
		&p.Unit, &p.Labour, &p.CreatedAt, &p.UpdatedAt, &p.ManufacturerName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una nueva parte; el part_number llega ya normalizado.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (part_number, description, manufacturer_id, unit, labour, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		part.PartNumber, part.Description, part.ManufacturerID, part.Unit,
		part.Labour, part.CreatedAt, part.UpdatedAt,
	).Scan(&part.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID.
func (r *PartRepo) GetByID(id int64) (*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts p JOIN manufacturers m ON m.id = p.manufacturer_id
		WHERE p.id = $1`
	p, err := scanPart(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetByPartNumber busca por número de parte normalizado (match exacto).
func (r *PartRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts p JOIN manufacturers m ON m.id = p.manufacturer_id
		WHERE p.part_number = $1`
	p, err := scanPart(r.q.QueryRow(context.Background(), query, partNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by number: %w", err)
	}
	return p, nil
}

// List lista partes con paginación, ordenadas por número de parte.
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts p JOIN manufacturers m ON m.id = p.manufacturer_id
		ORDER BY p.part_number LIMIT $1 OFFSET $2`
	return r.queryParts(query, limit, offset)
}

// Search busca por número de parte o descripción (para autocompletado).
func (r *PartRepo) Search(term string, limit int) ([]*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts p JOIN manufacturers m ON m.id = p.manufacturer_id
		WHERE p.part_number ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%'
		ORDER BY p.part_number LIMIT $2`
	return r.queryParts(query, term, limit)
}

func (r *PartRepo) queryParts(query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.PartNumber, &p.Description, &p.ManufacturerID,
			&p.Unit, &p.Labour, &p.CreatedAt, &p.UpdatedAt, &p.ManufacturerName); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza una parte existente.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts SET part_number = $2, description = $3, manufacturer_id = $4, unit = $5, labour = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.PartNumber, part.Description, part.ManufacturerID,
		part.Unit, part.Labour, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// Delete elimina una parte. La FK de bom_items es RESTRICT: si está en uso
// se devuelve domain.ErrInUse.
func (r *PartRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}
