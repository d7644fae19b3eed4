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

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo implementación de ManufacturerRepository sobre PostgreSQL (usable con pool o tx).
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

// Create persiste un fabricante; el nombre es único.
func (r *ManufacturerRepo) Create(m *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (name, created_at, updated_at)
		VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRow(context.Background(), query, m.Name, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

// GetByID obtiene un fabricante por ID.
func (r *ManufacturerRepo) GetByID(id int64) (*entity.Manufacturer, error) {
	var m entity.Manufacturer
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at, updated_at FROM manufacturers WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return &m, nil
}

// List lista fabricantes con paginación.
func (r *ManufacturerRepo) List(limit, offset int) ([]*entity.Manufacturer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, created_at, updated_at FROM manufacturers ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manufacturer
	for rows.Next() {
		var m entity.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza un fabricante.
func (r *ManufacturerRepo) Update(m *entity.Manufacturer) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE manufacturers SET name = $2, updated_at = $3 WHERE id = $1`,
		m.ID, m.Name, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update manufacturer: %w", err)
	}
	return nil
}

// Delete elimina un fabricante; RESTRICT si tiene partes asociadas.
func (r *ManufacturerRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete manufacturer: %w", err)
	}
	return nil
}
