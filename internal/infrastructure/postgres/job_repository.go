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

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository sobre PostgreSQL.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `j.id, j.number, j.description, j.customer_id, j.contact_name, j.status, j.user_id, j.start_date, j.created_at, j.updated_at, c.name`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(&j.ID, &j.Number, &j.Description, &j.CustomerID, &j.ContactName,
		&j.Status, &j.UserID, &j.StartDate, &j.CreatedAt, &j.UpdatedAt, &j.CustomerName)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create persiste un trabajo; el número es único.
func (r *JobRepo) Create(j *entity.Job) error {
	query := `
		INSERT INTO jobs (number, description, customer_id, contact_name, status, user_id, start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		j.Number, j.Description, j.CustomerID, j.ContactName, j.Status,
		j.UserID, j.StartDate, j.CreatedAt, j.UpdatedAt,
	).Scan(&j.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID con el nombre del cliente.
func (r *JobRepo) GetByID(id int64) (*entity.Job, error) {
	j, err := scanJob(r.q.QueryRow(context.Background(),
		`SELECT `+jobColumns+` FROM jobs j JOIN customers c ON c.id = j.customer_id WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// List lista trabajos con paginación, más recientes primero.
func (r *JobRepo) List(limit, offset int) ([]*entity.Job, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+jobColumns+` FROM jobs j JOIN customers c ON c.id = j.customer_id ORDER BY j.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Update actualiza un trabajo.
func (r *JobRepo) Update(j *entity.Job) error {
	query := `
		UPDATE jobs SET number = $2, description = $3, customer_id = $4, contact_name = $5,
			status = $6, start_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.Number, j.Description, j.CustomerID, j.ContactName, j.Status, j.StartDate, j.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete elimina un trabajo; RESTRICT si tiene BOMs asociados.
func (r *JobRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
