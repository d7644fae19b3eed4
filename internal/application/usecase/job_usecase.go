package usecase

import (
	"strings"
	"time"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// JobUseCase casos de uso CRUD de trabajos.
type JobUseCase struct {
	repo      repository.JobRepository
	customers repository.CustomerRepository
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(repo repository.JobRepository, customers repository.CustomerRepository) *JobUseCase {
	return &JobUseCase{repo: repo, customers: customers}
}

// Create crea un trabajo para el usuario autenticado; número duplicado
// devuelve ErrDuplicate.
func (uc *JobUseCase) Create(userID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if strings.TrimSpace(in.Number) == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	j := &entity.Job{
		Number:      in.Number,
		Description: in.Description,
		CustomerID:  in.CustomerID,
		ContactName: in.ContactName,
		Status:      entity.JobStatusPending,
		UserID:      userID,
		StartDate:   start,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(j); err != nil {
		return nil, err
	}
	j.CustomerName = customer.Name
	return toJobResponse(j), nil
}

// GetByID obtiene un trabajo.
func (uc *JobUseCase) GetByID(id int64) (*dto.JobResponse, error) {
	j, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, nil
	}
	return toJobResponse(j), nil
}

// Update actualiza un trabajo; el estado solo admite los valores conocidos.
func (uc *JobUseCase) Update(id int64, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	j, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, nil
	}
	if in.Number != nil {
		if strings.TrimSpace(*in.Number) == "" {
			return nil, domain.ErrInvalidInput
		}
		j.Number = *in.Number
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.CustomerID != nil {
		j.CustomerID = *in.CustomerID
	}
	if in.ContactName != nil {
		j.ContactName = *in.ContactName
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.JobStatusPending, entity.JobStatusCompleted, entity.JobStatusCanceled:
			j.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.StartDate != nil {
		j.StartDate = *in.StartDate
	}
	j.UpdatedAt = time.Now()
	if err := uc.repo.Update(j); err != nil {
		return nil, err
	}
	return toJobResponse(j), nil
}

// List lista trabajos.
func (uc *JobUseCase) List(limit, offset int) ([]dto.JobResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *toJobResponse(j))
	}
	return items, nil
}

// Delete elimina un trabajo; ErrInUse si tiene BOMs.
func (uc *JobUseCase) Delete(id int64) error {
	j, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if j == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:           j.ID,
		Number:       j.Number,
		Description:  j.Description,
		CustomerID:   j.CustomerID,
		CustomerName: j.CustomerName,
		ContactName:  j.ContactName,
		Status:       j.Status,
		UserID:       j.UserID,
		StartDate:    j.StartDate,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
