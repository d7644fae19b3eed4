package usecase

import (
	"strings"
	"time"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// ManufacturerUseCase casos de uso CRUD de fabricantes.
type ManufacturerUseCase struct {
	repo repository.ManufacturerRepository
}

// NewManufacturerUseCase construye el caso de uso.
func NewManufacturerUseCase(repo repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo}
}

// Create crea un fabricante; nombre duplicado devuelve ErrDuplicate.
func (uc *ManufacturerUseCase) Create(in dto.ManufacturerRequest) (*dto.ManufacturerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.Manufacturer{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return toManufacturerResponse(m), nil
}

// GetByID obtiene un fabricante.
func (uc *ManufacturerUseCase) GetByID(id int64) (*dto.ManufacturerResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toManufacturerResponse(m), nil
}

// Update renombra un fabricante.
func (uc *ManufacturerUseCase) Update(id int64, in dto.ManufacturerRequest) (*dto.ManufacturerResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	m.Name = name
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return toManufacturerResponse(m), nil
}

// List lista fabricantes.
func (uc *ManufacturerUseCase) List(limit, offset int) ([]dto.ManufacturerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManufacturerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManufacturerResponse(m))
	}
	return items, nil
}

// Delete elimina un fabricante; ErrInUse si tiene partes.
func (uc *ManufacturerUseCase) Delete(id int64) error {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toManufacturerResponse(m *entity.Manufacturer) *dto.ManufacturerResponse {
	return &dto.ManufacturerResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}
