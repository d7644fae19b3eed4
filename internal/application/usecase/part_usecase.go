package usecase

import (
	"time"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// PartUseCase casos de uso CRUD del catálogo de partes. El número de parte
// se normaliza siempre antes de tocar el repositorio.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

func validUnit(u string) bool {
	switch u {
	case entity.UnitEach, entity.UnitMeter, entity.UnitHundred, entity.UnitFoot:
		return true
	}
	return false
}

// Create crea una parte nueva. Número duplicado (tras normalizar) devuelve
// ErrDuplicate.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*dto.PartResponse, error) {
	number := entity.NormalizePartNumber(in.PartNumber)
	if number == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = entity.UnitEach
	}
	if !validUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByPartNumber(number)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		PartNumber:     number,
		Description:    in.Description,
		ManufacturerID: in.ManufacturerID,
		Unit:           in.Unit,
		Labour:         in.Labour,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene una parte por ID.
func (uc *PartUseCase) GetByID(id int64) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	return toPartResponse(part), nil
}

// Update actualiza una parte; si cambia el número se vuelve a normalizar.
func (uc *PartUseCase) Update(id int64, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	if in.PartNumber != nil {
		number := entity.NormalizePartNumber(*in.PartNumber)
		if number == "" {
			return nil, domain.ErrInvalidInput
		}
		part.PartNumber = number
	}
	if in.Description != nil {
		part.Description = *in.Description
	}
	if in.ManufacturerID != nil {
		part.ManufacturerID = *in.ManufacturerID
	}
	if in.Unit != nil {
		if !validUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		part.Unit = *in.Unit
	}
	if in.Labour != nil {
		part.Labour = *in.Labour
	}
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// List lista partes con paginación.
func (uc *PartUseCase) List(limit, offset int) (*dto.PartListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search busca partes por número o descripción.
func (uc *PartUseCase) Search(term string, limit int) ([]dto.PartResponse, error) {
	list, err := uc.repo.Search(term, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return items, nil
}

// Delete elimina una parte; ErrInUse si algún BOM la referencia.
func (uc *PartUseCase) Delete(id int64) error {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:               p.ID,
		PartNumber:       p.PartNumber,
		Description:      p.Description,
		ManufacturerID:   p.ManufacturerID,
		ManufacturerName: p.ManufacturerName,
		Unit:             p.Unit,
		Labour:           p.Labour,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
