package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// BOMUseCase casos de uso de cabecera de BOM: alta, consulta, edición y
// borrado. Las mutaciones de líneas viven en el paquete bomitems y en el
// pipeline de importación.
type BOMUseCase struct {
	repo      repository.BOMRepository
	customers repository.CustomerRepository
	jobs      repository.JobRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(repo repository.BOMRepository, customers repository.CustomerRepository, jobs repository.JobRepository) *BOMUseCase {
	return &BOMUseCase{repo: repo, customers: customers, jobs: jobs}
}

// Create crea la cabecera en estado Draft, versión 1.0.
func (uc *BOMUseCase) Create(userID string, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.JobID != nil {
		job, err := uc.jobs.GetByID(*in.JobID)
		if err != nil {
			return nil, err
		}
		if job == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	bom := &entity.BOM{
		CustomerID:  in.CustomerID,
		JobID:       in.JobID,
		Description: in.Description,
		Notes:       in.Notes,
		UserID:      userID,
		Status:      entity.BOMStatusDraft,
		Version:     decimal.NewFromFloat(1.0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(bom); err != nil {
		return nil, err
	}
	return ToBOMResponse(bom), nil
}

// GetByID obtiene la cabecera.
func (uc *BOMUseCase) GetByID(id int64) (*dto.BOMResponse, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	return ToBOMResponse(bom), nil
}

// GetDetail obtiene cabecera más líneas, drafts y conteos derivados.
func (uc *BOMUseCase) GetDetail(id int64) (*dto.BOMDetailResponse, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	items, err := uc.repo.ListItems(id)
	if err != nil {
		return nil, err
	}
	drafts, err := uc.repo.ListDrafts(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.BOMDetailResponse{
		BOMResponse: *ToBOMResponse(bom),
		ItemCount:   len(items),
		DraftCount:  len(drafts),
		Items:       make([]dto.BOMItemResponse, 0, len(items)),
		Drafts:      make([]dto.DraftItemResponse, 0, len(drafts)),
	}
	for _, it := range items {
		detail.Items = append(detail.Items, ToBOMItemResponse(it))
	}
	for _, d := range drafts {
		detail.Drafts = append(detail.Drafts, dto.DraftItemResponse{
			ID: d.ID, BOMID: d.BOMID, PartNumber: d.PartNumber, Quantity: d.Quantity,
		})
	}
	return detail, nil
}

// Update actualiza la cabecera. El estado nunca se toca aquí: es una
// función derivada de los conjuntos del BOM.
func (uc *BOMUseCase) Update(id int64, in dto.UpdateBOMRequest) (*dto.BOMResponse, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		bom.CustomerID = *in.CustomerID
	}
	if in.JobID != nil {
		job, err := uc.jobs.GetByID(*in.JobID)
		if err != nil {
			return nil, err
		}
		if job == nil {
			return nil, domain.ErrNotFound
		}
		bom.JobID = in.JobID
	}
	if in.Description != nil {
		bom.Description = *in.Description
	}
	if in.Notes != nil {
		bom.Notes = *in.Notes
	}
	bom.UpdatedAt = time.Now()
	if err := uc.repo.Update(bom); err != nil {
		return nil, err
	}
	return ToBOMResponse(bom), nil
}

// List lista BOMs; status vacío lista todos.
func (uc *BOMUseCase) List(status string, limit, offset int) ([]dto.BOMResponse, error) {
	var (
		list []*entity.BOM
		err  error
	)
	if status != "" {
		list, err = uc.repo.ListByStatus(status, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *ToBOMResponse(b))
	}
	return items, nil
}

// Delete elimina un BOM con sus líneas y drafts; ErrInUse si tiene RFQs.
func (uc *BOMUseCase) Delete(id int64) error {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bom == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ToBOMResponse convierte la cabecera a DTO; la versión sale con un
// decimal fijo ("1.0").
func ToBOMResponse(b *entity.BOM) *dto.BOMResponse {
	return &dto.BOMResponse{
		ID:          b.ID,
		Number:      b.BOMNumber(),
		CustomerID:  b.CustomerID,
		JobID:       b.JobID,
		Description: b.Description,
		Notes:       b.Notes,
		UserID:      b.UserID,
		Status:      b.Status,
		Version:     b.Version.StringFixed(1),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBOMItemResponse convierte una línea a DTO.
func ToBOMItemResponse(it *entity.BOMItem) dto.BOMItemResponse {
	return dto.BOMItemResponse{
		ID:               it.ID,
		BOMID:            it.BOMID,
		PartID:           it.PartID,
		PartNumber:       it.PartNumber,
		PartDescription:  it.PartDescription,
		ManufacturerID:   it.ManufacturerID,
		ManufacturerName: it.ManufacturerName,
		Quantity:         it.Quantity,
		Notes:            it.Notes,
	}
}

// ExportData entrega las entidades crudas para los generadores de archivos
// (CSV, xlsx); los handlers de exportación no trabajan sobre DTOs.
func (uc *BOMUseCase) ExportData(id int64) (*entity.BOM, []*entity.BOMItem, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if bom == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.repo.ListItems(id)
	if err != nil {
		return nil, nil, err
	}
	return bom, items, nil
}
