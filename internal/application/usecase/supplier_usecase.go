package usecase

import (
	"strings"
	"time"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD de proveedores y de su mapeo con
// fabricantes.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	mfrs repository.ManufacturerRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, mfrs repository.ManufacturerRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, mfrs: mfrs}
}

// Create crea un proveedor. El correo de contacto es obligatorio porque es
// el destino de los RFQ.
func (uc *SupplierUseCase) Create(in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SupplierCode) == "" ||
		strings.TrimSpace(in.ContactEmail) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		Name:         in.Name,
		SupplierCode: in.SupplierCode,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Address:      in.Address,
		City:         in.City,
		Province:     in.Province,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(id int64) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSupplierResponse(s), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SupplierCode) == "" ||
		strings.TrimSpace(in.ContactEmail) == "" {
		return nil, domain.ErrInvalidInput
	}
	s.Name = in.Name
	s.SupplierCode = in.SupplierCode
	s.ContactName = in.ContactName
	s.ContactPhone = in.ContactPhone
	s.ContactEmail = in.ContactEmail
	s.Address = in.Address
	s.City = in.City
	s.Province = in.Province
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores.
func (uc *SupplierUseCase) List(limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Delete elimina un proveedor; ErrInUse si tiene RFQs.
func (uc *SupplierUseCase) Delete(id int64) error {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// AttachManufacturer registra que el proveedor suministra el fabricante.
func (uc *SupplierUseCase) AttachManufacturer(supplierID, manufacturerID int64) error {
	s, err := uc.repo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	m, err := uc.mfrs.GetByID(manufacturerID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.AddManufacturer(supplierID, manufacturerID)
}

// DetachManufacturer elimina el mapeo.
func (uc *SupplierUseCase) DetachManufacturer(supplierID, manufacturerID int64) error {
	return uc.repo.RemoveManufacturer(supplierID, manufacturerID)
}

// ListMappings lista los fabricantes cubiertos por un proveedor.
func (uc *SupplierUseCase) ListMappings(supplierID int64) ([]dto.SupplierMappingResponse, error) {
	list, err := uc.repo.ListMappingsBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierMappingResponse, 0, len(list))
	for _, sm := range list {
		items = append(items, dto.SupplierMappingResponse{
			SupplierID:       sm.SupplierID,
			SupplierName:     sm.SupplierName,
			ManufacturerID:   sm.ManufacturerID,
			ManufacturerName: sm.ManufacturerName,
		})
	}
	return items, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		SupplierCode: s.SupplierCode,
		ContactName:  s.ContactName,
		ContactPhone: s.ContactPhone,
		ContactEmail: s.ContactEmail,
		Address:      s.Address,
		City:         s.City,
		Province:     s.Province,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
