package rfq

import (
	"context"
	"fmt"
	"time"

	"github.com/sathler/bomlink/internal/application/bomstate"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// plazo por defecto para cotizar cuando el llamador no fija DueDate.
const defaultDueIn = 24 * time.Hour

// Generate crea (o reutiliza) RFQs en borrador para un BOM listo, uno por
// proveedor asignado. Con asignaciones incompletas y algún fabricante
// cubierto por más de un proveedor devuelve las opciones sin escribir nada;
// el llamador debe repetir la llamada con el mapa completo. La operación es
// idempotente: RFQs en borrador y pares (RFQ, línea) existentes se
// reutilizan y se saltan.
func (uc *UseCase) Generate(ctx context.Context, bomID int64, userID string, in dto.GenerateRFQRequest) (*dto.GenerateRFQResponse, error) {
	bom, err := uc.boms.GetByID(bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if bom.Status != entity.BOMStatusReady {
		return nil, fmt.Errorf("%w: el BOM %s está en estado %s, se requiere Ready", domain.ErrStateViolation, bom.BOMNumber(), bom.Status)
	}
	items, err := uc.boms.ListItems(bomID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el BOM %s no tiene líneas", domain.ErrStateViolation, bom.BOMNumber())
	}

	// Fabricantes distintos de las líneas, en orden de aparición.
	var mfrIDs []int64
	mfrNames := make(map[int64]string)
	for _, it := range items {
		if _, seen := mfrNames[it.ManufacturerID]; !seen {
			mfrIDs = append(mfrIDs, it.ManufacturerID)
			mfrNames[it.ManufacturerID] = it.ManufacturerName
		}
	}

	mappings, err := uc.suppliers.ListMappingsByManufacturers(mfrIDs)
	if err != nil {
		return nil, err
	}
	candidates := make(map[int64][]*entity.SupplierManufacturer)
	for _, sm := range mappings {
		candidates[sm.ManufacturerID] = append(candidates[sm.ManufacturerID], sm)
	}

	// Resolución fabricante→proveedor: la asignación explícita manda; sin
	// ella un único candidato se asigna solo y más de uno pide desambiguar.
	assignment := make(map[int64]int64)
	var pending []dto.ManufacturerOption
	for _, mfrID := range mfrIDs {
		options := candidates[mfrID]
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: el fabricante %s no tiene proveedor asignado", domain.ErrInvalidInput, mfrNames[mfrID])
		}
		if chosen, ok := in.Assignments[mfrID]; ok {
			if !containsSupplier(options, chosen) {
				return nil, fmt.Errorf("%w: el proveedor %d no suministra %s", domain.ErrInvalidInput, chosen, mfrNames[mfrID])
			}
			assignment[mfrID] = chosen
			continue
		}
		if len(options) == 1 {
			assignment[mfrID] = options[0].SupplierID
			continue
		}
		opt, err := toManufacturerOption(uc, mfrID, mfrNames[mfrID], options)
		if err != nil {
			return nil, err
		}
		pending = append(pending, opt)
	}
	if len(pending) > 0 {
		return &dto.GenerateRFQResponse{Options: pending}, nil
	}

	// Agrupar líneas por proveedor asignado, orden de primera aparición.
	var supplierOrder []int64
	bySupplier := make(map[int64][]*entity.BOMItem)
	for _, it := range items {
		supplierID := assignment[it.ManufacturerID]
		if _, seen := bySupplier[supplierID]; !seen {
			supplierOrder = append(supplierOrder, supplierID)
		}
		bySupplier[supplierID] = append(bySupplier[supplierID], it)
	}

	var created []dto.RFQResponse
	err = uc.tx.RunRFQ(ctx, func(bomRepo repository.BOMRepository, rfqRepo repository.RFQRepository, supplierRepo repository.SupplierRepository) error {
		now := time.Now()
		for _, supplierID := range supplierOrder {
			r, err := rfqRepo.GetByBOMAndSupplier(bomID, supplierID)
			if err != nil {
				return err
			}
			if r == nil {
				r = &entity.RFQ{
					BOMID:      bomID,
					SupplierID: supplierID,
					UserID:     userID,
					Status:     entity.RFQStatusDraft,
					DueDate:    now.Add(defaultDueIn),
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if err := rfqRepo.Create(r); err != nil {
					return err
				}
			}
			for _, it := range bySupplier[supplierID] {
				exists, err := rfqRepo.ItemExists(r.ID, it.ID)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				item := &entity.RFQItem{
					RFQID:     r.ID,
					BOMItemID: it.ID,
					Quantity:  it.Quantity,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := rfqRepo.CreateItem(item); err != nil {
					return err
				}
			}
			// Releer para traer nombre y correo del proveedor por join.
			r, err = rfqRepo.GetByID(r.ID)
			if err != nil {
				return err
			}
			created = append(created, toRFQResponse(r))
		}
		// La creación de RFQs no es un cambio de contenido de líneas: el
		// estado pasa a Locked pero la versión no sube.
		return bomstate.Refresh(bomRepo, rfqRepo, bom, false)
	})
	if err != nil {
		return nil, err
	}
	return &dto.GenerateRFQResponse{RFQs: created}, nil
}

func containsSupplier(options []*entity.SupplierManufacturer, supplierID int64) bool {
	for _, sm := range options {
		if sm.SupplierID == supplierID {
			return true
		}
	}
	return false
}

func toManufacturerOption(uc *UseCase, mfrID int64, name string, options []*entity.SupplierManufacturer) (dto.ManufacturerOption, error) {
	out := dto.ManufacturerOption{ManufacturerID: mfrID, ManufacturerName: name}
	for _, sm := range options {
		s := dto.SupplierResponse{ID: sm.SupplierID, Name: sm.SupplierName}
		full, err := uc.suppliers.GetByID(sm.SupplierID)
		if err != nil {
			return dto.ManufacturerOption{}, fmt.Errorf("consultando proveedor %d: %w", sm.SupplierID, err)
		}
		if full != nil {
			s.SupplierCode = full.SupplierCode
			s.ContactEmail = full.ContactEmail
		}
		out.Suppliers = append(out.Suppliers, s)
	}
	return out, nil
}
