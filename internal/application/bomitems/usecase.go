// Package bomitems cubre las mutaciones manuales de líneas de BOM: alta,
// edición y borrado de líneas, y la revisión de draft items. Cada operación
// corre en una transacción y cierra con el recálculo de estado del BOM.
package bomitems

import (
	"context"
	"fmt"
	"time"

	"github.com/sathler/bomlink/internal/application/bomstate"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/usecase"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// TxRunner puerto transaccional del flujo: entrega repos atados a una
// misma transacción y confirma o revierte según el error del callback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bomRepo repository.BOMRepository,
		partRepo repository.PartRepository,
		rfqRepo repository.RFQRepository,
	) error) error
}

// UseCase mutaciones de líneas y drafts de un BOM.
type UseCase struct {
	tx TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// loadEditableBOM trae el BOM y rechaza la mutación si está bloqueado.
func loadEditableBOM(bomRepo repository.BOMRepository, bomID int64) (*entity.BOM, error) {
	bom, err := bomRepo.GetByID(bomID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if bom.Status == entity.BOMStatusLocked {
		return nil, fmt.Errorf("%w: el BOM %s está bloqueado por RFQs", domain.ErrStateViolation, bom.BOMNumber())
	}
	return bom, nil
}

// AddItem agrega una línea. Una parte ya presente en el BOM devuelve
// ErrDuplicate (el llamador lo reporta como error de campo).
func (uc *UseCase) AddItem(ctx context.Context, bomID int64, in dto.CreateBOMItemRequest) (*dto.BOMItemResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.BOMItemResponse
	err := uc.tx.Run(ctx, func(bomRepo repository.BOMRepository, partRepo repository.PartRepository, rfqRepo repository.RFQRepository) error {
		bom, err := loadEditableBOM(bomRepo, bomID)
		if err != nil {
			return err
		}
		part, err := partRepo.GetByID(in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		existing, err := bomRepo.GetItemByPart(bomID, in.PartID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		now := time.Now()
		item := &entity.BOMItem{
			BOMID:     bomID,
			PartID:    in.PartID,
			Quantity:  in.Quantity,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := bomRepo.CreateItem(item); err != nil {
			return err
		}
		if err := bomstate.Refresh(bomRepo, rfqRepo, bom, true); err != nil {
			return err
		}
		created, err := bomRepo.GetItemByID(item.ID)
		if err != nil {
			return err
		}
		resp := usecase.ToBOMItemResponse(created)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem cambia cantidad o notas de una línea.
func (uc *UseCase) UpdateItem(ctx context.Context, itemID int64, in dto.UpdateBOMItemRequest) (*dto.BOMItemResponse, error) {
	var out *dto.BOMItemResponse
	err := uc.tx.Run(ctx, func(bomRepo repository.BOMRepository, partRepo repository.PartRepository, rfqRepo repository.RFQRepository) error {
		item, err := bomRepo.GetItemByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		bom, err := loadEditableBOM(bomRepo, item.BOMID)
		if err != nil {
			return err
		}
		if in.Quantity != nil {
			if *in.Quantity < 1 {
				return domain.ErrInvalidInput
			}
			item.Quantity = *in.Quantity
		}
		if in.Notes != nil {
			item.Notes = *in.Notes
		}
		item.UpdatedAt = time.Now()
		if err := bomRepo.UpdateItem(item); err != nil {
			return err
		}
		if err := bomstate.Refresh(bomRepo, rfqRepo, bom, true); err != nil {
			return err
		}
		resp := usecase.ToBOMItemResponse(item)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteItem elimina una línea. Un BOM bloqueado la rechaza; una línea
// referenciada por RFQItems devuelve ErrInUse.
func (uc *UseCase) DeleteItem(ctx context.Context, itemID int64) error {
	return uc.tx.Run(ctx, func(bomRepo repository.BOMRepository, partRepo repository.PartRepository, rfqRepo repository.RFQRepository) error {
		item, err := bomRepo.GetItemByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		bom, err := loadEditableBOM(bomRepo, item.BOMID)
		if err != nil {
			return err
		}
		if err := bomRepo.DeleteItem(itemID); err != nil {
			return err
		}
		return bomstate.Refresh(bomRepo, rfqRepo, bom, true)
	})
}

// ConfirmDraft promueve un draft a línea resuelta: la parte ya debe existir
// en el catálogo. Si el BOM ya tiene una línea para esa parte, las
// cantidades se suman. El draft desaparece en ambos casos.
func (uc *UseCase) ConfirmDraft(ctx context.Context, draftID int64) (*dto.BOMItemResponse, error) {
	var out *dto.BOMItemResponse
	err := uc.tx.Run(ctx, func(bomRepo repository.BOMRepository, partRepo repository.PartRepository, rfqRepo repository.RFQRepository) error {
		draft, err := bomRepo.GetDraftByID(draftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return domain.ErrNotFound
		}
		bom, err := loadEditableBOM(bomRepo, draft.BOMID)
		if err != nil {
			return err
		}
		part, err := partRepo.GetByPartNumber(draft.PartNumber)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: la parte %s sigue sin existir en el catálogo", domain.ErrInvalidInput, draft.PartNumber)
		}
		now := time.Now()
		item, err := bomRepo.GetItemByPart(draft.BOMID, part.ID)
		if err != nil {
			return err
		}
		if item != nil {
			item.Quantity += draft.Quantity
			item.UpdatedAt = now
			if err := bomRepo.UpdateItem(item); err != nil {
				return err
			}
		} else {
			item = &entity.BOMItem{
				BOMID:     draft.BOMID,
				PartID:    part.ID,
				Quantity:  draft.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := bomRepo.CreateItem(item); err != nil {
				return err
			}
		}
		if err := bomRepo.DeleteDraft(draftID); err != nil {
			return err
		}
		if err := bomstate.Refresh(bomRepo, rfqRepo, bom, true); err != nil {
			return err
		}
		created, err := bomRepo.GetItemByID(item.ID)
		if err != nil {
			return err
		}
		resp := usecase.ToBOMItemResponse(created)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RejectDraft descarta un draft sin crear línea.
func (uc *UseCase) RejectDraft(ctx context.Context, draftID int64) error {
	return uc.tx.Run(ctx, func(bomRepo repository.BOMRepository, partRepo repository.PartRepository, rfqRepo repository.RFQRepository) error {
		draft, err := bomRepo.GetDraftByID(draftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return domain.ErrNotFound
		}
		bom, err := loadEditableBOM(bomRepo, draft.BOMID)
		if err != nil {
			return err
		}
		if err := bomRepo.DeleteDraft(draftID); err != nil {
			return err
		}
		return bomstate.Refresh(bomRepo, rfqRepo, bom, true)
	})
}
