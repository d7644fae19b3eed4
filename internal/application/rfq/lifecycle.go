package rfq

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sathler/bomlink/internal/application/bomstate"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// UseCase ciclo de vida de RFQs. Las lecturas van directo contra los repos
// del pool; las mutaciones que afectan el estado del BOM corren en el
// TxRunner.
type UseCase struct {
	tx        TxRunner
	boms      repository.BOMRepository
	rfqs      repository.RFQRepository
	suppliers repository.SupplierRepository
	users     repository.UserRepository
	mailer    Mailer
	attach    AttachmentBuilder
}

// NewUseCase construye el caso de uso. mailer y attach pueden ser nil en
// despliegues sin SMTP; Send lo rechaza en ese caso.
func NewUseCase(
	tx TxRunner,
	boms repository.BOMRepository,
	rfqs repository.RFQRepository,
	suppliers repository.SupplierRepository,
	users repository.UserRepository,
	mailer Mailer,
	attach AttachmentBuilder,
) *UseCase {
	return &UseCase{tx: tx, boms: boms, rfqs: rfqs, suppliers: suppliers, users: users, mailer: mailer, attach: attach}
}

// List lista RFQs con filtros opcionales de estado, proveedor y BOM.
func (uc *UseCase) List(filter repository.RFQFilter) ([]dto.RFQResponse, error) {
	list, err := uc.rfqs.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RFQResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRFQResponse(r))
	}
	return out, nil
}

// GetDetail trae cabecera, items con total de línea y total general.
func (uc *UseCase) GetDetail(id int64) (*dto.RFQDetailResponse, error) {
	r, err := uc.rfqs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	items, err := uc.rfqs.ListItems(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.RFQDetailResponse{
		RFQResponse: toRFQResponse(r),
		Items:       make([]dto.RFQItemResponse, 0, len(items)),
		Total:       decimal.Zero,
	}
	for _, it := range items {
		detail.Items = append(detail.Items, toRFQItemResponse(it))
		detail.Total = detail.Total.Add(it.LineTotal())
	}
	return detail, nil
}

// Update edita notas y fecha límite; solo en borrador.
func (uc *UseCase) Update(id int64, in dto.UpdateRFQRequest) (*dto.RFQResponse, error) {
	r, err := uc.rfqs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if !r.CanEdit() {
		return nil, fmt.Errorf("%w: el RFQ %s ya no está en borrador", domain.ErrStateViolation, r.RFQNumber())
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if in.DueDate != nil {
		r.DueDate = *in.DueDate
	}
	r.UpdatedAt = time.Now()
	if err := uc.rfqs.Update(r); err != nil {
		return nil, err
	}
	resp := toRFQResponse(r)
	return &resp, nil
}

// UpdateItems aplica un lote de ediciones de items; solo en borrador. El
// lote entero corre en una transacción: si una edición falla no queda
// ninguna escritura parcial.
func (uc *UseCase) UpdateItems(ctx context.Context, id int64, in dto.UpdateRFQItemsRequest) (*dto.RFQDetailResponse, error) {
	err := uc.tx.RunRFQ(ctx, func(bomRepo repository.BOMRepository, rfqRepo repository.RFQRepository, supplierRepo repository.SupplierRepository) error {
		r, err := rfqRepo.GetByID(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if !r.CanEdit() {
			return fmt.Errorf("%w: el RFQ %s ya no está en borrador", domain.ErrStateViolation, r.RFQNumber())
		}
		now := time.Now()
		for _, upd := range in.Items {
			item, err := rfqRepo.GetItemByID(upd.ID)
			if err != nil {
				return err
			}
			if item == nil || item.RFQID != id {
				return domain.ErrNotFound
			}
			if upd.Quantity != nil {
				if *upd.Quantity < 1 {
					return domain.ErrInvalidInput
				}
				item.Quantity = *upd.Quantity
			}
			if upd.UOM != nil {
				item.UOM = upd.UOM
			}
			if upd.Price != nil {
				if upd.Price.IsNegative() {
					return domain.ErrInvalidInput
				}
				item.Price = upd.Price
			}
			if upd.ETA != nil {
				item.ETA = upd.ETA
			}
			if upd.Notes != nil {
				item.Notes = *upd.Notes
			}
			item.UpdatedAt = now
			if err := rfqRepo.UpdateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetDetail(id)
}

// DeleteItem quita un item de un RFQ en borrador.
func (uc *UseCase) DeleteItem(rfqID, itemID int64) error {
	r, err := uc.rfqs.GetByID(rfqID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if !r.CanEdit() {
		return fmt.Errorf("%w: el RFQ %s ya no está en borrador", domain.ErrStateViolation, r.RFQNumber())
	}
	item, err := uc.rfqs.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.RFQID != rfqID {
		return domain.ErrNotFound
	}
	return uc.rfqs.DeleteItem(itemID)
}

// Delete elimina un RFQ en borrador con sus items y recalcula el estado del
// BOM en la misma transacción: si era el último RFQ el BOM se desbloquea.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.RunRFQ(ctx, func(bomRepo repository.BOMRepository, rfqRepo repository.RFQRepository, supplierRepo repository.SupplierRepository) error {
		r, err := rfqRepo.GetByID(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if !r.CanEdit() {
			return fmt.Errorf("%w: el RFQ %s ya no está en borrador", domain.ErrStateViolation, r.RFQNumber())
		}
		bom, err := bomRepo.GetByID(r.BOMID)
		if err != nil {
			return err
		}
		if bom == nil {
			return domain.ErrNotFound
		}
		if err := rfqRepo.Delete(id); err != nil {
			return err
		}
		return bomstate.Refresh(bomRepo, rfqRepo, bom, false)
	})
}

// MarkReceived marca un RFQ enviado como respondido por el proveedor.
func (uc *UseCase) MarkReceived(id int64) (*dto.RFQResponse, error) {
	return uc.transition(id, entity.RFQStatusSent, entity.RFQStatusReceived)
}

// MarkCanceled cancela un RFQ enviado.
func (uc *UseCase) MarkCanceled(id int64) (*dto.RFQResponse, error) {
	return uc.transition(id, entity.RFQStatusSent, entity.RFQStatusCanceled)
}

func (uc *UseCase) transition(id int64, from, to string) (*dto.RFQResponse, error) {
	r, err := uc.rfqs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status != from {
		return nil, fmt.Errorf("%w: el RFQ %s está en estado %s, se requiere %s", domain.ErrStateViolation, r.RFQNumber(), r.Status, from)
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	if err := uc.rfqs.Update(r); err != nil {
		return nil, err
	}
	resp := toRFQResponse(r)
	return &resp, nil
}

func toRFQResponse(r *entity.RFQ) dto.RFQResponse {
	return dto.RFQResponse{
		ID:           r.ID,
		Number:       r.RFQNumber(),
		BOMID:        r.BOMID,
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		UserID:       r.UserID,
		Status:       r.Status,
		Notes:        r.Notes,
		DueDate:      r.DueDate,
		SentDate:     r.SentDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRFQItemResponse(it *entity.RFQItem) dto.RFQItemResponse {
	return dto.RFQItemResponse{
		ID:               it.ID,
		RFQID:            it.RFQID,
		BOMItemID:        it.BOMItemID,
		PartNumber:       it.PartNumber,
		PartDescription:  it.PartDescription,
		ManufacturerName: it.ManufacturerName,
		Quantity:         it.Quantity,
		UOM:              it.UOM,
		Price:            it.Price,
		ETA:              it.ETA,
		Notes:            it.Notes,
		LineTotal:        it.LineTotal(),
	}
}

// ExportData entrega las entidades crudas para los generadores de archivos.
func (uc *UseCase) ExportData(id int64) (*entity.RFQ, []*entity.RFQItem, error) {
	r, err := uc.rfqs.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.rfqs.ListItems(id)
	if err != nil {
		return nil, nil, err
	}
	return r, items, nil
}
