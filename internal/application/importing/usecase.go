package importing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sathler/bomlink/internal/application/bomstate"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// UseCase volcado de lotes importados contra un BOM. Los orígenes (CSV,
// XLSX, OCR) se leen por completo antes de abrir la transacción; la
// transacción solo toca la base.
type UseCase struct {
	tx        TxRunner
	extractor TextExtractor
}

// NewUseCase construye el caso de uso. extractor puede ser nil si el
// despliegue no configura OCR.
func NewUseCase(tx TxRunner, extractor TextExtractor) *UseCase {
	return &UseCase{tx: tx, extractor: extractor}
}

// ImportCSV parsea y vuelca un CSV.
func (uc *UseCase) ImportCSV(ctx context.Context, bomID int64, file io.Reader, partCol, qtyCol int) (*dto.ImportResultResponse, error) {
	rows, err := ParseCSV(file, partCol, qtyCol)
	if err != nil {
		return nil, err
	}
	return uc.ImportRows(ctx, bomID, rows)
}

// ImportXLSX parsea y vuelca la primera hoja de un libro xlsx.
func (uc *UseCase) ImportXLSX(ctx context.Context, bomID int64, file io.Reader, partCol, qtyCol int) (*dto.ImportResultResponse, error) {
	rows, err := ParseXLSX(file, partCol, qtyCol)
	if err != nil {
		return nil, err
	}
	return uc.ImportRows(ctx, bomID, rows)
}

// ImportOCR extrae texto de una imagen o PDF y vuelca el resultado de la
// heurística posicional. La llamada al servicio OCR ocurre antes de abrir
// la transacción.
func (uc *UseCase) ImportOCR(ctx context.Context, bomID int64, file io.Reader) (*dto.ImportResultResponse, error) {
	if uc.extractor == nil {
		return nil, fmt.Errorf("%w: OCR no configurado", domain.ErrInvalidInput)
	}
	text, err := uc.extractor.ExtractText(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("extraer texto: %w", err)
	}
	return uc.ImportRows(ctx, bomID, ParseOCRText(text))
}

// ImportRows agrega las filas y las vuelca en una sola transacción: cada
// grupo normalizado se matchea contra el catálogo y termina como BOMItem
// (sumando cantidades si ya existía) o como DraftBOMItem sin resolver. El
// estado se recalcula y la versión sube una sola vez por lote.
func (uc *UseCase) ImportRows(ctx context.Context, bomID int64, rows []Row) (*dto.ImportResultResponse, error) {
	groups := Aggregate(rows)
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: el archivo no contiene filas utilizables", domain.ErrInvalidInput)
	}

	var result *dto.ImportResultResponse
	err := uc.tx.Run(ctx, func(bomRepo repository.BOMRepository, partRepo repository.PartRepository, rfqRepo repository.RFQRepository) error {
		bom, err := bomRepo.GetByID(bomID)
		if err != nil {
			return err
		}
		if bom == nil {
			return domain.ErrNotFound
		}
		if bom.Status == entity.BOMStatusLocked {
			return fmt.Errorf("%w: el BOM %s está bloqueado por RFQs", domain.ErrStateViolation, bom.BOMNumber())
		}

		now := time.Now()
		var drafted []string
		for _, g := range groups {
			part, err := partRepo.GetByPartNumber(g.PartNumber)
			if err != nil {
				return err
			}
			if part != nil {
				item, err := bomRepo.GetItemByPart(bomID, part.ID)
				if err != nil {
					return err
				}
				if item != nil {
					item.Quantity += g.Quantity
					item.UpdatedAt = now
					if err := bomRepo.UpdateItem(item); err != nil {
						return err
					}
				} else {
					item = &entity.BOMItem{
						BOMID:     bomID,
						PartID:    part.ID,
						Quantity:  g.Quantity,
						CreatedAt: now,
						UpdatedAt: now,
					}
					if err := bomRepo.CreateItem(item); err != nil {
						return err
					}
				}
				continue
			}

			draft, err := bomRepo.GetDraftByPartNumber(bomID, g.PartNumber)
			if err != nil {
				return err
			}
			if draft != nil {
				draft.Quantity += g.Quantity
				if err := bomRepo.UpdateDraft(draft); err != nil {
					return err
				}
			} else {
				draft = &entity.DraftBOMItem{
					BOMID:      bomID,
					PartNumber: g.PartNumber,
					Quantity:   g.Quantity,
					CreatedAt:  now,
				}
				if err := bomRepo.CreateDraft(draft); err != nil {
					return err
				}
			}
			drafted = append(drafted, g.PartNumber)
		}

		if err := bomstate.Refresh(bomRepo, rfqRepo, bom, true); err != nil {
			return err
		}
		result = &dto.ImportResultResponse{
			Processed:    len(groups),
			DraftedParts: drafted,
			Status:       bom.Status,
			Version:      bom.Version.StringFixed(1),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
