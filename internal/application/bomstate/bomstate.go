// Package bomstate centraliza el recálculo de estado y versión del BOM.
// Toda mutación de líneas, drafts o RFQs debe terminar llamando Refresh
// dentro de la misma transacción que la mutación.
package bomstate

import (
	"time"

	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// Refresh recalcula el estado del BOM a partir de sus conjuntos actuales y
// lo persiste. bumpVersion sube la versión en +0.1; se pasa true solo
// cuando cambió el contenido de las líneas, no en cambios de estado puros
// (crear o borrar un RFQ no toca la versión).
func Refresh(bomRepo repository.BOMRepository, rfqRepo repository.RFQRepository, bom *entity.BOM, bumpVersion bool) error {
	hasRFQs, err := rfqRepo.HasByBOM(bom.ID)
	if err != nil {
		return err
	}
	hasDrafts, err := bomRepo.HasDrafts(bom.ID)
	if err != nil {
		return err
	}
	hasItems, err := bomRepo.HasItems(bom.ID)
	if err != nil {
		return err
	}
	bom.RecomputeStatus(hasRFQs, hasDrafts, hasItems)
	if bumpVersion {
		bom.IncrementVersion()
	}
	bom.UpdatedAt = time.Now()
	return bomRepo.Update(bom)
}
