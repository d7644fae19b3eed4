package repository

import "github.com/sathler/bomlink/internal/domain/entity"

// BOMRepository puerto de persistencia del agregado BOM: cabecera, líneas
// resueltas y draft items. El borrado de la cabecera arrastra líneas y
// drafts (cascada en el esquema).
type BOMRepository interface {
	Create(bom *entity.BOM) error
	GetByID(id int64) (*entity.BOM, error)
	List(limit, offset int) ([]*entity.BOM, error)
	ListByStatus(status string, limit, offset int) ([]*entity.BOM, error)
	Update(bom *entity.BOM) error
	// Delete devuelve domain.ErrInUse si existen RFQs del BOM.
	Delete(id int64) error

	CreateItem(item *entity.BOMItem) error
	UpdateItem(item *entity.BOMItem) error
	// DeleteItem devuelve domain.ErrInUse si la línea está referenciada por
	// RFQItems.
	DeleteItem(id int64) error
	GetItemByID(id int64) (*entity.BOMItem, error)
	GetItemByPart(bomID, partID int64) (*entity.BOMItem, error)
	ListItems(bomID int64) ([]*entity.BOMItem, error)
	HasItems(bomID int64) (bool, error)

	CreateDraft(draft *entity.DraftBOMItem) error
	UpdateDraft(draft *entity.DraftBOMItem) error
	DeleteDraft(id int64) error
	GetDraftByID(id int64) (*entity.DraftBOMItem, error)
	GetDraftByPartNumber(bomID int64, partNumber string) (*entity.DraftBOMItem, error)
	ListDrafts(bomID int64) ([]*entity.DraftBOMItem, error)
	HasDrafts(bomID int64) (bool, error)
}
