package repository

import "github.com/sathler/bomlink/internal/domain/entity"

// PartRepository puerto de persistencia del catálogo de partes.
// GetByPartNumber espera el número ya normalizado (solo alfanuméricos, en
// mayúsculas) y es la consulta que usa el pipeline de importación.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id int64) (*entity.Part, error)
	GetByPartNumber(partNumber string) (*entity.Part, error)
	List(limit, offset int) ([]*entity.Part, error)
	Search(term string, limit int) ([]*entity.Part, error)
	Update(part *entity.Part) error
	// Delete devuelve domain.ErrInUse si la parte está referenciada por
	// líneas de BOM (restricción de FK).
	Delete(id int64) error
}
