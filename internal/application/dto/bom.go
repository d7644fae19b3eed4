package dto

import "time"

// CreateBOMRequest alta de cabecera de BOM.
type CreateBOMRequest struct {
	CustomerID  int64  `json:"customer_id" validate:"required"`
	JobID       *int64 `json:"job_id"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// UpdateBOMRequest actualización parcial de cabecera. El estado no se
// acepta desde afuera: siempre se recalcula.
type UpdateBOMRequest struct {
	CustomerID  *int64  `json:"customer_id"`
	JobID       *int64  `json:"job_id"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
}

// BOMResponse cabecera de BOM. Version se serializa con un decimal fijo
// ("1.0", "1.1").
type BOMResponse struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	CustomerID  int64     `json:"customer_id"`
	JobID       *int64    `json:"job_id,omitempty"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BOMDetailResponse cabecera más conteos derivados y líneas.
type BOMDetailResponse struct {
	BOMResponse
	ItemCount  int                 `json:"item_count"`
	DraftCount int                 `json:"draft_count"`
	Items      []BOMItemResponse   `json:"items"`
	Drafts     []DraftItemResponse `json:"drafts"`
}

// CreateBOMItemRequest alta manual de una línea.
type CreateBOMItemRequest struct {
	PartID   int64  `json:"part_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Notes    string `json:"notes"`
}

// UpdateBOMItemRequest actualización de una línea.
type UpdateBOMItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,min=1"`
	Notes    *string `json:"notes"`
}

// BOMItemResponse línea resuelta con datos de catálogo.
type BOMItemResponse struct {
	ID               int64  `json:"id"`
	BOMID            int64  `json:"bom_id"`
	PartID           int64  `json:"part_id"`
	PartNumber       string `json:"part_number"`
	PartDescription  string `json:"part_description"`
	ManufacturerID   int64  `json:"manufacturer_id"`
	ManufacturerName string `json:"manufacturer_name"`
	Quantity         int    `json:"quantity"`
	Notes            string `json:"notes"`
}

// DraftItemResponse línea sin resolver, pendiente de revisión.
type DraftItemResponse struct {
	ID         int64  `json:"id"`
	BOMID      int64  `json:"bom_id"`
	PartNumber string `json:"part_number"`
	Quantity   int    `json:"quantity"`
}

// ImportResultResponse resultado de un lote de importación. DraftedParts
// son los números que no matchearon el catálogo y quedaron en borrador.
type ImportResultResponse struct {
	Processed    int      `json:"processed"`
	DraftedParts []string `json:"drafted_parts"`
	Status       string   `json:"status"`
	Version      string   `json:"version"`
}
