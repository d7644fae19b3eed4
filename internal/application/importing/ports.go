package importing

import (
	"context"
	"io"

	"github.com/sathler/bomlink/internal/domain/repository"
)

// TextExtractor puerto del servicio OCR: recibe la imagen o PDF y devuelve
// el texto plano extraído.
type TextExtractor interface {
	ExtractText(ctx context.Context, file io.Reader) (string, error)
}

// TxRunner puerto transaccional del pipeline: entrega repos atados a una
// misma transacción y confirma o revierte según el error del callback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bomRepo repository.BOMRepository,
		partRepo repository.PartRepository,
		rfqRepo repository.RFQRepository,
	) error) error
}
