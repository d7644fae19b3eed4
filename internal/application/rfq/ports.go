// Package rfq implementa el ciclo de vida de las solicitudes de cotización:
// generación desde un BOM listo, edición en borrador, envío por correo y
// cierre (recibido o cancelado).
package rfq

import (
	"context"

	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// TxRunner puerto transaccional del flujo RFQ.
type TxRunner interface {
	RunRFQ(ctx context.Context, fn func(
		bomRepo repository.BOMRepository,
		rfqRepo repository.RFQRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// OutboundEmail correo saliente con un adjunto opcional.
type OutboundEmail struct {
	From           string
	FromName       string
	To             string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

// Mailer puerto de despacho de correo. El envío es sincrónico: si devuelve
// nil el transporte aceptó el mensaje.
type Mailer interface {
	Send(msg OutboundEmail) error
}

// AttachmentBuilder arma el libro xlsx que acompaña al correo de RFQ, con
// las columnas cotizables en blanco para que el proveedor las llene.
type AttachmentBuilder interface {
	BuildRFQAttachment(rfq *entity.RFQ, items []*entity.RFQItem) ([]byte, error)
}
