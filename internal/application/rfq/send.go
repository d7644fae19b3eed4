package rfq

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
)

// Send despacha un RFQ en borrador al proveedor: arma el libro xlsx con las
// columnas cotizables en blanco, el cuerpo HTML con la tabla de líneas, y
// envía desde la casilla del usuario creador. El estado pasa a Sent con
// SentDate solo después de que el transporte aceptó el mensaje; un fallo de
// envío deja el RFQ en borrador intacto.
func (uc *UseCase) Send(id int64) (*dto.RFQResponse, error) {
	if uc.mailer == nil || uc.attach == nil {
		return nil, fmt.Errorf("%w: envío de correo no configurado", domain.ErrInvalidInput)
	}
	r, err := uc.rfqs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !r.CanEdit() {
		return nil, fmt.Errorf("%w: el RFQ %s ya no está en borrador", domain.ErrStateViolation, r.RFQNumber())
	}
	items, err := uc.rfqs.ListItems(id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el RFQ %s no tiene items", domain.ErrInvalidInput, r.RFQNumber())
	}
	sender, err := uc.users.GetByID(r.UserID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domain.ErrUserNotFound
	}

	attachment, err := uc.attach.BuildRFQAttachment(r, items)
	if err != nil {
		return nil, fmt.Errorf("armar adjunto: %w", err)
	}

	msg := OutboundEmail{
		From:           sender.Email,
		FromName:       sender.FullName(),
		To:             r.SupplierEmail,
		Subject:        fmt.Sprintf("Solicitud de cotización %s", r.RFQNumber()),
		HTMLBody:       buildRFQBody(r, items, sender.FullName()),
		AttachmentName: r.RFQNumber() + ".xlsx",
		Attachment:     attachment,
	}
	if err := uc.mailer.Send(msg); err != nil {
		return nil, fmt.Errorf("enviar correo: %w", err)
	}

	now := time.Now()
	r.Status = entity.RFQStatusSent
	r.SentDate = &now
	r.UpdatedAt = now
	if err := uc.rfqs.Update(r); err != nil {
		return nil, err
	}
	resp := toRFQResponse(r)
	return &resp, nil
}

// buildRFQBody arma el cuerpo HTML: saludo, tabla de líneas y firma. El
// proveedor cotiza sobre el adjunto; la tabla del cuerpo es informativa.
func buildRFQBody(r *entity.RFQ, items []*entity.RFQItem, senderName string) string {
	var b strings.Builder
	b.WriteString("<p>Estimado proveedor ")
	b.WriteString(html.EscapeString(r.SupplierName))
	b.WriteString(",</p>")
	b.WriteString("<p>Adjuntamos la solicitud de cotización <strong>")
	b.WriteString(r.RFQNumber())
	b.WriteString("</strong>. Por favor complete precio, unidad y plazo de entrega en el archivo adjunto y respóndanos antes del ")
	b.WriteString(r.DueDate.Format("2006-01-02"))
	b.WriteString(".</p>")
	b.WriteString(`<table border="1" cellpadding="4" cellspacing="0">`)
	b.WriteString("<tr><th>Número de parte</th><th>Descripción</th><th>Fabricante</th><th>Cantidad</th></tr>")
	for _, it := range items {
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(it.PartNumber))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(it.PartDescription))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(it.ManufacturerName))
		b.WriteString("</td><td>")
		fmt.Fprintf(&b, "%d", it.Quantity)
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table>")
	b.WriteString("<p>Saludos,<br>")
	b.WriteString(html.EscapeString(senderName))
	b.WriteString("</p>")
	return b.String()
}
