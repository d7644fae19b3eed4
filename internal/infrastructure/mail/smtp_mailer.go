// Package mail adapta gomail al puerto Mailer del flujo de RFQs.
package mail

import (
	"fmt"
	"io"

	"github.com/sathler/bomlink/internal/application/rfq"
	"gopkg.in/gomail.v2"
)

// Verificar en tiempo de compilación que SMTPMailer implementa Mailer.
var _ rfq.Mailer = (*SMTPMailer)(nil)

// SMTPMailer despacho sincrónico vía SMTP autenticado.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

// NewSMTPMailer construye el mailer.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{dialer: gomail.NewDialer(host, port, username, password)}
}

// Send arma y entrega el mensaje. Un error significa que el transporte no
// aceptó el correo; el llamador no debe avanzar estado en ese caso.
func (m *SMTPMailer) Send(msg rfq.OutboundEmail) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", msg.From, msg.FromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)
	if len(msg.Attachment) > 0 {
		gm.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(msg.Attachment)
			return err
		}))
	}
	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
