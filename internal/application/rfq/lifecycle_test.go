package rfq_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/memrepo"
	"github.com/sathler/bomlink/internal/application/rfq"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────
// Dobles de correo y adjunto
// ──────────────────────────────────────────────────────────────────────────

type captureMailer struct {
	sent []rfq.OutboundEmail
	fail error
}

func (m *captureMailer) Send(msg rfq.OutboundEmail) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, msg)
	return nil
}

type stubAttachment struct{}

func (stubAttachment) BuildRFQAttachment(r *entity.RFQ, items []*entity.RFQItem) ([]byte, error) {
	return []byte("xlsx"), nil
}

// generated arma la fixture, genera un RFQ en borrador con dos líneas y
// devuelve el caso de uso cableado con el mailer indicado.
func generated(t *testing.T, mailer rfq.Mailer) (*fixture, *rfq.UseCase, int64) {
	t.Helper()
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.graybarID, f.phoenixID)

	require.NoError(t, f.store.UserRepo().Create(&entity.User{
		ID:        testUserID,
		Username:  "pm",
		Email:     "pm@bomlink.local",
		FirstName: "Pedro",
		LastName:  "Martínez",
	}))

	uc := rfq.NewUseCase(memrepo.NewTx(f.store), f.store.BOMRepo(), f.store.RFQRepo(),
		f.store.SupplierRepo(), f.store.UserRepo(), mailer, stubAttachment{})

	out, err := uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.NoError(t, err)
	require.Len(t, out.RFQs, 1)
	return f, uc, out.RFQs[0].ID
}

// ──────────────────────────────────────────────────────────────────────────
// Envío
// ──────────────────────────────────────────────────────────────────────────

func TestSend_DespachaYMarcaEnviado(t *testing.T) {
	mailer := &captureMailer{}
	_, uc, rfqID := generated(t, mailer)

	out, err := uc.Send(rfqID)
	require.NoError(t, err)

	assert.Equal(t, entity.RFQStatusSent, out.Status)
	require.NotNil(t, out.SentDate)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "quotes@graybar.example", msg.To)
	assert.Equal(t, "pm@bomlink.local", msg.From)
	assert.Equal(t, out.Number+".xlsx", msg.AttachmentName)
	assert.Contains(t, msg.Subject, out.Number)
	assert.Contains(t, msg.HTMLBody, "LC1D18M7")
}

// Si el transporte rechaza el correo el RFQ no avanza: sigue en borrador
// con SentDate nulo.
func TestSend_FalloDeTransporteNoAvanzaEstado(t *testing.T) {
	mailer := &captureMailer{fail: errors.New("conexión rechazada")}
	f, uc, rfqID := generated(t, mailer)

	_, err := uc.Send(rfqID)
	require.Error(t, err)

	r, err2 := f.store.RFQRepo().GetByID(rfqID)
	require.NoError(t, err2)
	assert.Equal(t, entity.RFQStatusDraft, r.Status)
	assert.Nil(t, r.SentDate)
}

func TestSend_YaEnviadoRechaza(t *testing.T) {
	mailer := &captureMailer{}
	_, uc, rfqID := generated(t, mailer)

	_, err := uc.Send(rfqID)
	require.NoError(t, err)
	_, err = uc.Send(rfqID)
	assert.ErrorIs(t, err, domain.ErrStateViolation)
}

func TestSend_SinSMTPConfigurado(t *testing.T) {
	f, _, rfqID := generated(t, &captureMailer{})

	sinCorreo := rfq.NewUseCase(memrepo.NewTx(f.store), f.store.BOMRepo(), f.store.RFQRepo(),
		f.store.SupplierRepo(), f.store.UserRepo(), nil, nil)
	_, err := sinCorreo.Send(rfqID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────
// Edición en borrador y cierre
// ──────────────────────────────────────────────────────────────────────────

func TestUpdateItems_CargaCotizacionYTotales(t *testing.T) {
	f, uc, rfqID := generated(t, &captureMailer{})

	items, err := f.store.RFQRepo().ListItems(rfqID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	price := decimal.NewFromFloat(12.50)
	uom := "EA"
	out, err := uc.UpdateItems(context.Background(), rfqID, dto.UpdateRFQItemsRequest{Items: []dto.RFQItemUpdate{
		{ID: items[0].ID, Price: &price, UOM: &uom},
	}})
	require.NoError(t, err)

	// items[0] es LC1D18M7 (cantidad 4): total de línea 50.00.
	var line dto.RFQItemResponse
	for _, it := range out.Items {
		if it.ID == items[0].ID {
			line = it
		}
	}
	assert.Equal(t, "50", line.LineTotal.String())
	assert.Equal(t, "50", out.Total.String())
}

func TestUpdateItems_RechazaValoresInvalidos(t *testing.T) {
	f, uc, rfqID := generated(t, &captureMailer{})
	items, err := f.store.RFQRepo().ListItems(rfqID)
	require.NoError(t, err)

	badQty := 0
	_, err = uc.UpdateItems(context.Background(), rfqID, dto.UpdateRFQItemsRequest{Items: []dto.RFQItemUpdate{
		{ID: items[0].ID, Quantity: &badQty},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := decimal.NewFromFloat(-1)
	_, err = uc.UpdateItems(context.Background(), rfqID, dto.UpdateRFQItemsRequest{Items: []dto.RFQItemUpdate{
		{ID: items[0].ID, Price: &negative},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un lote mixto es todo o nada: si una edición posterior es inválida, la
// edición válida anterior también se revierte.
func TestUpdateItems_LoteMixtoNoDejaEscriturasParciales(t *testing.T) {
	f, uc, rfqID := generated(t, &captureMailer{})
	items, err := f.store.RFQRepo().ListItems(rfqID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	valid := 9
	invalid := 0
	_, err = uc.UpdateItems(context.Background(), rfqID, dto.UpdateRFQItemsRequest{Items: []dto.RFQItemUpdate{
		{ID: items[0].ID, Quantity: &valid},
		{ID: items[1].ID, Quantity: &invalid},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// La primera línea conserva su cantidad original.
	after, err := f.store.RFQRepo().GetItemByID(items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, 4, after.Quantity)
}

func TestUpdateItems_FueraDeBorradorRechaza(t *testing.T) {
	mailer := &captureMailer{}
	_, uc, rfqID := generated(t, mailer)
	_, err := uc.Send(rfqID)
	require.NoError(t, err)

	qty := 9
	_, err = uc.UpdateItems(context.Background(), rfqID, dto.UpdateRFQItemsRequest{Items: []dto.RFQItemUpdate{{ID: 1, Quantity: &qty}}})
	assert.ErrorIs(t, err, domain.ErrStateViolation)
}

// Borrar el último RFQ des-bloquea el BOM: el recompute literal lo regresa
// a Ready. La versión no se toca.
func TestDelete_UltimoRFQDesbloqueaElBOM(t *testing.T) {
	f, uc, rfqID := generated(t, &captureMailer{})
	assert.Equal(t, entity.BOMStatusLocked, f.bom(t).Status)

	require.NoError(t, uc.Delete(context.Background(), rfqID))

	bom := f.bom(t)
	assert.Equal(t, entity.BOMStatusReady, bom.Status)
	assert.Equal(t, "1.2", bom.Version.StringFixed(1))

	items, err := f.store.RFQRepo().ListItems(rfqID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMarkReceived_SoloDesdeEnviado(t *testing.T) {
	mailer := &captureMailer{}
	_, uc, rfqID := generated(t, mailer)

	// En borrador todavía no se puede.
	_, err := uc.MarkReceived(rfqID)
	assert.ErrorIs(t, err, domain.ErrStateViolation)

	_, err = uc.Send(rfqID)
	require.NoError(t, err)
	out, err := uc.MarkReceived(rfqID)
	require.NoError(t, err)
	assert.Equal(t, entity.RFQStatusReceived, out.Status)
}

func TestMarkCanceled_DesdeEnviado(t *testing.T) {
	mailer := &captureMailer{}
	_, uc, rfqID := generated(t, mailer)
	_, err := uc.Send(rfqID)
	require.NoError(t, err)

	out, err := uc.MarkCanceled(rfqID)
	require.NoError(t, err)
	assert.Equal(t, entity.RFQStatusCanceled, out.Status)
}
