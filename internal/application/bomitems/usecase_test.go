package bomitems_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/bomitems"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/memrepo"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memrepo.Store
	uc     *bomitems.UseCase
	bomID  int64
	partID int64
}

// newFixture arma un BOM en Draft 1.0 y una parte de catálogo.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memrepo.NewStore()

	mfrID := s.SeedManufacturer("Phoenix Contact")
	part := &entity.Part{
		PartNumber:     "UT25",
		Description:    "Borne de paso",
		ManufacturerID: mfrID,
		Unit:           entity.UnitEach,
	}
	require.NoError(t, s.PartRepo().Create(part))

	bom := &entity.BOM{
		CustomerID: 1,
		Status:     entity.BOMStatusDraft,
		Version:    decimal.NewFromFloat(1.0),
	}
	require.NoError(t, s.BOMRepo().Create(bom))

	return &fixture{
		store:  s,
		uc:     bomitems.NewUseCase(memrepo.NewTx(s)),
		bomID:  bom.ID,
		partID: part.ID,
	}
}

func (f *fixture) bom(t *testing.T) *entity.BOM {
	t.Helper()
	bom, err := f.store.BOMRepo().GetByID(f.bomID)
	require.NoError(t, err)
	require.NotNil(t, bom)
	return bom
}

// ──────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────

func TestAddItem_CreaLineaYRecalcula(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.AddItem(context.Background(), f.bomID, dto.CreateBOMItemRequest{
		PartID:   f.partID,
		Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "UT25", out.PartNumber)
	assert.Equal(t, "Phoenix Contact", out.ManufacturerName)
	assert.Equal(t, 3, out.Quantity)

	bom := f.bom(t)
	assert.Equal(t, entity.BOMStatusReady, bom.Status)
	assert.Equal(t, "1.1", bom.Version.StringFixed(1))
}

// La parte ya presente en el BOM es error de campo, no suma silenciosa.
func TestAddItem_ParteRepetidaEsDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AddItem(ctx, f.bomID, dto.CreateBOMItemRequest{PartID: f.partID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.AddItem(ctx, f.bomID, dto.CreateBOMItemRequest{PartID: f.partID, Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAddItem_BOMBloqueadoRechaza(t *testing.T) {
	f := newFixture(t)
	bom := f.bom(t)
	bom.Status = entity.BOMStatusLocked
	require.NoError(t, f.store.BOMRepo().Update(bom))

	_, err := f.uc.AddItem(context.Background(), f.bomID, dto.CreateBOMItemRequest{PartID: f.partID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrStateViolation)
}

func TestDeleteItem_LineaReferenciadaPorRFQ(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddItem(context.Background(), f.bomID, dto.CreateBOMItemRequest{PartID: f.partID, Quantity: 2})
	require.NoError(t, err)

	// Referencia desde un RFQItem: la línea no se puede borrar.
	require.NoError(t, f.store.RFQRepo().CreateItem(&entity.RFQItem{
		RFQID:     999,
		BOMItemID: out.ID,
		Quantity:  2,
	}))

	err = f.uc.DeleteItem(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)
}

func TestDeleteItem_RecalculaADraft(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddItem(context.Background(), f.bomID, dto.CreateBOMItemRequest{PartID: f.partID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteItem(context.Background(), out.ID))

	bom := f.bom(t)
	assert.Equal(t, entity.BOMStatusDraft, bom.Status)
	assert.Equal(t, "1.2", bom.Version.StringFixed(1))
}

// ──────────────────────────────────────────────────────────────────────────
// Borradores
// ──────────────────────────────────────────────────────────────────────────

func seedDraft(t *testing.T, f *fixture, partNumber string, qty int) int64 {
	t.Helper()
	draft := &entity.DraftBOMItem{BOMID: f.bomID, PartNumber: partNumber, Quantity: qty}
	require.NoError(t, f.store.BOMRepo().CreateDraft(draft))
	return draft.ID
}

// Confirmar copia la cantidad del borrador a la línea nueva y elimina el
// borrador; con el último borrador resuelto el BOM pasa a Ready.
func TestConfirmDraft_CopiaCantidadYEliminaBorrador(t *testing.T) {
	f := newFixture(t)
	draftID := seedDraft(t, f, "UT25", 8)

	out, err := f.uc.ConfirmDraft(context.Background(), draftID)
	require.NoError(t, err)

	assert.Equal(t, 8, out.Quantity)
	assert.Equal(t, "UT25", out.PartNumber)

	drafts, err := f.store.BOMRepo().ListDrafts(f.bomID)
	require.NoError(t, err)
	assert.Empty(t, drafts)
	assert.Equal(t, entity.BOMStatusReady, f.bom(t).Status)
}

func TestConfirmDraft_SumaSobreLineaExistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.AddItem(ctx, f.bomID, dto.CreateBOMItemRequest{PartID: f.partID, Quantity: 2})
	require.NoError(t, err)
	draftID := seedDraft(t, f, "UT25", 3)

	out, err := f.uc.ConfirmDraft(ctx, draftID)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Quantity)
}

// La parte tiene que existir en el catálogo al momento de confirmar.
func TestConfirmDraft_ParteInexistenteRechaza(t *testing.T) {
	f := newFixture(t)
	draftID := seedDraft(t, f, "NOEXISTE1", 4)

	_, err := f.uc.ConfirmDraft(context.Background(), draftID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRejectDraft_DescartaYRecalcula(t *testing.T) {
	f := newFixture(t)
	draftID := seedDraft(t, f, "NOEXISTE1", 4)
	assert.Equal(t, entity.BOMStatusDraft, f.bom(t).Status)

	require.NoError(t, f.uc.RejectDraft(context.Background(), draftID))

	drafts, err := f.store.BOMRepo().ListDrafts(f.bomID)
	require.NoError(t, err)
	assert.Empty(t, drafts)
	assert.Equal(t, entity.BOMStatusDraft, f.bom(t).Status)
}
