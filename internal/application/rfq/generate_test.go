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
	"github.com/sathler/bomlink/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

type fixture struct {
	store *memrepo.Store
	uc    *rfq.UseCase
	bomID int64

	schneiderID int64
	phoenixID   int64
	graybarID   int64
	houseID     int64
	hammondID   int64
}

// newFixture arma un BOM Ready con dos líneas: una de Schneider y otra de
// Phoenix Contact. Los mapeos proveedor→fabricante los agrega cada test.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memrepo.NewStore()
	f := &fixture{store: s}

	f.schneiderID = s.SeedManufacturer("Schneider Electric")
	f.phoenixID = s.SeedManufacturer("Phoenix Contact")

	for _, sup := range []struct {
		name  string
		email string
		dst   *int64
	}{
		{"Graybar", "quotes@graybar.example", &f.graybarID},
		{"House of Electric", "rfq@hoe.example", &f.houseID},
		{"Hammond", "sales@hammond.example", &f.hammondID},
	} {
		supplier := &entity.Supplier{Name: sup.name, ContactEmail: sup.email}
		require.NoError(t, s.SupplierRepo().Create(supplier))
		*sup.dst = supplier.ID
	}

	partA := &entity.Part{PartNumber: "LC1D18M7", Description: "Contactor", ManufacturerID: f.schneiderID, Unit: entity.UnitEach}
	partB := &entity.Part{PartNumber: "UT25", Description: "Borne", ManufacturerID: f.phoenixID, Unit: entity.UnitEach}
	require.NoError(t, s.PartRepo().Create(partA))
	require.NoError(t, s.PartRepo().Create(partB))

	bom := &entity.BOM{CustomerID: 1, Status: entity.BOMStatusReady, Version: decimal.NewFromFloat(1.2)}
	require.NoError(t, s.BOMRepo().Create(bom))
	f.bomID = bom.ID
	require.NoError(t, s.BOMRepo().CreateItem(&entity.BOMItem{BOMID: bom.ID, PartID: partA.ID, Quantity: 4}))
	require.NoError(t, s.BOMRepo().CreateItem(&entity.BOMItem{BOMID: bom.ID, PartID: partB.ID, Quantity: 10}))

	f.uc = rfq.NewUseCase(memrepo.NewTx(s), s.BOMRepo(), s.RFQRepo(), s.SupplierRepo(), s.UserRepo(), nil, nil)
	return f
}

func (f *fixture) mapSupplier(t *testing.T, supplierID, manufacturerID int64) {
	t.Helper()
	require.NoError(t, f.store.SupplierRepo().AddManufacturer(supplierID, manufacturerID))
}

func (f *fixture) bom(t *testing.T) *entity.BOM {
	t.Helper()
	bom, err := f.store.BOMRepo().GetByID(f.bomID)
	require.NoError(t, err)
	require.NotNil(t, bom)
	return bom
}

// ──────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────

// Con un único proveedor por fabricante el modo automático resuelve solo:
// ambos fabricantes van al mismo proveedor y sale un único RFQ con las dos
// líneas. El BOM queda Locked sin subir de versión.
func TestGenerate_AutoUnProveedorParaTodo(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.graybarID, f.phoenixID)

	out, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.NoError(t, err)

	require.False(t, out.NeedsDisambiguation())
	require.Len(t, out.RFQs, 1)
	assert.Equal(t, "Graybar", out.RFQs[0].SupplierName)
	assert.Equal(t, entity.RFQStatusDraft, out.RFQs[0].Status)

	items, err := f.store.RFQRepo().ListItems(out.RFQs[0].ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	bom := f.bom(t)
	assert.Equal(t, entity.BOMStatusLocked, bom.Status)
	assert.Equal(t, "1.2", bom.Version.StringFixed(1))
}

func TestGenerate_UnRFQPorProveedor(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.hammondID, f.phoenixID)

	out, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.NoError(t, err)

	require.Len(t, out.RFQs, 2)
	assert.Equal(t, "Graybar", out.RFQs[0].SupplierName)
	assert.Equal(t, "Hammond", out.RFQs[1].SupplierName)
}

// Un fabricante con dos proveedores y sin asignación explícita devuelve
// las opciones y no escribe nada.
func TestGenerate_AmbiguoDevuelveOpcionesSinEscribir(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.houseID, f.schneiderID)
	f.mapSupplier(t, f.hammondID, f.phoenixID)

	out, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.NoError(t, err)

	require.True(t, out.NeedsDisambiguation())
	require.Len(t, out.Options, 1)
	assert.Equal(t, "Schneider Electric", out.Options[0].ManufacturerName)
	assert.Len(t, out.Options[0].Suppliers, 2)

	// Nada escrito: sin RFQs y el BOM sigue Ready.
	rfqs, err := f.store.RFQRepo().List(repository.RFQFilter{})
	require.NoError(t, err)
	assert.Empty(t, rfqs)
	assert.Equal(t, entity.BOMStatusReady, f.bom(t).Status)
}

// La segunda llamada con el mapa completo resuelve la ambigüedad.
func TestGenerate_AsignacionExplicitaResuelve(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.houseID, f.schneiderID)
	f.mapSupplier(t, f.hammondID, f.phoenixID)

	out, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{
		Assignments: map[int64]int64{f.schneiderID: f.houseID},
	})
	require.NoError(t, err)

	require.Len(t, out.RFQs, 2)
	assert.Equal(t, "House of Electric", out.RFQs[0].SupplierName)
	assert.Equal(t, "Hammond", out.RFQs[1].SupplierName)
}

func TestGenerate_AsignacionAFueraDelMapeoRechaza(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.hammondID, f.phoenixID)

	// Hammond no suministra Schneider.
	_, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{
		Assignments: map[int64]int64{f.schneiderID: f.hammondID},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_FabricanteSinMapeoRechaza(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	// Phoenix Contact queda sin proveedor.

	_, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Phoenix Contact")
}

func TestGenerate_BOMNoReadyRechaza(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.graybarID, f.phoenixID)

	bom := f.bom(t)
	bom.Status = entity.BOMStatusIncomplete
	require.NoError(t, f.store.BOMRepo().Update(bom))

	_, err := f.uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	assert.ErrorIs(t, err, domain.ErrStateViolation)
}

// proveedoresCaidos envuelve el repo real y hace fallar las lecturas por id.
type proveedoresCaidos struct {
	repository.SupplierRepository
	err error
}

func (p proveedoresCaidos) GetByID(id int64) (*entity.Supplier, error) { return nil, p.err }

// Si el repo de proveedores falla al armar las opciones de desambiguación,
// el error sube al llamador en vez de degradar las opciones en silencio.
func TestGenerate_FalloDeRepoEnDesambiguacionPropaga(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.houseID, f.schneiderID)
	f.mapSupplier(t, f.hammondID, f.phoenixID)

	caida := errors.New("conexión perdida")
	uc := rfq.NewUseCase(memrepo.NewTx(f.store), f.store.BOMRepo(), f.store.RFQRepo(),
		proveedoresCaidos{SupplierRepository: f.store.SupplierRepo(), err: caida},
		f.store.UserRepo(), nil, nil)

	_, err := uc.Generate(context.Background(), f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, caida)
}

// Repetir la generación reutiliza el RFQ en borrador y no duplica items.
func TestGenerate_Idempotente(t *testing.T) {
	f := newFixture(t)
	f.mapSupplier(t, f.graybarID, f.schneiderID)
	f.mapSupplier(t, f.graybarID, f.phoenixID)
	ctx := context.Background()

	first, err := f.uc.Generate(ctx, f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.NoError(t, err)

	// Con el BOM ya Locked la regeneración directa se rechaza; se vuelve a
	// Ready (como si se hubiera borrado y recreado la situación) para
	// verificar la reutilización.
	bom := f.bom(t)
	bom.Status = entity.BOMStatusReady
	require.NoError(t, f.store.BOMRepo().Update(bom))

	second, err := f.uc.Generate(ctx, f.bomID, testUserID, dto.GenerateRFQRequest{})
	require.NoError(t, err)

	require.Len(t, second.RFQs, 1)
	assert.Equal(t, first.RFQs[0].ID, second.RFQs[0].ID)
	items, err := f.store.RFQRepo().ListItems(first.RFQs[0].ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
