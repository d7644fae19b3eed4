package importing_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/importing"
	"github.com/sathler/bomlink/internal/application/memrepo"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────

// seedBOM crea un BOM en Draft 1.0 con un fabricante y una parte conocida.
func seedBOM(t *testing.T) (*memrepo.Store, int64) {
	t.Helper()
	s := memrepo.NewStore()

	mfrID := s.SeedManufacturer("Schneider Electric")
	require.NoError(t, s.PartRepo().Create(&entity.Part{
		PartNumber:     "LC1D18M7",
		Description:    "Contactor 18A",
		ManufacturerID: mfrID,
		Unit:           entity.UnitEach,
	}))

	bom := &entity.BOM{
		CustomerID: 1,
		Status:     entity.BOMStatusDraft,
		Version:    decimal.NewFromFloat(1.0),
	}
	require.NoError(t, s.BOMRepo().Create(bom))
	return s, bom.ID
}

type fixedExtractor struct{ text string }

func (f fixedExtractor) ExtractText(ctx context.Context, file io.Reader) (string, error) {
	return f.text, nil
}

// ──────────────────────────────────────────────────────────────────────────
// ImportRows
// ──────────────────────────────────────────────────────────────────────────

// Parte conocida termina como línea resuelta; el BOM queda Ready y la
// versión sube exactamente 0.1 una vez por lote.
func TestImportRows_ParteConocidaQuedaResuelta(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), nil)

	res, err := uc.ImportRows(context.Background(), bomID, []importing.Row{
		{PartNumber: "lc1d18m7", Quantity: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Empty(t, res.DraftedParts)
	assert.Equal(t, entity.BOMStatusReady, res.Status)
	assert.Equal(t, "1.1", res.Version)

	items, err := s.BOMRepo().ListItems(bomID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

// Parte desconocida queda como draft sin resolver y el BOM pasa a
// Incomplete; el resultado nombra los números que quedaron en borrador.
func TestImportRows_ParteDesconocidaQuedaEnBorrador(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), nil)

	res, err := uc.ImportRows(context.Background(), bomID, []importing.Row{
		{PartNumber: "LC1D18M7", Quantity: 2},
		{PartNumber: "NOEXISTE9", Quantity: 7},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, []string{"NOEXISTE9"}, res.DraftedParts)
	assert.Equal(t, entity.BOMStatusIncomplete, res.Status)

	drafts, err := s.BOMRepo().ListDrafts(bomID)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "NOEXISTE9", drafts[0].PartNumber)
	assert.Equal(t, 7, drafts[0].Quantity)
	assert.False(t, drafts[0].IsResolved)
}

// Reimportar la misma parte suma cantidades sobre la línea existente en
// vez de duplicarla, y cada lote sube la versión una sola vez.
func TestImportRows_ReimportSumaCantidades(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), nil)
	ctx := context.Background()

	_, err := uc.ImportRows(ctx, bomID, []importing.Row{{PartNumber: "LC1D18M7", Quantity: 4}})
	require.NoError(t, err)
	res, err := uc.ImportRows(ctx, bomID, []importing.Row{{PartNumber: "LC1D18M7", Quantity: 6}})
	require.NoError(t, err)

	assert.Equal(t, "1.2", res.Version)
	items, err := s.BOMRepo().ListItems(bomID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity)
}

func TestImportRows_BOMBloqueadoRechaza(t *testing.T) {
	s, bomID := seedBOM(t)
	bom, err := s.BOMRepo().GetByID(bomID)
	require.NoError(t, err)
	bom.Status = entity.BOMStatusLocked
	require.NoError(t, s.BOMRepo().Update(bom))

	uc := importing.NewUseCase(memrepo.NewTx(s), nil)
	_, err = uc.ImportRows(context.Background(), bomID, []importing.Row{{PartNumber: "LC1D18M7", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrStateViolation)
}

func TestImportRows_LoteVacioRechaza(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), nil)

	_, err := uc.ImportRows(context.Background(), bomID, []importing.Row{
		{PartNumber: "###", Quantity: 3},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────
// Orígenes
// ──────────────────────────────────────────────────────────────────────────

func TestImportCSV_DeExtremoAExtremo(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), nil)

	csv := "Part Number,Qty\nLC1D18M7,4\nDESCONOCIDA1,2\n"
	res, err := uc.ImportCSV(context.Background(), bomID, strings.NewReader(csv), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, []string{"DESCONOCIDA1"}, res.DraftedParts)
}

func TestImportOCR_SinExtractorRechaza(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), nil)

	_, err := uc.ImportOCR(context.Background(), bomID, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportOCR_ConExtractor(t *testing.T) {
	s, bomID := seedBOM(t)
	uc := importing.NewUseCase(memrepo.NewTx(s), fixedExtractor{text: "LC1D18M7\n3\n"})

	res, err := uc.ImportOCR(context.Background(), bomID, strings.NewReader("bytes de imagen"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, entity.BOMStatusReady, res.Status)
}
