package importing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/importing"
)

// Números que colapsan a la misma clave normalizada se agregan en un solo
// grupo, sumando cantidades y conservando el orden de primera aparición.
func TestAggregate_NormalizaYSuma(t *testing.T) {
	rows := []importing.Row{
		{PartNumber: "ABC-123", Quantity: 2},
		{PartNumber: "xyz 9", Quantity: 1},
		{PartNumber: "abc123", Quantity: 3},
	}
	got := importing.Aggregate(rows)

	require.Len(t, got, 2)
	assert.Equal(t, importing.Row{PartNumber: "ABC123", Quantity: 5}, got[0])
	assert.Equal(t, importing.Row{PartNumber: "XYZ9", Quantity: 1}, got[1])
}

// Tolerancia por fila: vacías tras normalizar o con cantidad no positiva
// se descartan sin error.
func TestAggregate_DescartaFilasInutilizables(t *testing.T) {
	rows := []importing.Row{
		{PartNumber: "---", Quantity: 5},
		{PartNumber: "OK1", Quantity: 0},
		{PartNumber: "OK2", Quantity: -3},
		{PartNumber: "OK3", Quantity: 1},
	}
	got := importing.Aggregate(rows)

	require.Len(t, got, 1)
	assert.Equal(t, "OK3", got[0].PartNumber)
}

func TestParseCSV_SaltaEncabezadoYEligeColumnas(t *testing.T) {
	csv := "Item,Part Number,Qty,Notes\n" +
		"1,LC1D18M7,4,contactor\n" +
		"2,UT25,10,\n" +
		"3,,7,fila sin parte\n"
	rows, err := importing.ParseCSV(strings.NewReader(csv), 2, 3)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, importing.Row{PartNumber: "LC1D18M7", Quantity: 4}, rows[0])
	assert.Equal(t, importing.Row{PartNumber: "UT25", Quantity: 10}, rows[1])
	// La fila sin parte sale cruda; Aggregate la descarta después.
	assert.Empty(t, rows[2].PartNumber)
}

// Cantidades no numéricas quedan en cero en la fila cruda y caen en la
// agregación; el lote no falla por ellas.
func TestParseCSV_CantidadNoNumericaNoRompeElLote(t *testing.T) {
	csv := "Part,Qty\nGOOD1,3\nBAD1,muchas\n"
	rows, err := importing.ParseCSV(strings.NewReader(csv), 1, 2)
	require.NoError(t, err)

	groups := importing.Aggregate(rows)
	require.Len(t, groups, 1)
	assert.Equal(t, "GOOD1", groups[0].PartNumber)
}

func TestParseCSV_RechazaColumnasInvalidas(t *testing.T) {
	_, err := importing.ParseCSV(strings.NewReader("a,b\n"), 0, 2)
	assert.Error(t, err)
}

// Archivos exportados por Excel viejos llegan en Windows-1252; el parser
// los reinterpreta sin romper los caracteres acentuados.
func TestParseCSV_FallbackWindows1252(t *testing.T) {
	// "Señal" con ñ en Windows-1252 (0xF1), inválido como UTF-8.
	raw := []byte("Part,Qty\nSE\xd1AL1,2\n")
	rows, err := importing.ParseCSV(strings.NewReader(string(raw)), 1, 2)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "SEÑAL1", rows[0].PartNumber)
}

// Heurística de líneas alternadas: la línea N es candidata a número de
// parte solo si la N+1 es un entero estricto.
func TestParseOCRText_LineasAlternadas(t *testing.T) {
	text := "LC1D18M7\n4\nUT25\n10\n"
	rows := importing.ParseOCRText(text)

	require.Len(t, rows, 2)
	assert.Equal(t, importing.Row{PartNumber: "LC1D18M7", Quantity: 4}, rows[0])
	assert.Equal(t, importing.Row{PartNumber: "UT25", Quantity: 10}, rows[1])
}

// Una segunda línea no entera desplaza la ventana: el texto ruidoso del
// escaneo no produce filas fantasma.
func TestParseOCRText_SaltaSegundasLineasNoEnteras(t *testing.T) {
	text := "Lista de materiales\nLC1D18M7\n4\nnota del escaneo\nUT25\n10\n"
	rows := importing.ParseOCRText(text)

	require.Len(t, rows, 2)
	assert.Equal(t, "LC1D18M7", rows[0].PartNumber)
	assert.Equal(t, "UT25", rows[1].PartNumber)
}

func TestParseOCRText_TextoVacio(t *testing.T) {
	assert.Empty(t, importing.ParseOCRText("  \n\n  "))
}
