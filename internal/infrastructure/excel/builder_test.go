package excel_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/infrastructure/excel"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	return rows
}

func TestBuildBOMWorkbook(t *testing.T) {
	b := excel.NewBuilder()
	bom := &entity.BOM{ID: 123}
	items := []*entity.BOMItem{
		{PartNumber: "LC1D18M7", PartDescription: "Contactor", Quantity: 4, ManufacturerName: "Schneider Electric"},
		{PartNumber: "UT25", PartDescription: "Borne", Quantity: 10, ManufacturerName: "Phoenix Contact"},
	}

	data, err := b.BuildBOMWorkbook(bom, items)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Part Number", "Description", "Quantity", "Manufacturer"}, rows[0])
	assert.Equal(t, []string{"LC1D18M7", "Contactor", "4", "Schneider Electric"}, rows[1])
	assert.Equal(t, []string{"UT25", "Borne", "10", "Phoenix Contact"}, rows[2])
}

// El adjunto del correo lleva las columnas cotizables en blanco aunque el
// item ya tenga valores cargados.
func TestBuildRFQAttachment_ColumnasCotizablesEnBlanco(t *testing.T) {
	b := excel.NewBuilder()
	price := decimal.NewFromFloat(12.5)
	uom := "EA"
	items := []*entity.RFQItem{
		{PartNumber: "LC1D18M7", PartDescription: "Contactor", ManufacturerName: "Schneider Electric", Quantity: 4, Price: &price, UOM: &uom},
	}

	data, err := b.BuildRFQAttachment(&entity.RFQ{ID: 7}, items)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Part Number", "Description", "Manufacturer", "Quantity", "UOM", "Price", "ETA"}, rows[0])
	// GetRows recorta las celdas vacías del final de la fila.
	assert.Equal(t, []string{"LC1D18M7", "Contactor", "Schneider Electric", "4"}, rows[1])
}

// La exportación, en cambio, incluye lo que el proveedor ya cotizó.
func TestBuildRFQWorkbook_IncluyeValoresCotizados(t *testing.T) {
	b := excel.NewBuilder()
	price := decimal.NewFromFloat(12.5)
	uom := "EA"
	eta := "2 semanas"
	items := []*entity.RFQItem{
		{PartNumber: "UT25", PartDescription: "Borne", ManufacturerName: "Phoenix Contact", Quantity: 10, Price: &price, UOM: &uom, ETA: &eta},
	}

	data, err := b.BuildRFQWorkbook(&entity.RFQ{ID: 7}, items)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"UT25", "Borne", "Phoenix Contact", "10", "EA", "12.5", "2 semanas"}, rows[1])
}
