package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akozadaev/agriguru/internal/models"
)

const productionCSV = "\ufeffState_Name,District_Name,Crop_Year,Season,Crop,Area\n" +
	"Andaman and Nicobar Islands,NICOBARS,2000,Kharif     ,Arecanut,1254\n" +
	"Andaman and Nicobar Islands,NICOBARS,2000,Whole Year ,Banana,176\n" +
	"Andaman and Nicobar Islands,NICOBARS,2000,,,12\n" +
	"   ,NICOBARS,2000,Kharif,Rice,1\n" +
	"Bihar,PATNA,2001,Rabi,Wheat\n"

func TestReadCSV_ProductionRecords(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(productionCSV))
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	records, err := ProductionRecords(table)
	require.NoError(t, err)

	want := []models.ProductionRecord{
		{State: "Andaman and Nicobar Islands", District: "NICOBARS", Season: "Kharif", Crop: "Arecanut"},
		{State: "Andaman and Nicobar Islands", District: "NICOBARS", Season: "Whole Year", Crop: "Banana"},
		{State: "Bihar", District: "PATNA", Season: "Rabi", Crop: "Wheat"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("ProductionRecords mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_ColumnSynonyms(t *testing.T) {
	table := NewTable([]string{" Temparature ", "Humidity"}, nil)

	col, err := table.Column("Temperature", "Temparature")
	require.NoError(t, err)
	assert.Equal(t, 0, col)

	col, err = table.Column("HUMIDITY")
	require.NoError(t, err)
	assert.Equal(t, 1, col)

	_, err = table.Column("Moisture")
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Moisture", missing.Column)
}

func TestTable_CellOutOfRange(t *testing.T) {
	table := NewTable([]string{"a", "b"}, [][]string{{" x "}})

	assert.Equal(t, "x", table.Cell(0, 0))
	assert.Equal(t, "", table.Cell(0, 1))
	assert.Equal(t, "", table.Cell(3, 0))
	assert.Equal(t, "", table.Cell(0, -1))
}

func TestProductionRecords_MissingColumn(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("State_Name,District_Name,Season\nBihar,PATNA,Rabi\n"))
	require.NoError(t, err)

	_, err = ProductionRecords(table)
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ColumnCrop, missing.Column)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"State_Name", "District_Name", "Season", "Crop"},
		{"Kerala", "IDUKKI", "Whole Year", "Cardamom"},
		{"Kerala", "IDUKKI", "Kharif", "Rice"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "production.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)

	records, err := ProductionRecords(table)
	require.NoError(t, err)
	want := []models.ProductionRecord{
		{State: "Kerala", District: "IDUKKI", Season: "Whole Year", Crop: "Cardamom"},
		{State: "Kerala", District: "IDUKKI", Season: "Kharif", Crop: "Rice"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("xlsx records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err = Load(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
