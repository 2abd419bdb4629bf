package dataset

import (
	"github.com/akozadaev/agriguru/internal/models"
)

// Колонки таблицы производства культур.
const (
	ColumnState    = "State_Name"
	ColumnDistrict = "District_Name"
	ColumnSeason   = "Season"
	ColumnCrop     = "Crop"
)

// ProductionRecords преобразует таблицу в записи производства.
// Строки с пустым штатом, районом или культурой отбрасываются.
func ProductionRecords(t *Table) ([]models.ProductionRecord, error) {
	stateCol, err := t.Column(ColumnState)
	if err != nil {
		return nil, err
	}
	districtCol, err := t.Column(ColumnDistrict)
	if err != nil {
		return nil, err
	}
	seasonCol, err := t.Column(ColumnSeason)
	if err != nil {
		return nil, err
	}
	cropCol, err := t.Column(ColumnCrop)
	if err != nil {
		return nil, err
	}

	records := make([]models.ProductionRecord, 0, t.Len())
	for i := range t.Rows {
		rec := models.ProductionRecord{
			State:    t.Cell(i, stateCol),
			District: t.Cell(i, districtCol),
			Season:   t.Cell(i, seasonCol),
			Crop:     t.Cell(i, cropCol),
		}
		if rec.State == "" || rec.District == "" || rec.Crop == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
