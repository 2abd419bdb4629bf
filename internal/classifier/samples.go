package classifier

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/akozadaev/agriguru/internal/dataset"
	"github.com/akozadaev/agriguru/internal/models"
)

// DefaultPriceColumn - колонка с сырой ценой в таблице образцов.
const DefaultPriceColumn = "Production (tonnes)"

// featureColumns перечисляет обязательные числовые колонки в порядке вектора признаков.
// Вторые имена - синонимы, встречающиеся в исходных наборах данных.
var featureColumns = [][]string{
	{"Nitrogen"},
	{"Phosphorous", "Phosphorus"},
	{"Potassium"},
	{"Temperature", "Temparature"},
	{"Humidity"},
	{"Moisture"},
}

const (
	soilColumn  = "Soil Type"
	labelColumn = "Crop Type"
)

// SamplesFromTable преобразует таблицу в обучающие образцы.
// Отсутствие обязательной колонки или нечисловое значение признака дает TrainingError.
// Колонка цены необязательна.
func SamplesFromTable(t *dataset.Table, priceColumn string) ([]models.SoilSample, error) {
	cols := make([]int, len(featureColumns))
	for i, names := range featureColumns {
		c, err := t.Column(names...)
		if err != nil {
			return nil, missingColumn(err)
		}
		cols[i] = c
	}
	soilCol, err := t.Column(soilColumn)
	if err != nil {
		return nil, missingColumn(err)
	}
	labelCol, err := t.Column(labelColumn)
	if err != nil {
		return nil, missingColumn(err)
	}
	if priceColumn == "" {
		priceColumn = DefaultPriceColumn
	}
	priceCol, err := t.Column(priceColumn)
	if err != nil {
		priceCol = -1
	}

	samples := make([]models.SoilSample, 0, t.Len())
	for row := range t.Rows {
		var values [6]float64
		for i, c := range cols {
			raw := t.Cell(row, c)
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &TrainingError{
					Reason: fmt.Sprintf("row %d: column %q has non-numeric value %q", row+2, featureColumns[i][0], raw),
					Err:    err,
				}
			}
			values[i] = v
		}
		samples = append(samples, models.SoilSample{
			SoilType:    t.Cell(row, soilCol),
			Nitrogen:    values[0],
			Phosphorous: values[1],
			Potassium:   values[2],
			Temperature: values[3],
			Humidity:    values[4],
			Moisture:    values[5],
			CropLabel:   t.Cell(row, labelCol),
			RawPrice:    t.Cell(row, priceCol),
		})
	}
	return samples, nil
}

func missingColumn(err error) error {
	var mc *dataset.MissingColumnError
	if errors.As(err, &mc) {
		return &TrainingError{Reason: "missing required column", Err: err}
	}
	return err
}
