// Package pricing строит индекс цен за тонну из зашумленных строковых данных.
package pricing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/akozadaev/agriguru/internal/models"
)

var numberPattern = regexp.MustCompile(`-?(\d+(\.\d*)?|\.\d+)`)

// Clean преобразует сырое значение цены в число.
// Разделители тысяч (запятая, подчеркивание, пробел между цифрами) удаляются, прочие
// нечисловые символы игнорируются. Значение отбрасывается, если в строке нет числа,
// чисел больше одного или число отрицательное.
func Clean(raw string) (float64, bool) {
	s := stripSeparators(strings.TrimSpace(raw))
	m := numberPattern.FindAllString(s, 2)
	if len(m) != 1 {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[0], 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func stripSeparators(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		switch {
		case r == ',' || r == '_':
			continue
		case unicode.IsSpace(r) && i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]):
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Index хранит цену за тонну для каждой культуры. Неизменяем после создания.
type Index struct {
	entries []models.PriceEntry
	prices  map[string]float64
}

// NewIndex строит индекс из пар (культура, сырая цена).
// Для каждой культуры сохраняется первая запись, прошедшая очистку.
func NewIndex(rows []RawPrice) *Index {
	idx := &Index{prices: make(map[string]float64)}
	for _, row := range rows {
		crop := strings.TrimSpace(row.Crop)
		if crop == "" {
			continue
		}
		if _, ok := idx.prices[crop]; ok {
			continue
		}
		price, ok := Clean(row.Raw)
		if !ok {
			continue
		}
		idx.prices[crop] = price
		idx.entries = append(idx.entries, models.PriceEntry{Crop: crop, PricePerTonne: price})
	}
	return idx
}

// RawPrice представляет неочищенную цену культуры.
type RawPrice struct {
	Crop string
	Raw  string
}

// FromSamples извлекает сырые цены из обучающих строк.
func FromSamples(samples []models.SoilSample) []RawPrice {
	rows := make([]RawPrice, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, RawPrice{Crop: s.CropLabel, Raw: s.RawPrice})
	}
	return rows
}

// PriceFor возвращает цену культуры; false, если культура отброшена или отсутствует.
func (idx *Index) PriceFor(crop string) (float64, bool) {
	p, ok := idx.prices[strings.TrimSpace(crop)]
	return p, ok
}

// Prices возвращает копию таблицы цен.
func (idx *Index) Prices() map[string]float64 {
	out := make(map[string]float64, len(idx.prices))
	for k, v := range idx.prices {
		out[k] = v
	}
	return out
}

// Entries возвращает записи в порядке добавления.
func (idx *Index) Entries() []models.PriceEntry {
	return append([]models.PriceEntry(nil), idx.entries...)
}

// Len возвращает число культур с ценой.
func (idx *Index) Len() int {
	return len(idx.entries)
}
