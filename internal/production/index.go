// Package production содержит неизменяемый индекс записей производства культур в памяти.
package production

import (
	"strings"

	"github.com/akozadaev/agriguru/internal/models"
)

type locationKey struct {
	state    string
	district string
}

// Index предоставляет точные выборки по (штат, район).
// Все списки возвращаются в порядке первого появления в исходных данных.
// После создания индекс не изменяется и безопасен для параллельного чтения.
type Index struct {
	size      int
	states    []string
	districts map[string][]string
	seasons   []string
	crops     map[locationKey][]string
	counts    map[string]map[string]int // штат -> культура -> число записей
	firstSeen map[string][]string       // штат -> культуры в порядке появления
}

// NewIndex строит индекс из записей. Пустые значения не индексируются.
func NewIndex(records []models.ProductionRecord) *Index {
	idx := &Index{
		districts: make(map[string][]string),
		crops:     make(map[locationKey][]string),
		counts:    make(map[string]map[string]int),
		firstSeen: make(map[string][]string),
	}

	seenState := make(map[string]bool)
	seenDistrict := make(map[locationKey]bool)
	seenSeason := make(map[string]bool)
	seenCrop := make(map[locationKey]map[string]bool)

	for _, rec := range records {
		state := strings.TrimSpace(rec.State)
		district := strings.TrimSpace(rec.District)
		season := strings.TrimSpace(rec.Season)
		crop := strings.TrimSpace(rec.Crop)

		if season != "" && !seenSeason[season] {
			seenSeason[season] = true
			idx.seasons = append(idx.seasons, season)
		}
		if state == "" {
			continue
		}
		idx.size++
		if !seenState[state] {
			seenState[state] = true
			idx.states = append(idx.states, state)
		}
		if district == "" {
			continue
		}
		key := locationKey{state: state, district: district}
		if !seenDistrict[key] {
			seenDistrict[key] = true
			idx.districts[state] = append(idx.districts[state], district)
		}
		if crop == "" {
			continue
		}
		if seenCrop[key] == nil {
			seenCrop[key] = make(map[string]bool)
		}
		if !seenCrop[key][crop] {
			seenCrop[key][crop] = true
			idx.crops[key] = append(idx.crops[key], crop)
		}
		if idx.counts[state] == nil {
			idx.counts[state] = make(map[string]int)
		}
		if idx.counts[state][crop] == 0 {
			idx.firstSeen[state] = append(idx.firstSeen[state], crop)
		}
		idx.counts[state][crop]++
	}

	return idx
}

// CropsFor возвращает различные культуры района. Пустой результат не является ошибкой.
func (idx *Index) CropsFor(state, district string) []string {
	crops := idx.crops[locationKey{state: strings.TrimSpace(state), district: strings.TrimSpace(district)}]
	return append([]string(nil), crops...)
}

// States возвращает список штатов.
func (idx *Index) States() []string {
	return append([]string(nil), idx.states...)
}

// Districts возвращает районы штата.
func (idx *Index) Districts(state string) []string {
	return append([]string(nil), idx.districts[strings.TrimSpace(state)]...)
}

// Seasons возвращает все сезоны.
func (idx *Index) Seasons() []string {
	return append([]string(nil), idx.seasons...)
}

// MostCommonCrop возвращает культуру с наибольшим числом записей в штате.
// При равенстве выбирается культура, встреченная первой.
func (idx *Index) MostCommonCrop(state string) (string, bool) {
	state = strings.TrimSpace(state)
	best, bestCount := "", 0
	for _, crop := range idx.firstSeen[state] {
		if c := idx.counts[state][crop]; c > bestCount {
			best, bestCount = crop, c
		}
	}
	return best, bestCount > 0
}

// Len возвращает число проиндексированных записей.
func (idx *Index) Len() int {
	return idx.size
}
