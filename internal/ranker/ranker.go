// Package ranker формирует итоговый список рекомендованных культур.
package ranker

import (
	"sort"

	"github.com/akozadaev/agriguru/internal/models"
)

// MaxResults - максимальная длина списка рекомендаций.
const MaxResults = 5

// Input содержит все входные данные ранжирования.
type Input struct {
	DistrictCrops []string           // Культуры района в порядке первого появления
	Scores        map[string]float64 // Вероятности классификатора
	Prices        map[string]float64 // Цены за тонну; nil, если ценовой индекс не используется
	Budget        *float64           // Бюджет за тонну; nil - без ограничения
	PinnedCrop    string             // Культура, принудительно ставящаяся на первое место
}

// Rank возвращает до MaxResults культур, отсортированных по убыванию вероятности.
//
// Кандидаты - пересечение культур района и ключей Scores; при заданном бюджете
// остаются культуры с ценой не выше бюджета (бюджет <= 0 не пропускает ничего).
// Закрепленная культура ставится на позицию 0 независимо от бюджета, если она есть
// среди культур района и в Scores, а при наличии таблицы цен - и в Prices.
// При равных вероятностях сохраняется порядок DistrictCrops.
// Пустой результат - допустимый исход. Функция чистая.
func Rank(in Input) []models.RecommendationResult {
	seen := make(map[string]bool, len(in.DistrictCrops))
	var candidates []string
	var pinned string

	for _, crop := range in.DistrictCrops {
		if seen[crop] {
			continue
		}
		seen[crop] = true
		if _, ok := in.Scores[crop]; !ok {
			continue
		}
		if crop == in.PinnedCrop && in.PinnedCrop != "" && pinEligible(crop, in.Prices) {
			pinned = crop
			continue
		}
		if in.Budget != nil && !withinBudget(crop, in.Prices, *in.Budget) {
			continue
		}
		candidates = append(candidates, crop)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return in.Scores[candidates[i]] > in.Scores[candidates[j]]
	})

	results := make([]models.RecommendationResult, 0, MaxResults)
	if pinned != "" {
		r := result(pinned, in)
		r.Pinned = true
		results = append(results, r)
	}
	for _, crop := range candidates {
		if len(results) == MaxResults {
			break
		}
		results = append(results, result(crop, in))
	}
	return results
}

func pinEligible(crop string, prices map[string]float64) bool {
	if prices == nil {
		return true
	}
	_, ok := prices[crop]
	return ok
}

func withinBudget(crop string, prices map[string]float64, budget float64) bool {
	if budget <= 0 {
		return false
	}
	p, ok := prices[crop]
	return ok && p <= budget
}

func result(crop string, in Input) models.RecommendationResult {
	r := models.RecommendationResult{Crop: crop, Confidence: in.Scores[crop]}
	if p, ok := in.Prices[crop]; ok {
		price := p
		r.Price = &price
	}
	return r
}
