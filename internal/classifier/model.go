// Package classifier обучает случайный лес на образцах почвы и климата и
// возвращает распределение вероятностей по культурам для вектора признаков.
package classifier

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/akozadaev/agriguru/internal/models"
)

// NumFeatures - длина вектора признаков: N, P, K, температура, влажность воздуха,
// влажность почвы, индекс типа почвы.
const NumFeatures = 7

// Options задает параметры случайного леса.
type Options struct {
	Trees       int   // Число деревьев
	Seed        int64 // Зерно генератора; одинаковое зерно дает одинаковую модель
	MaxFeatures int   // Признаков на разбиение; 0 - целая часть корня из NumFeatures
}

// DefaultOptions возвращает параметры по умолчанию.
func DefaultOptions() Options {
	return Options{Trees: 100, Seed: 42}
}

// Model - обученный случайный лес вместе с таблицей кодирования типов почвы.
// Модель неизменяема и безопасна для параллельного предсказания.
type Model struct {
	labels []string
	soil   *Encoder
	trees  []*node
}

// Train обучает модель. Результат детерминирован при одинаковых данных и Options.Seed.
func Train(samples []models.SoilSample, opts Options) (*Model, error) {
	if len(samples) == 0 {
		return nil, &TrainingError{Reason: "no training samples"}
	}
	if opts.Trees <= 0 {
		opts.Trees = DefaultOptions().Trees
	}
	if opts.MaxFeatures <= 0 || opts.MaxFeatures > NumFeatures {
		opts.MaxFeatures = int(math.Sqrt(NumFeatures))
	}

	soilValues := make([]string, len(samples))
	labelSet := make(map[string]bool)
	for i, s := range samples {
		if strings.TrimSpace(s.SoilType) == "" {
			return nil, &TrainingError{Reason: fmt.Sprintf("sample %d has empty soil type", i)}
		}
		if strings.TrimSpace(s.CropLabel) == "" {
			return nil, &TrainingError{Reason: fmt.Sprintf("sample %d has empty crop label", i)}
		}
		for _, v := range numericFeatures(s) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &TrainingError{Reason: fmt.Sprintf("sample %d has non-finite feature", i)}
			}
		}
		soilValues[i] = s.SoilType
		labelSet[strings.TrimSpace(s.CropLabel)] = true
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	labelIndex := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIndex[l] = i
	}

	m := &Model{labels: labels, soil: NewEncoder(soilValues)}

	x := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		code, _ := m.soil.Encode(s.SoilType)
		x[i] = vector(numericFeatures(s), code)
		y[i] = labelIndex[strings.TrimSpace(s.CropLabel)]
	}

	b := &treeBuilder{
		x:           x,
		y:           y,
		classes:     len(labels),
		maxFeatures: opts.MaxFeatures,
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}
	m.trees = make([]*node, 0, opts.Trees)
	for t := 0; t < opts.Trees; t++ {
		rows := make([]int, len(x))
		for i := range rows {
			rows[i] = b.rng.Intn(len(x))
		}
		m.trees = append(m.trees, b.build(rows))
	}

	return m, nil
}

// Predict возвращает вероятность каждой культуры, известной модели.
// Сумма вероятностей равна 1 с точностью до погрешности вычислений.
func (m *Model) Predict(features [NumFeatures]float64) map[string]float64 {
	sum := make([]float64, len(m.labels))
	for _, t := range m.trees {
		for i, p := range t.distribution(features[:]) {
			sum[i] += p
		}
	}

	out := make(map[string]float64, len(m.labels))
	for i, l := range m.labels {
		out[l] = sum[i] / float64(len(m.trees))
	}
	return out
}

// FeatureVector кодирует измерения и тип почвы в порядке, использованном при обучении.
func (m *Model) FeatureVector(meas models.Measurements, soilType string) ([NumFeatures]float64, error) {
	var v [NumFeatures]float64
	code, err := m.soil.Encode(soilType)
	if err != nil {
		return v, err
	}
	copy(v[:], vector([]float64{
		meas.Nitrogen, meas.Phosphorous, meas.Potassium,
		meas.Temperature, meas.Humidity, meas.Moisture,
	}, code))
	return v, nil
}

// PredictMeasurements кодирует входные данные и возвращает распределение вероятностей.
func (m *Model) PredictMeasurements(meas models.Measurements, soilType string) (map[string]float64, error) {
	v, err := m.FeatureVector(meas, soilType)
	if err != nil {
		return nil, err
	}
	return m.Predict(v), nil
}

// Labels возвращает культуры, известные модели, в алфавитном порядке.
func (m *Model) Labels() []string {
	return append([]string(nil), m.labels...)
}

// SoilTypes возвращает типы почвы в порядке их индексов.
func (m *Model) SoilTypes() []string {
	return m.soil.Categories()
}

// Trees возвращает число деревьев леса.
func (m *Model) Trees() int {
	return len(m.trees)
}

type persistedModel struct {
	Labels []string `json:"labels"`
	Soil   *Encoder `json:"soil_types"`
	Trees  []*node  `json:"trees"`
}

// Save записывает модель в JSON вместе с таблицей кодирования почвы.
func (m *Model) Save(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(persistedModel{Labels: m.labels, Soil: m.soil, Trees: m.trees}); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// Load читает модель, сохраненную Save.
func Load(r io.Reader) (*Model, error) {
	var p persistedModel
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if len(p.Labels) == 0 || len(p.Trees) == 0 || p.Soil == nil {
		return nil, fmt.Errorf("failed to decode model: incomplete model")
	}
	for i, t := range p.Trees {
		if err := t.validate(len(p.Labels)); err != nil {
			return nil, fmt.Errorf("failed to decode model: tree %d: %w", i, err)
		}
	}
	return &Model{labels: p.Labels, soil: p.Soil, trees: p.Trees}, nil
}

func numericFeatures(s models.SoilSample) []float64 {
	return []float64{s.Nitrogen, s.Phosphorous, s.Potassium, s.Temperature, s.Humidity, s.Moisture}
}

func vector(numeric []float64, soilCode int) []float64 {
	return append(append(make([]float64, 0, NumFeatures), numeric...), float64(soilCode))
}
