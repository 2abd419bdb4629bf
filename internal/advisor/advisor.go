// Package advisor объединяет индексы, классификатор, ранжирование, перевод и прогноз погоды
// в единый сервис рекомендаций. Сервис создается один раз на процесс и после
// инициализации только читает данные, поэтому безопасен для параллельных запросов.
package advisor

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akozadaev/agriguru/internal/classifier"
	"github.com/akozadaev/agriguru/internal/models"
	"github.com/akozadaev/agriguru/internal/pricing"
	"github.com/akozadaev/agriguru/internal/production"
	"github.com/akozadaev/agriguru/internal/ranker"
	"github.com/akozadaev/agriguru/internal/reference"
	"github.com/akozadaev/agriguru/internal/translate"
	"github.com/akozadaev/agriguru/internal/weather"
)

// NoMatchMessage возвращается вместе с пустым списком рекомендаций.
const NoMatchMessage = "No matching crops from prediction found in this district."

// Forecaster получает прогноз погоды для города.
type Forecaster interface {
	Forecast(ctx context.Context, city string) ([]models.WeatherEntry, error)
}

// Options задает поведение сервиса по умолчанию.
type Options struct {
	BudgetEnabled bool // Передавать ценовой индекс в ранжирование
	PinMostCommon bool // Закреплять самую распространенную культуру штата для всех запросов
}

// Deps содержит зависимости сервиса. Production и Model обязательны.
type Deps struct {
	Production *production.Index
	Model      *classifier.Model
	Prices     *pricing.Index
	Translator *translate.Service
	Weather    Forecaster
	Logger     *zap.Logger
	Options    Options
}

// Service выдает рекомендации культур.
type Service struct {
	production *production.Index
	model      *classifier.Model
	prices     *pricing.Index
	translator *translate.Service
	weather    Forecaster
	logger     *zap.Logger
	opts       Options

	closers []func() error
}

// New создает сервис из готовых зависимостей.
func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Prices == nil {
		d.Prices = pricing.NewIndex(nil)
	}
	if d.Translator == nil {
		d.Translator = translate.NewService(nil, nil, d.Logger)
	}
	return &Service{
		production: d.Production,
		model:      d.Model,
		prices:     d.Prices,
		translator: d.Translator,
		weather:    d.Weather,
		logger:     d.Logger,
		opts:       d.Options,
	}
}

// Close освобождает ресурсы, открытые при Bootstrap.
func (s *Service) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recommend проверяет запрос, получает вероятности классификатора, пересекает их
// с культурами района и возвращает ранжированный список.
func (s *Service) Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	state := strings.TrimSpace(req.State)
	district := strings.TrimSpace(req.District)
	if state == "" || district == "" {
		return nil, invalid("state and district are required")
	}
	if strings.TrimSpace(req.SoilType) == "" {
		return nil, invalid("soil_type is required")
	}
	if err := validateMeasurements(req.Measurements); err != nil {
		return nil, err
	}
	if req.Budget != nil && (math.IsNaN(*req.Budget) || math.IsInf(*req.Budget, 0)) {
		return nil, invalid("budget must be a finite number")
	}
	lang, ok := reference.LanguageCode(req.Lang)
	if !ok {
		return nil, invalid("unsupported language %q", req.Lang)
	}

	scores, err := s.model.PredictMeasurements(req.Measurements, strings.TrimSpace(req.SoilType))
	if err != nil {
		return nil, err
	}

	in := ranker.Input{
		DistrictCrops: s.production.CropsFor(state, district),
		Scores:        scores,
	}
	if s.opts.BudgetEnabled || req.Budget != nil {
		in.Prices = s.prices.Prices()
		in.Budget = req.Budget
	}
	if req.PinMostCommon || s.opts.PinMostCommon {
		in.PinnedCrop = s.pinnedCrop(state)
	}

	results := ranker.Rank(in)
	for i := range results {
		if season, ok := reference.SeasonFor(results[i].Crop); ok {
			results[i].Season = season
		}
		results[i].DisplayName = s.translator.Translate(ctx, results[i].Crop, lang)
	}

	resp := &models.RecommendResponse{
		State:    state,
		District: district,
		Season:   strings.TrimSpace(req.Season),
		Results:  results,
		Total:    len(results),
	}
	if len(results) == 0 {
		resp.Message = s.translator.Translate(ctx, NoMatchMessage, lang)
	}

	s.logger.Debug("recommendation computed",
		zap.String("state", state),
		zap.String("district", district),
		zap.Int("candidates", len(in.DistrictCrops)),
		zap.Int("results", len(results)),
	)
	return resp, nil
}

// pinnedCrop ищет культуру штата в справочнике, затем в таблице производства.
func (s *Service) pinnedCrop(state string) string {
	if crop, ok := reference.MostCommonCrop(state); ok {
		return crop
	}
	if crop, ok := s.production.MostCommonCrop(state); ok {
		return crop
	}
	return ""
}

func validateMeasurements(m models.Measurements) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"nitrogen", m.Nitrogen},
		{"phosphorous", m.Phosphorous},
		{"potassium", m.Potassium},
		{"temperature", m.Temperature},
		{"humidity", m.Humidity},
		{"moisture", m.Moisture},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid("%s must be a finite number", f.name)
		}
		if f.value < 0 {
			return invalid("%s must not be negative", f.name)
		}
	}
	return nil
}

// Weather возвращает прогноз для района. Ошибка прогноза не считается ошибкой запроса:
// ответ содержит available=false и сообщение для пользователя.
func (s *Service) Weather(ctx context.Context, district, lang string) (*models.WeatherResponse, error) {
	district = strings.TrimSpace(district)
	if district == "" {
		return nil, invalid("district is required")
	}
	code, ok := reference.LanguageCode(lang)
	if !ok {
		return nil, invalid("unsupported language %q", lang)
	}

	resp := &models.WeatherResponse{
		District:  district,
		City:      reference.CityForDistrict(district),
		FetchedAt: time.Now().UTC(),
	}

	var entries []models.WeatherEntry
	err := weather.ErrUnavailable
	if s.weather != nil {
		entries, err = s.weather.Forecast(ctx, resp.City)
	}
	if err == nil && len(entries) == 0 {
		err = weather.ErrUnavailable
	}
	if err != nil {
		s.logger.Info("weather unavailable", zap.String("city", resp.City), zap.Error(err))
		resp.Message = s.translator.Translate(ctx, weather.UnavailableMessage, code)
		return resp, nil
	}

	for i := range entries {
		entries[i].Description = s.translator.Translate(ctx, entries[i].Description, code)
	}
	resp.Available = true
	resp.Forecast = entries
	return resp, nil
}

// SuggestForSoil возвращает статические рекомендации культур для типа почвы.
func (s *Service) SuggestForSoil(soil string) (models.SoilSuggestion, bool) {
	crops, ok := reference.CropsForSoil(soil)
	if !ok {
		return models.SoilSuggestion{}, false
	}
	return models.SoilSuggestion{SoilType: strings.TrimSpace(soil), Crops: crops}, true
}

// SoilTypes возвращает типы почвы, известные классификатору.
func (s *Service) SoilTypes() []string {
	return s.model.SoilTypes()
}

// States возвращает штаты таблицы производства.
func (s *Service) States() []string {
	return s.production.States()
}

// Districts возвращает районы штата.
func (s *Service) Districts(state string) []string {
	return s.production.Districts(strings.TrimSpace(state))
}

// Seasons возвращает сезоны таблицы производства.
func (s *Service) Seasons() []string {
	return s.production.Seasons()
}

// Price возвращает цену культуры из ценового индекса.
func (s *Service) Price(crop string) models.PriceResponse {
	crop = strings.TrimSpace(crop)
	resp := models.PriceResponse{Crop: crop}
	if p, ok := s.prices.PriceFor(crop); ok {
		resp.PricePerTonne = &p
		resp.Found = true
	}
	return resp
}
