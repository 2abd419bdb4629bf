package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/akozadaev/agriguru/internal/classifier"
	"github.com/akozadaev/agriguru/internal/config"
	"github.com/akozadaev/agriguru/internal/models"
	"github.com/akozadaev/agriguru/internal/pricing"
	"github.com/akozadaev/agriguru/internal/production"
	"github.com/akozadaev/agriguru/internal/translate"
	"github.com/akozadaev/agriguru/internal/weather"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func samples() []models.SoilSample {
	var out []models.SoilSample
	for i := 0; i < 12; i++ {
		d := float64(i % 4)
		out = append(out,
			models.SoilSample{SoilType: "Clayey", Nitrogen: 85 + d, Phosphorous: 40, Potassium: 40, Temperature: 26, Humidity: 80 + d, Moisture: 60, CropLabel: "Rice", RawPrice: "1,000"},
			models.SoilSample{SoilType: "Loamy", Nitrogen: 20 + d, Phosphorous: 60, Potassium: 20, Temperature: 18, Humidity: 40 + d, Moisture: 30, CropLabel: "Wheat", RawPrice: "5,000"},
			models.SoilSample{SoilType: "Sandy", Nitrogen: 50 + d, Phosphorous: 10, Potassium: 70, Temperature: 32, Humidity: 55 + d, Moisture: 45, CropLabel: "Maize", RawPrice: "N/A"},
		)
	}
	return out
}

var riceField = models.Measurements{Nitrogen: 86, Phosphorous: 40, Potassium: 40, Temperature: 26, Humidity: 81, Moisture: 60}

var records = []models.ProductionRecord{
	{State: "West Bengal", District: "MALDAH", Season: "Kharif", Crop: "Wheat"},
	{State: "West Bengal", District: "MALDAH", Season: "Kharif", Crop: "Rice"},
	{State: "West Bengal", District: "MALDAH", Season: "Rabi", Crop: "Maize"},
	{State: "West Bengal", District: "MALDAH", Season: "Whole Year", Crop: "Banana"},
	{State: "Punjab", District: "LUDHIANA", Season: "Kharif", Crop: "Rice"},
	{State: "Punjab", District: "LUDHIANA", Season: "Rabi", Crop: "Wheat"},
	{State: "Goa", District: "NORTH GOA", Season: "Kharif", Crop: "Cashewnut"},
}

type stubForecaster struct {
	entries []models.WeatherEntry
	err     error
	city    string
}

func (s *stubForecaster) Forecast(_ context.Context, city string) ([]models.WeatherEntry, error) {
	s.city = city
	return s.entries, s.err
}

type prefixBackend struct{}

func (prefixBackend) Translate(_ context.Context, text, lang string) (string, error) {
	return lang + ":" + text, nil
}

func newService(t *testing.T, opts Options, fc Forecaster, tr *translate.Service) *Service {
	t.Helper()
	model, err := classifier.Train(samples(), classifier.Options{Trees: 25, Seed: 42})
	require.NoError(t, err)
	return New(Deps{
		Production: production.NewIndex(records),
		Model:      model,
		Prices:     pricing.NewIndex(pricing.FromSamples(samples())),
		Translator: tr,
		Weather:    fc,
		Options:    opts,
	})
}

func budget(v float64) *float64 { return &v }

func crops(results []models.RecommendationResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Crop
	}
	return out
}

func TestRecommend_RanksDistrictCrops(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "West Bengal", District: "MALDAH", SoilType: "Clayey", Measurements: riceField,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Rice", resp.Results[0].Crop)
	assert.Equal(t, "Kharif", resp.Results[0].Season)
	assert.Equal(t, "Rice", resp.Results[0].DisplayName)
	assert.NotContains(t, crops(resp.Results), "Banana")
	assert.ElementsMatch(t, []string{"Rice", "Wheat", "Maize"}, crops(resp.Results))
	assert.Equal(t, len(resp.Results), resp.Total)
	assert.Empty(t, resp.Message)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].Confidence, resp.Results[i].Confidence)
	}
}

func TestRecommend_Budget(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)
	req := models.RecommendRequest{
		State: "West Bengal", District: "MALDAH", SoilType: "Clayey", Measurements: riceField,
		Budget: budget(2000),
	}

	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice"}, crops(resp.Results))
	require.NotNil(t, resp.Results[0].Price)
	assert.Equal(t, 1000.0, *resp.Results[0].Price)

	req.Budget = budget(0)
	resp, err = svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, NoMatchMessage, resp.Message)
}

func TestRecommend_PinsMostCommonCrop(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "Punjab", District: "LUDHIANA", SoilType: "Clayey", Measurements: riceField,
		Budget: budget(2000), PinMostCommon: true,
	})
	require.NoError(t, err)

	// Пшеница закреплена, несмотря на превышение бюджета
	assert.Equal(t, []string{"Wheat", "Rice"}, crops(resp.Results))
	assert.True(t, resp.Results[0].Pinned)
	assert.False(t, resp.Results[1].Pinned)
}

func TestRecommend_PinFallsBackToProductionIndex(t *testing.T) {
	svc := newService(t, Options{PinMostCommon: true}, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "Goa", District: "NORTH GOA", SoilType: "Clayey", Measurements: riceField,
	})
	require.NoError(t, err)

	// Cashewnut не известен классификатору, поэтому не закрепляется
	assert.Empty(t, resp.Results)
	assert.Equal(t, NoMatchMessage, resp.Message)
	assert.Equal(t, "Cashewnut", svc.pinnedCrop("Goa"))
	assert.Equal(t, "", svc.pinnedCrop("Atlantis"))
}

func TestRecommend_UnknownDistrict(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "West Bengal", District: "NOWHERE", SoilType: "Clayey", Measurements: riceField,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, NoMatchMessage, resp.Message)
}

func TestRecommend_UnknownSoil(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)

	_, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "West Bengal", District: "MALDAH", SoilType: "Peaty", Measurements: riceField,
	})
	var uce *classifier.UnknownCategoryError
	require.True(t, errors.As(err, &uce), "got %v", err)
	assert.Equal(t, "Peaty", uce.Category)
}

func TestRecommend_Validation(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)
	valid := models.RecommendRequest{State: "West Bengal", District: "MALDAH", SoilType: "Clayey", Measurements: riceField}

	tests := map[string]func(r *models.RecommendRequest){
		"missing state":     func(r *models.RecommendRequest) { r.State = " " },
		"missing district":  func(r *models.RecommendRequest) { r.District = "" },
		"missing soil":      func(r *models.RecommendRequest) { r.SoilType = "" },
		"negative nitrogen": func(r *models.RecommendRequest) { r.Measurements.Nitrogen = -1 },
		"unsupported lang":  func(r *models.RecommendRequest) { r.Lang = "xx" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			_, err := svc.Recommend(context.Background(), req)
			assert.True(t, errors.Is(err, ErrInvalidRequest), "got %v", err)
		})
	}
}

func TestRecommend_TranslatesDisplayNames(t *testing.T) {
	tr := translate.NewService(prefixBackend{}, nil, nil)
	svc := newService(t, Options{}, nil, tr)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "West Bengal", District: "MALDAH", SoilType: "Clayey", Measurements: riceField, Lang: "Hindi",
	})
	require.NoError(t, err)
	assert.Equal(t, "hi:Rice", resp.Results[0].DisplayName)
	assert.Equal(t, "Rice", resp.Results[0].Crop)
}

func TestWeather(t *testing.T) {
	fc := &stubForecaster{entries: []models.WeatherEntry{{Time: "2024-06-01 00:00:00", TemperatureC: 30, Description: "light rain"}}}
	tr := translate.NewService(prefixBackend{}, nil, nil)
	svc := newService(t, Options{}, fc, tr)

	resp, err := svc.Weather(context.Background(), "MALDAH", "bn")
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, "Malda", fc.city)
	assert.Equal(t, "bn:light rain", resp.Forecast[0].Description)
}

func TestWeather_Unavailable(t *testing.T) {
	fc := &stubForecaster{err: fmt.Errorf("%w: status 404", weather.ErrUnavailable)}
	svc := newService(t, Options{}, fc, nil)

	resp, err := svc.Weather(context.Background(), "PATNA", "")
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "PATNA", resp.City)
	assert.Equal(t, weather.UnavailableMessage, resp.Message)

	svc = newService(t, Options{}, nil, nil)
	resp, err = svc.Weather(context.Background(), "PATNA", "en")
	require.NoError(t, err)
	assert.False(t, resp.Available)

	svc = newService(t, Options{}, &stubForecaster{}, nil)
	resp, err = svc.Weather(context.Background(), "PATNA", "en")
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Forecast)
	assert.Equal(t, weather.UnavailableMessage, resp.Message)

	_, err = svc.Weather(context.Background(), "", "en")
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestLookups(t *testing.T) {
	svc := newService(t, Options{}, nil, nil)

	assert.Equal(t, []string{"West Bengal", "Punjab", "Goa"}, svc.States())
	assert.Equal(t, []string{"LUDHIANA"}, svc.Districts(" Punjab "))
	assert.Equal(t, []string{"Kharif", "Rabi", "Whole Year"}, svc.Seasons())
	assert.Equal(t, []string{"Clayey", "Loamy", "Sandy"}, svc.SoilTypes())

	s, ok := svc.SuggestForSoil("Black")
	assert.True(t, ok)
	assert.Equal(t, []string{"Cotton", "Soybean", "Sorghum"}, s.Crops)
	_, ok = svc.SuggestForSoil("Peaty")
	assert.False(t, ok)

	p := svc.Price("Wheat")
	assert.True(t, p.Found)
	assert.Equal(t, 5000.0, *p.PricePerTonne)
	assert.False(t, svc.Price("Maize").Found)
}

const productionCSV = `State_Name,District_Name,Crop_Year,Season,Crop,Area,Production
West Bengal,MALDAH,2010,Kharif     ,Rice,100,250
West Bengal,MALDAH,2010,Rabi       ,Wheat,80,160
West Bengal,MALDAH,2010,Rabi       ,Maize,10,30
`

func soilCSV() string {
	var sb strings.Builder
	sb.WriteString("Temparature,Humidity,Moisture,Soil Type,Crop Type,Nitrogen,Potassium,Phosphorous,Production (tonnes)\n")
	for _, s := range samples() {
		fmt.Fprintf(&sb, "%g,%g,%g,%s,%s,%g,%g,%g,\"%s\"\n",
			s.Temperature, s.Humidity, s.Moisture, s.SoilType, s.CropLabel, s.Nitrogen, s.Potassium, s.Phosphorous, s.RawPrice)
	}
	return sb.String()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.ProductionPath = filepath.Join(dir, "crop_production.csv")
	cfg.SoilPath = filepath.Join(dir, "data_core.csv")
	cfg.ModelPath = filepath.Join(dir, "model.json")
	cfg.TranslatorBackend = translate.BackendNone
	cfg.ForestTrees = 15

	require.NoError(t, os.WriteFile(cfg.ProductionPath, []byte(productionCSV), 0o644))
	require.NoError(t, os.WriteFile(cfg.SoilPath, []byte(soilCSV()), 0o644))
	return cfg
}

func TestBootstrap_FromFiles(t *testing.T) {
	cfg := testConfig(t)

	svc, err := Bootstrap(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, []string{"Kharif", "Rabi"}, svc.Seasons())
	assert.True(t, svc.Price("Rice").Found)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		State: "West Bengal", District: "MALDAH", SoilType: "Clayey", Measurements: riceField,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Rice", resp.Results[0].Crop)
}

func TestBootstrap_LoadsSavedModel(t *testing.T) {
	cfg := testConfig(t)

	model, err := classifier.Train(samples(), classifier.Options{Trees: 3, Seed: 1})
	require.NoError(t, err)
	f, err := os.Create(cfg.ModelPath)
	require.NoError(t, err)
	require.NoError(t, model.Save(f))
	require.NoError(t, f.Close())

	svc, err := Bootstrap(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 3, svc.model.Trees())
}

func TestBootstrap_MissingDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.SoilPath = filepath.Join(t.TempDir(), "absent.csv")

	_, err := Bootstrap(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var due *DataUnavailableError
	require.True(t, errors.As(err, &due))
	assert.Equal(t, cfg.SoilPath, due.Source)
}

func TestBootstrap_BadTrainingTable(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SoilPath, []byte("Nitrogen,Soil Type\n1,Sandy\n"), 0o644))

	_, err := Bootstrap(context.Background(), cfg, nil)
	var te *classifier.TrainingError
	assert.True(t, errors.As(err, &te), "got %v", err)
}
