// Package weather получает прогноз погоды OpenWeatherMap для района.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akozadaev/agriguru/internal/models"
)

// ForecastEntries - количество точек прогноза в ответе.
const ForecastEntries = 5

// UnavailableMessage показывается пользователю, если прогноз получить не удалось.
const UnavailableMessage = "Weather unavailable. Try entering a nearby city manually."

// ErrUnavailable возвращается при любой ошибке получения прогноза.
var ErrUnavailable = errors.New("weather unavailable")

// Client выполняет запросы к API прогноза погоды.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает клиента с таймаутом запроса 10 секунд.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast возвращает первые ForecastEntries точек прогноза для города.
// Любая ошибка транспорта, ответ не 200 или пустой прогноз оборачивается в ErrUnavailable.
func (c *Client) Forecast(ctx context.Context, city string) ([]models.WeatherEntry, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	endpoint := fmt.Sprintf("%s/data/2.5/forecast?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("weather request failed", zap.String("city", city), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Warn("weather request rejected", zap.String("city", city), zap.Int("status", res.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	n := len(body.List)
	if n == 0 {
		c.logger.Warn("weather forecast is empty", zap.String("city", city))
		return nil, fmt.Errorf("%w: empty forecast", ErrUnavailable)
	}
	if n > ForecastEntries {
		n = ForecastEntries
	}
	entries := make([]models.WeatherEntry, 0, n)
	for _, item := range body.List[:n] {
		entry := models.WeatherEntry{Time: item.DtTxt, TemperatureC: item.Main.Temp}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
