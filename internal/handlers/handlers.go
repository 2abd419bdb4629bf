// Package handlers содержит HTTP обработчики для REST API рекомендательной системы культур.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/akozadaev/agriguru/internal/advisor"
	"github.com/akozadaev/agriguru/internal/classifier"
	"github.com/akozadaev/agriguru/internal/models"
	"github.com/akozadaev/agriguru/internal/reference"
)

// Advisor - операции сервиса рекомендаций, используемые обработчиками.
type Advisor interface {
	Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error)
	Weather(ctx context.Context, district, lang string) (*models.WeatherResponse, error)
	SuggestForSoil(soil string) (models.SoilSuggestion, bool)
	SoilTypes() []string
	States() []string
	Districts(state string) []string
	Seasons() []string
	Price(crop string) models.PriceResponse
}

// Handlers содержит зависимости для обработки HTTP запросов.
type Handlers struct {
	advisor Advisor     // Сервис рекомендаций
	logger  *zap.Logger // Логгер запросов
}

// NewHandlers создает новый экземпляр Handlers.
func NewHandlers(a Advisor, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		advisor: a,
		logger:  logger,
	}
}

// RecommendCrops обрабатывает POST запрос на получение рекомендаций культур.
// Принимает RecommendRequest в теле запроса и возвращает до пяти культур.
// Эндпоинт: POST /crops/recommend
//
// @Summary      Получить рекомендации культур
// @Description  Возвращает до пяти культур района, отсортированных по вероятности классификатора. Учитывает бюджет за тонну и закрепление самой распространенной культуры штата.
// @Tags         crops
// @Accept       json
// @Produce      json
// @Param        request  body      models.RecommendRequest  true  "Запрос на рекомендации"
// @Success      200      {object}  models.RecommendResponse
// @Failure      400      {object}  map[string]string  "Неверный запрос"
// @Failure      422      {object}  map[string]string  "Неизвестный тип почвы"
// @Failure      500      {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /crops/recommend [post]
func (h *Handlers) RecommendCrops(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.advisor.Recommend(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetWeather обрабатывает GET запрос на получение прогноза погоды для района.
// Эндпоинт: GET /weather?state=&district=&lang=
//
// @Summary      Прогноз погоды для района
// @Description  Возвращает пять ближайших точек прогноза. Если прогноз недоступен, возвращает available=false и сообщение.
// @Tags         weather
// @Produce      json
// @Param        state     query     string  false  "Штат"
// @Param        district  query     string  true   "Район"
// @Param        lang      query     string  false  "Язык (en, hi, bn, mr, ta)"
// @Success      200       {object}  models.WeatherResponse
// @Failure      400       {object}  map[string]string  "Неверный запрос"
// @Router       /weather [get]
func (h *Handlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.advisor.Weather(r.Context(), q.Get("district"), q.Get("lang"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetStates возвращает штаты таблицы производства.
// Эндпоинт: GET /locations/states
//
// @Summary      Список штатов
// @Tags         locations
// @Produce      json
// @Success      200  {array}  string
// @Router       /locations/states [get]
func (h *Handlers) GetStates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, nonNil(h.advisor.States()))
}

// GetDistricts возвращает районы штата.
// Эндпоинт: GET /locations/states/{state}/districts
//
// @Summary      Список районов штата
// @Tags         locations
// @Produce      json
// @Param        state  path      string  true  "Штат"
// @Success      200    {array}   string
// @Failure      404    {object}  map[string]string  "Штат не найден"
// @Router       /locations/states/{state}/districts [get]
func (h *Handlers) GetDistricts(w http.ResponseWriter, r *http.Request) {
	state := mux.Vars(r)["state"]
	districts := h.advisor.Districts(state)
	if len(districts) == 0 {
		h.writeError(w, http.StatusNotFound, "State not found")
		return
	}
	h.writeJSON(w, http.StatusOK, districts)
}

// GetSeasons возвращает сезоны таблицы производства.
// Эндпоинт: GET /locations/seasons
//
// @Summary      Список сезонов
// @Tags         locations
// @Produce      json
// @Success      200  {array}  string
// @Router       /locations/seasons [get]
func (h *Handlers) GetSeasons(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, nonNil(h.advisor.Seasons()))
}

// GetSoilTypes возвращает типы почвы, известные классификатору.
// Эндпоинт: GET /soil-types
//
// @Summary      Типы почвы модели
// @Tags         soil
// @Produce      json
// @Success      200  {array}  string
// @Router       /soil-types [get]
func (h *Handlers) GetSoilTypes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, nonNil(h.advisor.SoilTypes()))
}

// GetSoilCrops возвращает статические рекомендации культур для типа почвы.
// Эндпоинт: GET /soil-types/{soil}/crops
//
// @Summary      Культуры для типа почвы
// @Tags         soil
// @Produce      json
// @Param        soil  path      string  true  "Тип почвы"
// @Success      200   {object}  models.SoilSuggestion
// @Failure      404   {object}  map[string]string  "Тип почвы не найден"
// @Router       /soil-types/{soil}/crops [get]
func (h *Handlers) GetSoilCrops(w http.ResponseWriter, r *http.Request) {
	suggestion, ok := h.advisor.SuggestForSoil(mux.Vars(r)["soil"])
	if !ok {
		h.writeError(w, http.StatusNotFound, "Soil type not found")
		return
	}
	h.writeJSON(w, http.StatusOK, suggestion)
}

// GetPrice возвращает цену культуры за тонну.
// Эндпоинт: GET /prices/{crop}
//
// @Summary      Цена культуры
// @Tags         crops
// @Produce      json
// @Param        crop  path      string  true  "Культура"
// @Success      200   {object}  models.PriceResponse
// @Failure      404   {object}  models.PriceResponse  "Цена не найдена"
// @Router       /prices/{crop} [get]
func (h *Handlers) GetPrice(w http.ResponseWriter, r *http.Request) {
	resp := h.advisor.Price(mux.Vars(r)["crop"])
	status := http.StatusOK
	if !resp.Found {
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, resp)
}

// GetLanguages возвращает поддерживаемые языки интерфейса.
// Эндпоинт: GET /languages
//
// @Summary      Поддерживаемые языки
// @Tags         languages
// @Produce      json
// @Success      200  {array}  models.Language
// @Router       /languages [get]
func (h *Handlers) GetLanguages(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, reference.Languages())
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
// Используется для мониторинга и проверки доступности API.
// Эндпоинт: GET /health
//
// @Summary      Проверка работоспособности сервиса
// @Description  Возвращает статус сервиса. Используется для мониторинга и проверки доступности.
// @Tags         health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleError сопоставляет ошибку сервиса с HTTP статусом.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *classifier.UnknownCategoryError
	switch {
	case errors.Is(err, advisor.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unknown):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("error encoding response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
