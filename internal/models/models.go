// Package models содержит типы данных рекомендательной системы культур.
package models

import "time"

// ProductionRecord представляет запись таблицы производства культур (штат, район, сезон, культура).
type ProductionRecord struct {
	State    string `json:"state" db:"state_name"`
	District string `json:"district" db:"district_name"`
	Season   string `json:"season" db:"season"`
	Crop     string `json:"crop" db:"crop"`
}

// SoilSample представляет обучающую строку с параметрами почвы и климата.
type SoilSample struct {
	SoilType    string  `json:"soil_type" db:"soil_type"`
	Nitrogen    float64 `json:"nitrogen" db:"nitrogen"`
	Phosphorous float64 `json:"phosphorous" db:"phosphorous"`
	Potassium   float64 `json:"potassium" db:"potassium"`
	Temperature float64 `json:"temperature" db:"temperature"`
	Humidity    float64 `json:"humidity" db:"humidity"`
	Moisture    float64 `json:"moisture" db:"moisture"`
	CropLabel   string  `json:"crop_type" db:"crop_type"`
	RawPrice    string  `json:"production" db:"production"` // Сырое строковое значение цены
}

// Measurements содержит введенные пользователем значения почвы и климата.
type Measurements struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorous float64 `json:"phosphorous"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Moisture    float64 `json:"moisture"`
}

// PriceEntry представляет очищенную цену за тонну для культуры.
type PriceEntry struct {
	Crop          string  `json:"crop"`
	PricePerTonne float64 `json:"price_per_tonne"`
}

// RecommendationResult представляет одну позицию в итоговом списке рекомендаций.
type RecommendationResult struct {
	Crop        string   `json:"crop"`
	DisplayName string   `json:"display_name,omitempty"` // Переведенное название
	Confidence  float64  `json:"confidence"`
	Price       *float64 `json:"price,omitempty"`
	Season      string   `json:"season,omitempty"`
	Pinned      bool     `json:"pinned,omitempty"`
}

// RecommendRequest представляет запрос на рекомендацию культур
type RecommendRequest struct {
	State         string       `json:"state"`
	District      string       `json:"district"`
	Season        string       `json:"season,omitempty"`
	SoilType      string       `json:"soil_type"`
	Measurements  Measurements `json:"measurements"`
	Budget        *float64     `json:"budget,omitempty"`
	PinMostCommon bool         `json:"pin_most_common,omitempty"`
	Lang          string       `json:"lang,omitempty"`
}

// RecommendResponse представляет ответ с рекомендациями
type RecommendResponse struct {
	State    string                 `json:"state"`
	District string                 `json:"district"`
	Season   string                 `json:"season,omitempty"`
	Results  []RecommendationResult `json:"results"`
	Total    int                    `json:"total"`
	Message  string                 `json:"message,omitempty"`
}

// WeatherEntry представляет одну точку прогноза погоды.
type WeatherEntry struct {
	Time         string  `json:"time"`
	TemperatureC float64 `json:"temperature_c"`
	Description  string  `json:"description"`
}

// WeatherResponse представляет ответ с прогнозом погоды для района.
type WeatherResponse struct {
	District  string         `json:"district"`
	City      string         `json:"city"`
	Available bool           `json:"available"`
	Forecast  []WeatherEntry `json:"forecast,omitempty"`
	Message   string         `json:"message,omitempty"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// SoilSuggestion представляет статические рекомендации культур для типа почвы.
type SoilSuggestion struct {
	SoilType string   `json:"soil_type"`
	Crops    []string `json:"crops"`
}

// Language представляет поддерживаемый язык интерфейса.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// PriceResponse представляет цену культуры из ценового индекса.
type PriceResponse struct {
	Crop          string   `json:"crop"`
	PricePerTonne *float64 `json:"price_per_tonne,omitempty"`
	Found         bool     `json:"found"`
}
