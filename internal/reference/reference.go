// Package reference содержит статические справочники: культуры по типу почвы,
// самую распространенную культуру штата, сезон культуры и город прогноза погоды для района.
// Справочники неизменяемы; функции возвращают копии.
package reference

import (
	"strings"

	"github.com/akozadaev/agriguru/internal/models"
)

// soilOrder задает порядок отображения типов почв.
var soilOrder = []string{"Alluvial", "Black", "Red", "Laterite", "Sandy", "Clayey", "Loamy"}

// soilCrops задает рекомендации культур для типа почвы.
var soilCrops = map[string][]string{
	"Alluvial": {"Rice", "Sugarcane", "Wheat", "Jute"},
	"Black":    {"Cotton", "Soybean", "Sorghum"},
	"Red":      {"Millets", "Groundnut", "Potato"},
	"Laterite": {"Cashew", "Tea", "Tapioca"},
	"Sandy":    {"Melons", "Pulses", "Groundnut"},
	"Clayey":   {"Rice", "Wheat", "Lentil"},
	"Loamy":    {"Maize", "Barley", "Sugarcane"},
}

// stateCrops задает самую распространенную культуру штата.
var stateCrops = map[string]string{
	"ANDHRA PRADESH":    "Rice",
	"ASSAM":             "Rice",
	"BIHAR":             "Rice",
	"CHHATTISGARH":      "Rice",
	"GUJARAT":           "Cotton(lint)",
	"HARYANA":           "Wheat",
	"KARNATAKA":         "Maize",
	"KERALA":            "Coconut",
	"MADHYA PRADESH":    "Soyabean",
	"MAHARASHTRA":       "Cotton(lint)",
	"ODISHA":            "Rice",
	"PUNJAB":            "Wheat",
	"RAJASTHAN":         "Bajra",
	"TAMIL NADU":        "Rice",
	"TELANGANA":         "Cotton(lint)",
	"UTTAR PRADESH":     "Sugarcane",
	"UTTARAKHAND":       "Wheat",
	"WEST BENGAL":       "Rice",
	"JHARKHAND":         "Rice",
	"HIMACHAL PRADESH":  "Maize",
	"JAMMU AND KASHMIR": "Maize",
}

var cropSeasons = map[string]string{
	"rice":         "Kharif",
	"maize":        "Kharif",
	"cotton":       "Kharif",
	"cotton(lint)": "Kharif",
	"jute":         "Kharif",
	"soybean":      "Kharif",
	"soyabean":     "Kharif",
	"groundnut":    "Kharif",
	"bajra":        "Kharif",
	"jowar":        "Kharif",
	"sorghum":      "Kharif",
	"millets":      "Kharif",
	"ragi":         "Kharif",
	"tur":          "Kharif",
	"wheat":        "Rabi",
	"barley":       "Rabi",
	"gram":         "Rabi",
	"lentil":       "Rabi",
	"masoor":       "Rabi",
	"mustard":      "Rabi",
	"potato":       "Rabi",
	"peas":         "Rabi",
	"pulses":       "Rabi",
	"oil seeds":    "Rabi",
	"melons":       "Zaid",
	"watermelon":   "Zaid",
	"cucumber":     "Zaid",
	"sugarcane":    "Whole Year",
	"tobacco":      "Rabi",
	"paddy":        "Kharif",
	"tea":          "Whole Year",
	"coffee":       "Whole Year",
	"coconut":      "Whole Year",
	"cashew":       "Whole Year",
	"tapioca":      "Whole Year",
}

var districtCities = map[string]string{
	"MALDAH":             "Malda",
	"BARDHAMAN":          "Bardhaman",
	"NADIA":              "Krishnanagar",
	"24 PARAGANAS NORTH": "Barasat",
	"24 PARAGANAS SOUTH": "Diamond Harbour",
	"HOWRAH":             "Howrah",
	"KOLKATA":            "Kolkata",
}

var languages = []models.Language{
	{Name: "English", Code: "en"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Bengali", Code: "bn"},
	{Name: "Marathi", Code: "mr"},
	{Name: "Tamil", Code: "ta"},
}

// SoilTypes возвращает типы почв статического справочника в порядке отображения.
func SoilTypes() []string {
	return append([]string(nil), soilOrder...)
}

// CropsForSoil возвращает рекомендуемые культуры для типа почвы.
// Сравнение без учета регистра; второй результат false, если тип почвы неизвестен.
func CropsForSoil(soil string) ([]string, bool) {
	for _, name := range soilOrder {
		if strings.EqualFold(name, strings.TrimSpace(soil)) {
			return append([]string(nil), soilCrops[name]...), true
		}
	}
	return nil, false
}

// SoilSuggestions возвращает весь справочник почв.
func SoilSuggestions() []models.SoilSuggestion {
	out := make([]models.SoilSuggestion, 0, len(soilOrder))
	for _, name := range soilOrder {
		out = append(out, models.SoilSuggestion{SoilType: name, Crops: append([]string(nil), soilCrops[name]...)})
	}
	return out
}

// MostCommonCrop возвращает самую распространенную культуру штата из справочника.
func MostCommonCrop(state string) (string, bool) {
	crop, ok := stateCrops[strings.ToUpper(strings.TrimSpace(state))]
	return crop, ok
}

// SeasonFor возвращает основной сезон возделывания культуры.
func SeasonFor(crop string) (string, bool) {
	season, ok := cropSeasons[strings.ToLower(strings.TrimSpace(crop))]
	return season, ok
}

// CityForDistrict возвращает город для запроса погоды; по умолчанию само название района.
func CityForDistrict(district string) string {
	if city, ok := districtCities[strings.ToUpper(strings.TrimSpace(district))]; ok {
		return city
	}
	return district
}

// Languages возвращает поддерживаемые языки интерфейса.
func Languages() []models.Language {
	return append([]models.Language(nil), languages...)
}

// LanguageCode возвращает код языка по названию или коду.
func LanguageCode(nameOrCode string) (string, bool) {
	v := strings.TrimSpace(nameOrCode)
	if v == "" {
		return "en", true
	}
	for _, l := range languages {
		if strings.EqualFold(l.Name, v) || strings.EqualFold(l.Code, v) {
			return l.Code, true
		}
	}
	return "", false
}
