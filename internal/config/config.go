// Package config предоставляет загрузку конфигурации приложения из переменных окружения,
// файла .env и необязательного YAML файла.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Источники табличных данных.
const (
	SourceFile          = "file"
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
)

// Config содержит все параметры конфигурации приложения.
// Порядок приоритета: переменные окружения, YAML файл, значения по умолчанию.
type Config struct {
	DataSource       string `yaml:"data_source"`       // file | postgres | elasticsearch (для таблицы производства)
	ProductionPath   string `yaml:"production_path"`   // CSV/XLSX с таблицей производства
	SoilPath         string `yaml:"soil_path"`         // CSV/XLSX с образцами почвы
	SoilSource       string `yaml:"soil_source"`       // file | postgres
	PriceColumn      string `yaml:"price_column"`      // Колонка с сырой ценой
	ElasticsearchURL string `yaml:"elasticsearch_url"` // URL для подключения к Elasticsearch/OpenSearch
	ElasticIndex     string `yaml:"elastic_index"`     // Индекс записей производства
	PostgresHost     string `yaml:"postgres_host"`     // Хост PostgreSQL
	PostgresPort     string `yaml:"postgres_port"`     // Порт PostgreSQL
	PostgresUser     string `yaml:"postgres_user"`     // Пользователь PostgreSQL
	PostgresPassword string `yaml:"postgres_password"` // Пароль PostgreSQL
	PostgresDB       string `yaml:"postgres_db"`       // Имя базы данных PostgreSQL
	AppPort          string `yaml:"app_port"`          // Порт для HTTP сервера

	WeatherAPIKey  string `yaml:"weather_api_key"`  // Ключ OpenWeatherMap
	WeatherBaseURL string `yaml:"weather_base_url"` // Базовый URL API погоды

	TranslatorBackend    string `yaml:"translator_backend"`     // google | genai | none
	GenAIAPIKey          string `yaml:"genai_api_key"`          // Ключ Gemini
	GenAIModel           string `yaml:"genai_model"`            // Модель Gemini для перевода
	TranslationCachePath string `yaml:"translation_cache_path"` // SQLite файл постоянного кэша; пусто - только память

	ForestTrees int    `yaml:"forest_trees"` // Число деревьев случайного леса
	ForestSeed  int64  `yaml:"forest_seed"`  // Зерно генератора
	ModelPath   string `yaml:"model_path"`   // Сохраненная модель; пусто - обучение при старте

	BudgetEnabled bool `yaml:"budget_enabled"`  // Учитывать ценовой индекс и бюджет
	PinMostCommon bool `yaml:"pin_most_common"` // Закреплять самую распространенную культуру штата

	Domain   string `yaml:"domain"`    // Домен для сертификата ACME
	CertDir  string `yaml:"cert_dir"`  // Каталог кэша сертификатов
	DevMode  bool   `yaml:"dev_mode"`  // Только HTTP без TLS
	LogLevel string `yaml:"log_level"` // debug | info | warn | error
	LogJSON  bool   `yaml:"log_json"`  // JSON формат логов
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		DataSource:        SourceFile,
		ProductionPath:    "crop_production.csv",
		SoilPath:          "data_core.csv",
		SoilSource:        SourceFile,
		PriceColumn:       "Production (tonnes)",
		ElasticsearchURL:  "http://localhost:9200",
		ElasticIndex:      "crop_production",
		PostgresHost:      "localhost",
		PostgresPort:      "5432",
		PostgresUser:      "agriguru_user",
		PostgresPassword:  "agriguru_pass",
		PostgresDB:        "agriguru_db",
		AppPort:           "8080",
		WeatherBaseURL:    "http://api.openweathermap.org",
		TranslatorBackend: "google",
		GenAIModel:        "gemini-2.0-flash",
		ForestTrees:       100,
		ForestSeed:        42,
		CertDir:           "certs",
		DevMode:           true,
		LogLevel:          "info",
		LogJSON:           true,
	}
}

// Load загружает конфигурацию: .env (если есть), YAML файл из AGRIGURU_CONFIG
// (если задан), затем переменные окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("AGRIGURU_CONFIG"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresDB,
	)
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DataSource = getEnv("DATA_SOURCE", c.DataSource)
	c.ProductionPath = getEnv("PRODUCTION_PATH", c.ProductionPath)
	c.SoilPath = getEnv("SOIL_PATH", c.SoilPath)
	c.SoilSource = getEnv("SOIL_SOURCE", c.SoilSource)
	c.PriceColumn = getEnv("PRICE_COLUMN", c.PriceColumn)
	c.ElasticsearchURL = getEnv("ELASTICSEARCH_URL", c.ElasticsearchURL)
	c.ElasticIndex = getEnv("ELASTIC_INDEX", c.ElasticIndex)
	c.PostgresHost = getEnv("POSTGRES_HOST", c.PostgresHost)
	c.PostgresPort = getEnv("POSTGRES_PORT", c.PostgresPort)
	c.PostgresUser = getEnv("POSTGRES_USER", c.PostgresUser)
	c.PostgresPassword = getEnv("POSTGRES_PASSWORD", c.PostgresPassword)
	c.PostgresDB = getEnv("POSTGRES_DB", c.PostgresDB)
	c.AppPort = getEnv("APP_PORT", c.AppPort)
	c.WeatherAPIKey = getEnv("WEATHER_API_KEY", c.WeatherAPIKey)
	c.WeatherBaseURL = getEnv("WEATHER_BASE_URL", c.WeatherBaseURL)
	c.TranslatorBackend = getEnv("TRANSLATOR_BACKEND", c.TranslatorBackend)
	c.GenAIAPIKey = getEnv("GEMINI_API_KEY", c.GenAIAPIKey)
	c.GenAIModel = getEnv("GENAI_MODEL", c.GenAIModel)
	c.TranslationCachePath = getEnv("TRANSLATION_CACHE_PATH", c.TranslationCachePath)
	c.ForestTrees = getEnvInt("FOREST_TREES", c.ForestTrees)
	c.ForestSeed = int64(getEnvInt("FOREST_SEED", int(c.ForestSeed)))
	c.ModelPath = getEnv("MODEL_PATH", c.ModelPath)
	c.BudgetEnabled = getEnvBool("BUDGET_ENABLED", c.BudgetEnabled)
	c.PinMostCommon = getEnvBool("PIN_MOST_COMMON", c.PinMostCommon)
	c.Domain = getEnv("DOMAIN", c.Domain)
	c.CertDir = getEnv("CERT_DIR", c.CertDir)
	c.DevMode = getEnvBool("DEV_MODE", c.DevMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogJSON = getEnvBool("LOG_JSON", c.LogJSON)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
