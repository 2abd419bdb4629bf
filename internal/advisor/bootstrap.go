package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akozadaev/agriguru/internal/classifier"
	"github.com/akozadaev/agriguru/internal/config"
	"github.com/akozadaev/agriguru/internal/dataset"
	"github.com/akozadaev/agriguru/internal/models"
	"github.com/akozadaev/agriguru/internal/pricing"
	"github.com/akozadaev/agriguru/internal/production"
	"github.com/akozadaev/agriguru/internal/storage"
	"github.com/akozadaev/agriguru/internal/translate"
	"github.com/akozadaev/agriguru/internal/weather"
)

// Bootstrap загружает наборы данных, обучает (или читает) модель и собирает сервис.
// Таблица производства и обучающие образцы загружаются параллельно.
// Вызывающий обязан закрыть сервис через Close.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	var pg *storage.PostgresStorage
	if cfg.DataSource == config.SourcePostgres || cfg.SoilSource == config.SourcePostgres {
		var err error
		pg, err = storage.NewPostgresStorage(ctx, cfg.DSN())
		if err != nil {
			return nil, &DataUnavailableError{Source: "postgres", Err: err}
		}
		closers = append(closers, pg.Close)
		logger.Info("connected to PostgreSQL")
	}

	var records []models.ProductionRecord
	var samples []models.SoilSample

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = LoadProductionRecords(gctx, cfg, pg)
		return err
	})
	g.Go(func() error {
		var err error
		samples, err = LoadSamples(gctx, cfg, pg)
		return err
	})
	if err := g.Wait(); err != nil {
		closeAll()
		return nil, err
	}
	logger.Info("datasets loaded",
		zap.Int("production_records", len(records)),
		zap.Int("soil_samples", len(samples)),
	)

	model, err := loadOrTrain(cfg, samples, logger)
	if err != nil {
		closeAll()
		return nil, err
	}

	prices := pricing.NewIndex(pricing.FromSamples(samples))
	logger.Info("price index built", zap.Int("crops", prices.Len()))

	translator, translatorClosers, err := newTranslator(ctx, cfg, logger)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, translatorClosers...)

	svc := New(Deps{
		Production: production.NewIndex(records),
		Model:      model,
		Prices:     prices,
		Translator: translator,
		Weather:    weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, logger),
		Logger:     logger,
		Options: Options{
			BudgetEnabled: cfg.BudgetEnabled,
			PinMostCommon: cfg.PinMostCommon,
		},
	})
	svc.closers = closers
	return svc, nil
}

// LoadProductionRecords читает таблицу производства из источника, выбранного в конфигурации.
// pg используется для источника postgres и может быть nil для остальных.
func LoadProductionRecords(ctx context.Context, cfg *config.Config, pg *storage.PostgresStorage) ([]models.ProductionRecord, error) {
	switch cfg.DataSource {
	case config.SourceFile, "":
		table, err := dataset.Load(cfg.ProductionPath)
		if err != nil {
			return nil, &DataUnavailableError{Source: cfg.ProductionPath, Err: err}
		}
		records, err := dataset.ProductionRecords(table)
		if err != nil {
			return nil, fmt.Errorf("failed to read production table %s: %w", cfg.ProductionPath, err)
		}
		return records, nil
	case config.SourcePostgres:
		if pg == nil {
			return nil, &DataUnavailableError{Source: "postgres", Err: errors.New("storage is not configured")}
		}
		records, err := pg.LoadProductionRecords(ctx)
		if err != nil {
			return nil, &DataUnavailableError{Source: "postgres", Err: err}
		}
		return records, nil
	case config.SourceElasticsearch:
		es, err := storage.NewElasticsearchStorage(cfg.ElasticsearchURL, cfg.ElasticIndex)
		if err != nil {
			return nil, &DataUnavailableError{Source: cfg.ElasticsearchURL, Err: err}
		}
		records, err := es.LoadProductionRecords(ctx)
		if err != nil {
			return nil, &DataUnavailableError{Source: cfg.ElasticsearchURL, Err: err}
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// LoadSamples читает обучающие образцы из файла или PostgreSQL.
func LoadSamples(ctx context.Context, cfg *config.Config, pg *storage.PostgresStorage) ([]models.SoilSample, error) {
	switch cfg.SoilSource {
	case config.SourceFile, "":
		table, err := dataset.Load(cfg.SoilPath)
		if err != nil {
			return nil, &DataUnavailableError{Source: cfg.SoilPath, Err: err}
		}
		return classifier.SamplesFromTable(table, cfg.PriceColumn)
	case config.SourcePostgres:
		if pg == nil {
			return nil, &DataUnavailableError{Source: "postgres", Err: errors.New("storage is not configured")}
		}
		samples, err := pg.LoadSoilSamples(ctx)
		if err != nil {
			return nil, &DataUnavailableError{Source: "postgres", Err: err}
		}
		return samples, nil
	default:
		return nil, fmt.Errorf("unknown soil source %q", cfg.SoilSource)
	}
}

func loadOrTrain(cfg *config.Config, samples []models.SoilSample, logger *zap.Logger) (*classifier.Model, error) {
	if cfg.ModelPath != "" {
		f, err := os.Open(cfg.ModelPath)
		switch {
		case err == nil:
			defer f.Close()
			model, err := classifier.Load(f)
			if err != nil {
				return nil, fmt.Errorf("failed to load model %s: %w", cfg.ModelPath, err)
			}
			logger.Info("model loaded", zap.String("path", cfg.ModelPath), zap.Int("trees", model.Trees()))
			return model, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to open model %s: %w", cfg.ModelPath, err)
		}
		logger.Info("model file not found, training", zap.String("path", cfg.ModelPath))
	}

	model, err := classifier.Train(samples, classifier.Options{Trees: cfg.ForestTrees, Seed: cfg.ForestSeed})
	if err != nil {
		return nil, err
	}
	logger.Info("model trained",
		zap.Int("trees", model.Trees()),
		zap.Int("labels", len(model.Labels())),
		zap.Strings("soil_types", model.SoilTypes()),
	)
	return model, nil
}

func newTranslator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*translate.Service, []func() error, error) {
	backend, err := translate.NewBackend(ctx, cfg.TranslatorBackend, cfg.GenAIAPIKey, cfg.GenAIModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create translator: %w", err)
	}

	if cfg.TranslationCachePath == "" {
		return translate.NewService(backend, nil, logger), nil, nil
	}

	store, err := storage.OpenTranslationStore(ctx, cfg.TranslationCachePath)
	if err != nil {
		return nil, nil, err
	}
	return translate.NewService(backend, store, logger), []func() error{store.Close}, nil
}
