package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akozadaev/agriguru/internal/classifier"
	"github.com/akozadaev/agriguru/internal/config"
	"github.com/akozadaev/agriguru/internal/dataset"
	"github.com/akozadaev/agriguru/internal/logging"
	"github.com/akozadaev/agriguru/internal/models"
	"github.com/akozadaev/agriguru/internal/storage"
)

// Цели загрузки.
const (
	targetElasticsearch = "elasticsearch"
	targetPostgres      = "postgres"
	targetAll           = "all"
)

type options struct {
	target         string
	productionPath string
	soilPath       string
	mappingPath    string
	schemaPath     string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "indexer",
		Short: "Load crop production and soil datasets into Elasticsearch and/or PostgreSQL",
		Long: `indexer reads the crop production table (CSV or XLSX) and pushes it into the
Elasticsearch index and/or the PostgreSQL crop_production table. With the postgres
target the soil sample table is loaded into soil_samples as well.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.productionPath == "" {
				opts.productionPath = cfg.ProductionPath
			}
			if opts.soilPath == "" {
				opts.soilPath = cfg.SoilPath
			}

			logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return run(cmd.Context(), cfg, opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.target, "target", targetAll, "elasticsearch | postgres | all")
	cmd.Flags().StringVar(&opts.productionPath, "production", "", "production table (CSV/XLSX); defaults to PRODUCTION_PATH")
	cmd.Flags().StringVar(&opts.soilPath, "soil", "", "soil sample table (CSV/XLSX); defaults to SOIL_PATH")
	cmd.Flags().StringVar(&opts.mappingPath, "mapping", "", "Elasticsearch mapping file")
	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "PostgreSQL schema file")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *zap.Logger) error {
	switch opts.target {
	case targetElasticsearch, targetPostgres, targetAll:
	default:
		return fmt.Errorf("unknown target %q", opts.target)
	}

	records, err := loadProduction(opts.productionPath)
	if err != nil {
		return err
	}
	logger.Info("production table loaded", zap.String("path", opts.productionPath), zap.Int("records", len(records)))

	if opts.target == targetElasticsearch || opts.target == targetAll {
		if err := indexElasticsearch(ctx, cfg, opts, records, logger); err != nil {
			return err
		}
	}
	if opts.target == targetPostgres || opts.target == targetAll {
		if err := loadPostgres(ctx, cfg, opts, records, logger); err != nil {
			return err
		}
	}

	logger.Info("indexing completed successfully")
	return nil
}

func loadProduction(path string) ([]models.ProductionRecord, error) {
	table, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	return dataset.ProductionRecords(table)
}

func loadSamples(path, priceColumn string) ([]models.SoilSample, error) {
	table, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	return classifier.SamplesFromTable(table, priceColumn)
}

func indexElasticsearch(ctx context.Context, cfg *config.Config, opts options, records []models.ProductionRecord, logger *zap.Logger) error {
	es, err := storage.NewElasticsearchStorage(cfg.ElasticsearchURL, cfg.ElasticIndex)
	if err != nil {
		return err
	}

	mapping, err := readFirst(opts.mappingPath, "elasticsearch_mapping.json")
	if err != nil {
		logger.Warn("could not read mapping file, index will use dynamic mapping", zap.Error(err))
	} else if err := es.CreateIndex(ctx, string(mapping)); err != nil {
		return err
	} else {
		logger.Info("Elasticsearch index created/verified", zap.String("index", cfg.ElasticIndex))
	}

	logger.Info("indexing production records", zap.Int("records", len(records)))
	if err := es.BulkIndexRecords(ctx, records); err != nil {
		return fmt.Errorf("error indexing records: %w", err)
	}
	return nil
}

func loadPostgres(ctx context.Context, cfg *config.Config, opts options, records []models.ProductionRecord, logger *zap.Logger) error {
	pg, err := storage.NewPostgresStorage(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer pg.Close()
	logger.Info("connected to PostgreSQL")

	schema := storage.PostgresSchema
	if data, err := readFirst(opts.schemaPath, "postgres_schema.sql"); err == nil {
		schema = string(data)
	}
	if err := pg.Migrate(ctx, schema); err != nil {
		return err
	}

	samples, err := loadSamples(opts.soilPath, cfg.PriceColumn)
	if err != nil {
		return err
	}

	if err := pg.ReplaceProductionRecords(ctx, records); err != nil {
		return err
	}
	logger.Info("production records stored", zap.Int("records", len(records)))

	if err := pg.ReplaceSoilSamples(ctx, samples); err != nil {
		return err
	}
	logger.Info("soil samples stored", zap.Int("samples", len(samples)))
	return nil
}

// readFirst читает явно указанный файл или ищет name в каталогах migrations.
func readFirst(explicit, name string) ([]byte, error) {
	paths := []string{
		filepath.Join("migrations", name),
		filepath.Join("..", "migrations", name),
		filepath.Join(filepath.Dir(os.Args[0]), "..", "migrations", name),
	}
	if explicit != "" {
		paths = []string{explicit}
	}

	var lastErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to read %s: %w", name, lastErr)
}
