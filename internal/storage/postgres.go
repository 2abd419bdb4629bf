package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/akozadaev/agriguru/internal/models"
)

// PostgresSchema создает таблицы производства и образцов почвы.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS crop_production (
	id            BIGSERIAL PRIMARY KEY,
	state_name    TEXT NOT NULL,
	district_name TEXT NOT NULL,
	season        TEXT,
	crop          TEXT
);
CREATE INDEX IF NOT EXISTS idx_crop_production_location ON crop_production (state_name, district_name);

CREATE TABLE IF NOT EXISTS soil_samples (
	id          BIGSERIAL PRIMARY KEY,
	nitrogen    DOUBLE PRECISION NOT NULL,
	phosphorous DOUBLE PRECISION NOT NULL,
	potassium   DOUBLE PRECISION NOT NULL,
	temperature DOUBLE PRECISION NOT NULL,
	humidity    DOUBLE PRECISION NOT NULL,
	moisture    DOUBLE PRECISION NOT NULL,
	soil_type   TEXT NOT NULL,
	crop_type   TEXT NOT NULL,
	production  TEXT
);
`

const insertBatchSize = 500

// PostgresStorage предоставляет загрузку и выгрузку табличных данных в SQL базе.
// Используется с PostgreSQL; запросы совместимы с SQLite.
type PostgresStorage struct {
	db *sqlx.DB // Подключение к базе данных
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// NewPostgresStorageFromDB оборачивает уже открытое подключение.
func NewPostgresStorageFromDB(db *sqlx.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Close закрывает подключение к базе данных.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// Migrate выполняет DDL схемы.
func (ps *PostgresStorage) Migrate(ctx context.Context, schema string) error {
	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// LoadProductionRecords возвращает все записи производства в порядке вставки.
// Записи без культуры не возвращаются.
func (ps *PostgresStorage) LoadProductionRecords(ctx context.Context) ([]models.ProductionRecord, error) {
	query := `SELECT state_name, district_name, COALESCE(season, '') AS season, crop
		FROM crop_production
		WHERE crop IS NOT NULL AND crop <> ''
		ORDER BY id`

	var records []models.ProductionRecord
	if err := ps.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to query production records: %w", err)
	}
	return records, nil
}

// LoadSoilSamples возвращает все обучающие образцы в порядке вставки.
func (ps *PostgresStorage) LoadSoilSamples(ctx context.Context) ([]models.SoilSample, error) {
	query := `SELECT nitrogen, phosphorous, potassium, temperature, humidity, moisture,
			soil_type, crop_type, COALESCE(production, '') AS production
		FROM soil_samples
		ORDER BY id`

	var samples []models.SoilSample
	if err := ps.db.SelectContext(ctx, &samples, query); err != nil {
		return nil, fmt.Errorf("failed to query soil samples: %w", err)
	}
	return samples, nil
}

const (
	insertProductionQuery = `INSERT INTO crop_production (state_name, district_name, season, crop)
		VALUES (:state_name, :district_name, :season, :crop)`
	insertSoilSampleQuery = `INSERT INTO soil_samples (nitrogen, phosphorous, potassium, temperature, humidity, moisture, soil_type, crop_type, production)
		VALUES (:nitrogen, :phosphorous, :potassium, :temperature, :humidity, :moisture, :soil_type, :crop_type, :production)`
)

// InsertProductionRecords добавляет записи пакетами в одной транзакции.
func (ps *PostgresStorage) InsertProductionRecords(ctx context.Context, records []models.ProductionRecord) error {
	return ps.insertBatches(ctx, "", insertProductionQuery, len(records), func(from, to int) interface{} {
		return records[from:to]
	})
}

// ReplaceProductionRecords заменяет содержимое crop_production в одной транзакции.
// Повторная загрузка того же набора не создает дубликатов.
func (ps *PostgresStorage) ReplaceProductionRecords(ctx context.Context, records []models.ProductionRecord) error {
	return ps.insertBatches(ctx, "crop_production", insertProductionQuery, len(records), func(from, to int) interface{} {
		return records[from:to]
	})
}

// InsertSoilSamples добавляет образцы почвы пакетами в одной транзакции.
func (ps *PostgresStorage) InsertSoilSamples(ctx context.Context, samples []models.SoilSample) error {
	return ps.insertBatches(ctx, "", insertSoilSampleQuery, len(samples), func(from, to int) interface{} {
		return samples[from:to]
	})
}

// ReplaceSoilSamples заменяет содержимое soil_samples в одной транзакции.
func (ps *PostgresStorage) ReplaceSoilSamples(ctx context.Context, samples []models.SoilSample) error {
	return ps.insertBatches(ctx, "soil_samples", insertSoilSampleQuery, len(samples), func(from, to int) interface{} {
		return samples[from:to]
	})
}

// insertBatches вставляет n строк пакетами; непустой clearTable очищается в той же транзакции.
func (ps *PostgresStorage) insertBatches(ctx context.Context, clearTable, query string, n int, batch func(from, to int) interface{}) error {
	if n == 0 && clearTable == "" {
		return nil
	}

	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if clearTable != "" {
		// DELETE вместо TRUNCATE: запрос должен работать и в SQLite
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+clearTable); err != nil {
			return fmt.Errorf("failed to clear %s: %w", clearTable, err)
		}
	}

	for from := 0; from < n; from += insertBatchSize {
		to := from + insertBatchSize
		if to > n {
			to = n
		}
		if _, err := tx.NamedExecContext(ctx, query, batch(from, to)); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d: %w", from, to, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
