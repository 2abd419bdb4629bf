package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const translationSchema = `
CREATE TABLE IF NOT EXISTS translations (
	lang       TEXT NOT NULL,
	source     TEXT NOT NULL,
	translated TEXT NOT NULL,
	PRIMARY KEY (lang, source)
);
`

// TranslationStore хранит переводы в файле SQLite между запусками процесса.
type TranslationStore struct {
	db *sqlx.DB
}

// OpenTranslationStore открывает (или создает) файл кэша переводов.
func OpenTranslationStore(ctx context.Context, path string) (*TranslationStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation cache: %w", err)
	}
	// SQLite не допускает параллельных писателей
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, translationSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create translation cache schema: %w", err)
	}
	return &TranslationStore{db: db}, nil
}

// Get возвращает сохраненный перевод. ok=false, если перевода нет.
func (s *TranslationStore) Get(ctx context.Context, lang, text string) (string, bool, error) {
	var translated string
	err := s.db.GetContext(ctx, &translated,
		`SELECT translated FROM translations WHERE lang = ? AND source = ?`, lang, text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read translation: %w", err)
	}
	return translated, true, nil
}

// Put сохраняет перевод, заменяя существующий.
func (s *TranslationStore) Put(ctx context.Context, lang, text, translated string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (lang, source, translated) VALUES (?, ?, ?)
		ON CONFLICT (lang, source) DO UPDATE SET translated = excluded.translated`,
		lang, text, translated)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// Close закрывает файл кэша.
func (s *TranslationStore) Close() error {
	return s.db.Close()
}
