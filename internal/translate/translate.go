// Package translate переводит названия культур и сообщения на язык интерфейса.
// Переводы кэшируются в памяти процесса и, при наличии, в постоянном хранилище.
// При ошибке бэкенда возвращается исходный текст.
package translate

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SourceLang - язык исходных текстов.
const SourceLang = "en"

// Backend выполняет один запрос перевода.
type Backend interface {
	Translate(ctx context.Context, text, lang string) (string, error)
}

// Store - постоянный кэш переводов.
type Store interface {
	Get(ctx context.Context, lang, text string) (string, bool, error)
	Put(ctx context.Context, lang, text, translated string) error
}

type cacheKey struct {
	lang string
	text string
}

// Service переводит тексты с кэшированием и объединением одинаковых параллельных запросов.
type Service struct {
	backend Backend
	store   Store
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[cacheKey]string
	group singleflight.Group
}

// NewService создает сервис перевода. backend и store могут быть nil:
// без бэкенда тексты возвращаются без изменений.
func NewService(backend Backend, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend: backend,
		store:   store,
		logger:  logger,
		cache:   make(map[cacheKey]string),
	}
}

// Translate возвращает перевод text на язык lang.
// Для en и пустого языка текст возвращается как есть; ошибки бэкенда не кэшируются.
func (s *Service) Translate(ctx context.Context, text, lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == SourceLang || strings.TrimSpace(text) == "" || s.backend == nil {
		return text
	}

	key := cacheKey{lang: lang, text: text}
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	v, err, _ := s.group.Do(lang+"\x00"+text, func() (interface{}, error) {
		return s.lookup(ctx, key)
	})
	if err != nil {
		s.logger.Debug("translation failed, using original text",
			zap.String("lang", lang), zap.String("text", text), zap.Error(err))
		return text
	}
	return v.(string)
}

// TranslateAll переводит список текстов, сохраняя порядок.
func (s *Service) TranslateAll(ctx context.Context, texts []string, lang string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = s.Translate(ctx, t, lang)
	}
	return out
}

func (s *Service) lookup(ctx context.Context, key cacheKey) (string, error) {
	if s.store != nil {
		translated, ok, err := s.store.Get(ctx, key.lang, key.text)
		if err != nil {
			s.logger.Warn("translation cache read failed", zap.Error(err))
		} else if ok {
			s.remember(key, translated)
			return translated, nil
		}
	}

	translated, err := s.backend.Translate(ctx, key.text, key.lang)
	if err != nil {
		return "", err
	}

	s.remember(key, translated)
	if s.store != nil {
		if err := s.store.Put(ctx, key.lang, key.text, translated); err != nil {
			s.logger.Warn("translation cache write failed", zap.Error(err))
		}
	}
	return translated, nil
}

func (s *Service) remember(key cacheKey, translated string) {
	s.mu.Lock()
	s.cache[key] = translated
	s.mu.Unlock()
}
