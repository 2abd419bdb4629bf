package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Имена бэкендов в конфигурации.
const (
	BackendGoogle = "google"
	BackendGenAI  = "genai"
	BackendNone   = "none"
)

// DefaultGoogleURL - веб-эндпоинт Google Translate.
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// GoogleBackend переводит через веб-эндпоинт Google Translate (client=gtx).
type GoogleBackend struct {
	httpClient *http.Client
	endpoint   string
}

// NewGoogleBackend создает бэкенд; пустой endpoint означает DefaultGoogleURL.
func NewGoogleBackend(endpoint string) *GoogleBackend {
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}
	return &GoogleBackend{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
	}
}

// Translate выполняет GET запрос и собирает переведенные сегменты.
func (g *GoogleBackend) Translate(ctx context.Context, text, lang string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", SourceLang)
	q.Set("tl", lang)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	res, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to translate: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error translating: status %d", res.StatusCode)
	}

	// Ответ: [[["перевод","исходный",...], ...], ...]
	var body []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]interface{}
	if err := json.Unmarshal(body[0], &segments); err != nil {
		return "", fmt.Errorf("failed to decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	return sb.String(), nil
}

var languageNames = map[string]string{
	"hi": "Hindi",
	"bn": "Bengali",
	"mr": "Marathi",
	"ta": "Tamil",
}

// GenAIBackend переводит через модель Gemini.
type GenAIBackend struct {
	client *genai.Client
	model  string
}

// NewGenAIBackend создает клиента Gemini.
func NewGenAIBackend(ctx context.Context, apiKey, model string) (*GenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIBackend{client: client, model: model}, nil
}

// Translate запрашивает у модели только переведенный текст.
func (g *GenAIBackend) Translate(ctx context.Context, text, lang string) (string, error) {
	name, ok := languageNames[lang]
	if !ok {
		name = lang
	}
	prompt := fmt.Sprintf("Translate the following text from English to %s. Reply with the translation only.\n\n%s", name, text)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI translate failed: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("GenAI returned empty translation")
	}
	return out, nil
}

// NewBackend создает бэкенд по имени из конфигурации. Для BackendNone возвращает nil.
func NewBackend(ctx context.Context, name, apiKey, model string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendGoogle, "":
		return NewGoogleBackend(""), nil
	case BackendGenAI:
		b, err := NewGenAIBackend(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown translator backend %q", name)
	}
}
