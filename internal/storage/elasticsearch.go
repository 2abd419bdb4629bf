// Package storage содержит реализации хранилищ табличных данных: Elasticsearch/OpenSearch,
// PostgreSQL и SQLite кэш переводов.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/akozadaev/agriguru/internal/models"
)

const (
	bulkChunkSize = 1000
	searchPage    = 1000
)

// productionDoc - документ индекса записей производства.
// Seq сохраняет исходный порядок строк для выборки в порядке первого появления.
type productionDoc struct {
	Seq          int    `json:"seq"`
	StateName    string `json:"state_name"`
	DistrictName string `json:"district_name"`
	Season       string `json:"season"`
	Crop         string `json:"crop"`
}

// ElasticsearchStorage предоставляет методы для работы с индексом записей производства.
// Использует прямые HTTP запросы для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Имя индекса записей производства
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
}

// NewElasticsearchStorageWithURL создает новый экземпляр ElasticsearchStorage с указанным URL.
func NewElasticsearchStorageWithURL(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// NewElasticsearchStorage создает клиента и хранилище для указанного URL.
func NewElasticsearchStorage(baseURL, index string) (*ElasticsearchStorage, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{baseURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return NewElasticsearchStorageWithURL(client, index, baseURL), nil
}

// CreateIndex создает индекс с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, mappingJSON string) error {
	res, err := es.client.Indices.Exists([]string{es.index}, es.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = es.client.Indices.Create(
		es.index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// BulkIndexRecords индексирует записи производства пакетами через Bulk API
// и обновляет индекс. Идентификатор документа - порядковый номер записи.
func (es *ElasticsearchStorage) BulkIndexRecords(ctx context.Context, records []models.ProductionRecord) error {
	for from := 0; from < len(records); from += bulkChunkSize {
		to := from + bulkChunkSize
		if to > len(records) {
			to = len(records)
		}
		if err := es.bulk(ctx, from, records[from:to]); err != nil {
			return err
		}
	}

	req := esapi.IndicesRefreshRequest{Index: []string{es.index}}
	res, err := req.Do(ctx, es.client)
	if err != nil {
		return fmt.Errorf("failed to refresh index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error refreshing index: %s", string(body))
	}
	return nil
}

func (es *ElasticsearchStorage) bulk(ctx context.Context, offset int, records []models.ProductionRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for i, rec := range records {
		seq := offset + i
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": es.index,
				"_id":    fmt.Sprintf("%d", seq),
			},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		doc := productionDoc{
			Seq:          seq,
			StateName:    rec.State,
			DistrictName: rec.District,
			Season:       rec.Season,
			Crop:         rec.Crop,
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	// Используем прямой HTTP запрос для обхода проверки типа сервера
	url := fmt.Sprintf("%s/_bulk", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("error bulk indexing: some documents were rejected")
	}
	return nil
}

// LoadProductionRecords читает все записи индекса в исходном порядке.
// Постраничная выборка выполняется через search_after по полю seq.
func (es *ElasticsearchStorage) LoadProductionRecords(ctx context.Context) ([]models.ProductionRecord, error) {
	var records []models.ProductionRecord
	var after []interface{}

	for {
		query := map[string]interface{}{
			"size":  searchPage,
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
			"sort": []map[string]interface{}{
				{"seq": map[string]interface{}{"order": "asc"}},
			},
		}
		if after != nil {
			query["search_after"] = after
		}

		hits, err := es.search(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(hits) == 0 {
			break
		}

		for _, hit := range hits {
			if hit.Source.Crop == "" {
				continue
			}
			records = append(records, models.ProductionRecord{
				State:    hit.Source.StateName,
				District: hit.Source.DistrictName,
				Season:   hit.Source.Season,
				Crop:     hit.Source.Crop,
			})
		}
		after = hits[len(hits)-1].Sort
		if len(hits) < searchPage {
			break
		}
	}

	return records, nil
}

type searchHit struct {
	Source productionDoc `json:"_source"`
	Sort   []interface{} `json:"sort"`
}

func (es *ElasticsearchStorage) search(ctx context.Context, query map[string]interface{}) ([]searchHit, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", es.baseURL, es.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error searching: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Hits struct {
			Hits []searchHit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Hits.Hits, nil
}
