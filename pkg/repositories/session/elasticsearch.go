package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/blackjacklab/trainer/pkg/entities"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "trainer",
	}
}

// ElasticsearchRepository decorates a base repository: every write is
// delegated to the base store and additionally indexed in Elasticsearch
// for cross-session analysis. Reads always come from the base store.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	config   *ElasticsearchConfig
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "trainer"
	}

	repo := &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		config:   config,
	}

	if err := repo.initIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndices creates the round index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	index := r.roundIndex()
	res, err := r.client.Indices.Exists([]string{index})
	if err != nil {
		return fmt.Errorf("error checking if round index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 404 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"session_id": { "type": "keyword" },
				"completed_at": { "type": "date" },
				"dealer_cards": { "type": "keyword" },
				"dealer_total": { "type": "integer" },
				"running_count": { "type": "integer" },
				"true_count": { "type": "float" },
				"hands": {
					"type": "nested",
					"properties": {
						"cards": { "type": "keyword" },
						"bet": { "type": "long" },
						"outcome": { "type": "keyword" },
						"net": { "type": "long" },
						"from_split": { "type": "boolean" },
						"doubled_down": { "type": "boolean" }
					}
				}
			}
		}
	}`

	createRes, err := r.client.Indices.Create(index, r.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))))
	if err != nil {
		return fmt.Errorf("error creating round index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating round index: %s", createRes.String())
	}
	return nil
}

func (r *ElasticsearchRepository) roundIndex() string {
	return r.config.IndexPrefix + "_rounds"
}

// SaveRound stores the round in the base repository and indexes it
func (r *ElasticsearchRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	if err := r.baseRepo.SaveRound(ctx, record); err != nil {
		return err
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal round for indexing: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      r.roundIndex(),
		DocumentID: record.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index round: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index round: %s", res.String())
	}
	return nil
}

// GetSessionRounds delegates to the base repository
func (r *ElasticsearchRepository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	return r.baseRepo.GetSessionRounds(ctx, sessionID, limit)
}

// SaveStatistics delegates to the base repository
func (r *ElasticsearchRepository) SaveStatistics(ctx context.Context, stats *entities.SessionStatistics) error {
	return r.baseRepo.SaveStatistics(ctx, stats)
}

// GetStatistics delegates to the base repository
func (r *ElasticsearchRepository) GetStatistics(ctx context.Context, sessionID string) (*entities.SessionStatistics, error) {
	return r.baseRepo.GetStatistics(ctx, sessionID)
}

// ListStatistics delegates to the base repository
func (r *ElasticsearchRepository) ListStatistics(ctx context.Context) ([]*entities.SessionStatistics, error) {
	return r.baseRepo.ListStatistics(ctx)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
