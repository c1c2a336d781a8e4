package semanticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
)

// Client talks to the semantic search collaborator
type Client interface {
	// Search runs one natural-language comparable search
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
}

// HTTPClient is the HTTP implementation of Client
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// SearchRequest is one outbound search. Filters carry only the non-absent
// structured entries; Weights always carries the full vector. The payload
// is flat: filter and weight parameters sit next to the base fields.
type SearchRequest struct {
	NaturalQuery string
	Limit        int
	IDsExclude   []string
	Filters      []entities.FilterEntry
	Weights      entities.WeightVector
}

// MarshalJSON flattens the request into the wire shape the search service
// expects.
func (r *SearchRequest) MarshalJSON() ([]byte, error) {
	payload := map[string]any{
		"natural_query": r.NaturalQuery,
		"limit":         r.Limit,
		"ids_exclude":   r.IDsExclude,
	}
	for _, entry := range r.Filters {
		payload[entry.Key] = entry.Value
	}
	for key, value := range r.Weights {
		payload[key] = value
	}
	return json.Marshal(payload)
}

// Entry is one ranked result from the search service
type Entry struct {
	ID       string         `json:"id"`
	Fields   map[string]any `json:"fields"`
	Metadata *EntryMetadata `json:"metadata,omitempty"`
}

// EntryMetadata carries the per-entry relevance score
type EntryMetadata struct {
	Score float64 `json:"score"`
}

// Metadata echoes the parameters the service resolved for the query,
// including filters it detected from the free text.
type Metadata struct {
	SearchParams map[string]any `json:"search_params"`
}

// SearchResponse is the service's ranked result set
type SearchResponse struct {
	Entries  []Entry  `json:"entries"`
	Metadata Metadata `json:"metadata"`
}

// NewClient creates a semantic search client
func NewClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "semantic-search",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Search runs one natural-language comparable search
func (c *HTTPClient) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	out := &SearchResponse{}
	_, err = c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search/property", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-include-metadata", "True")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("semantic search returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
