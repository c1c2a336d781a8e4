package propertyindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Client talks to the property index collaborator
type Client interface {
	// SampleRandom fetches one randomly sampled point with its payload.
	// A nil point with a nil error is the valid "no data" outcome.
	SampleRandom(ctx context.Context) (*Point, error)
}

// HTTPClient is the HTTP implementation of Client. The base URL includes
// the collection path, e.g. http://localhost:6333/collections/default.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// PointID accepts both string and numeric point identifiers
type PointID string

// UnmarshalJSON decodes a string or number into the identifier
func (id *PointID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PointID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = PointID(n.String())
	return nil
}

// Point is one record in the index, with its flat attribute payload
type Point struct {
	ID      PointID        `json:"id"`
	Payload map[string]any `json:"payload"`
}

type pointsQueryRequest struct {
	Query       sampleQuery `json:"query"`
	Limit       int         `json:"limit"`
	WithPayload bool        `json:"with_payload"`
}

type sampleQuery struct {
	Sample string `json:"sample"`
}

type pointsQueryResponse struct {
	Result struct {
		Points []Point `json:"points"`
	} `json:"result"`
}

// NewClient creates a property index client
func NewClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "property-index",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// SampleRandom fetches one random point with payload
func (c *HTTPClient) SampleRandom(ctx context.Context) (*Point, error) {
	reqBody := pointsQueryRequest{
		Query:       sampleQuery{Sample: "random"},
		Limit:       1,
		WithPayload: true,
	}

	out := &pointsQueryResponse{}
	if err := c.doJSON(ctx, c.baseURL+"/points/query", reqBody, out); err != nil {
		return nil, err
	}

	if len(out.Result.Points) == 0 {
		return nil, nil
	}
	return &out.Result.Points[0], nil
}

func (c *HTTPClient) doJSON(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("property index returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}
