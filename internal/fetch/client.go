// Package fetch pulls court opinions from a CourtListener-style REST API
// to seed the text corpus used by dataset generation.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tactile-data/braillegen/internal/httputil"
	"github.com/tactile-data/braillegen/internal/monitoring"
	"github.com/tactile-data/braillegen/internal/timeutil"
)

// DefaultBaseURL is the CourtListener REST API root.
const DefaultBaseURL = "https://www.courtlistener.com/api/rest/v4"

// defaultDelay paces consecutive document fetches.
const defaultDelay = 500 * time.Millisecond

// Client talks to the documents API.
type Client struct {
	http    httputil.HTTPClient
	clock   timeutil.Clock
	baseURL string
	delay   time.Duration
}

// NewClient builds a Client. A nil httpClient uses the standard client; a
// nil clock uses the real one.
func NewClient(httpClient httputil.HTTPClient, clock timeutil.Clock, baseURL string) *Client {
	if httpClient == nil {
		httpClient = httputil.NewStandardClient(nil)
	}
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		clock:   clock,
		baseURL: baseURL,
		delay:   defaultDelay,
	}
}

// SearchResult is one hit from the search endpoint; only the cluster id is
// consumed downstream.
type SearchResult struct {
	ID int64 `json:"id"`
}

// Cluster is the case-level document grouping.
type Cluster struct {
	ID        int64  `json:"id"`
	CaseName  string `json:"case_name"`
	DateFiled string `json:"date_filed"`
	Court     struct {
		FullName string `json:"full_name"`
	} `json:"court"`
	Citations []struct {
		Cite string `json:"cite"`
	} `json:"citations"`
	SubOpinions []struct {
		ID int64 `json:"id"`
	} `json:"sub_opinions"`
}

// Opinion is the text payload of one opinion.
type Opinion struct {
	PlainText string `json:"plain_text"`
	HTML      string `json:"html"`
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", rawURL, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// Search fetches up to count case hits for the given court, newest first,
// optionally filtered by query.
func (c *Client) Search(ctx context.Context, court string, count int, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("court", court)
	params.Set("order_by", "dateFiled desc")
	params.Set("page_size", strconv.Itoa(count))
	if query != "" {
		params.Set("q", query)
	}

	var payload struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/search/?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// FetchCluster fetches a case cluster by id.
func (c *Client) FetchCluster(ctx context.Context, id int64) (*Cluster, error) {
	var cluster Cluster
	if err := c.getJSON(ctx, fmt.Sprintf("%s/clusters/%d/", c.baseURL, id), &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

// FetchOpinion fetches an opinion by id.
func (c *Client) FetchOpinion(ctx context.Context, id int64) (*Opinion, error) {
	var opinion Opinion
	if err := c.getJSON(ctx, fmt.Sprintf("%s/opinions/%d/", c.baseURL, id), &opinion); err != nil {
		return nil, err
	}
	return &opinion, nil
}

// FetchBatch walks the search results, resolving each hit to a full
// document. Per-document failures are logged and skipped so one bad case
// cannot abort the batch.
func (c *Client) FetchBatch(ctx context.Context, court string, count int, query string, hierarchy *ConceptHierarchy) ([]Document, error) {
	results, err := c.Search(ctx, court, count, query)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(results))
	for i, hit := range results {
		if i > 0 {
			c.clock.Sleep(c.delay)
		}

		cluster, err := c.FetchCluster(ctx, hit.ID)
		if err != nil {
			monitoring.Logf("skipping cluster %d: %v", hit.ID, err)
			continue
		}

		var opinion *Opinion
		if len(cluster.SubOpinions) > 0 {
			opinion, err = c.FetchOpinion(ctx, cluster.SubOpinions[0].ID)
			if err != nil {
				monitoring.Logf("cluster %d: opinion fetch failed: %v", cluster.ID, err)
			}
		}

		docs = append(docs, buildDocument(c.baseURL, cluster, opinion, hierarchy))
	}
	return docs, nil
}
