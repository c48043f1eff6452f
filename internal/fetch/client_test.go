package fetch

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/tactile-data/braillegen/internal/httputil"
	"github.com/tactile-data/braillegen/internal/timeutil"
)

const searchBody = `{"results":[{"id":101},{"id":102}]}`

const cluster101 = `{
	"id": 101,
	"case_name": "Smith v. Jones",
	"date_filed": "2024-01-15",
	"court": {"full_name": "Supreme Court of the United States"},
	"citations": [{"cite": "601 U.S. 1"}],
	"sub_opinions": [{"id": 201}]
}`

const opinion201 = `{"plain_text": "The judgment is affirmed.", "html": ""}`

func newTestClient(t *testing.T) (*Client, *httputil.MockHTTPClient, *timeutil.MockClock) {
	t.Helper()
	mock := httputil.NewMockHTTPClient()
	clock := timeutil.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewClient(mock, clock, "https://api.test/v4"), mock, clock
}

func TestSearch(t *testing.T) {
	client, mock, _ := newTestClient(t)
	mock.AddResponse(http.StatusOK, searchBody)

	results, err := client.Search(context.Background(), "scotus", 2, "braille")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 || results[0].ID != 101 || results[1].ID != 102 {
		t.Errorf("unexpected results: %+v", results)
	}

	req := mock.GetRequest(0)
	if req == nil {
		t.Fatal("no request recorded")
	}
	q := req.URL.Query()
	if q.Get("court") != "scotus" {
		t.Errorf("court param = %q", q.Get("court"))
	}
	if q.Get("order_by") != "dateFiled desc" {
		t.Errorf("order_by param = %q", q.Get("order_by"))
	}
	if q.Get("page_size") != "2" {
		t.Errorf("page_size param = %q", q.Get("page_size"))
	}
	if q.Get("q") != "braille" {
		t.Errorf("q param = %q", q.Get("q"))
	}
}

func TestFetchClusterErrorStatus(t *testing.T) {
	client, mock, _ := newTestClient(t)
	mock.AddResponse(http.StatusNotFound, `{"detail":"not found"}`)

	if _, err := client.FetchCluster(context.Background(), 999); err == nil {
		t.Error("expected an error for a 404 response")
	}
}

func TestFetchBatch(t *testing.T) {
	client, mock, clock := newTestClient(t)
	mock.AddResponse(http.StatusOK, searchBody)
	mock.AddResponse(http.StatusOK, cluster101)
	mock.AddResponse(http.StatusOK, opinion201)
	// Second hit: cluster fetch fails and the batch carries on.
	mock.AddResponse(http.StatusInternalServerError, "boom")

	docs, err := client.FetchBatch(context.Background(), "scotus", 2, "", &ConceptHierarchy{})
	if err != nil {
		t.Fatalf("FetchBatch: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}

	doc := docs[0]
	if doc.Metadata.Title != "Smith v. Jones" {
		t.Errorf("title = %q", doc.Metadata.Title)
	}
	if doc.Metadata.Court != "Supreme Court of the United States" {
		t.Errorf("court = %q", doc.Metadata.Court)
	}
	if doc.Metadata.Citation != "601 U.S. 1" {
		t.Errorf("citation = %q", doc.Metadata.Citation)
	}
	if doc.Metadata.SourceURL != "https://api.test/v4/clusters/101/" {
		t.Errorf("source url = %q", doc.Metadata.SourceURL)
	}
	if doc.Text != "The judgment is affirmed." {
		t.Errorf("text = %q", doc.Text)
	}

	// Consecutive hits are paced; the first needs no delay.
	sleeps := clock.Sleeps()
	if len(sleeps) != 1 {
		t.Fatalf("got %d sleeps, want 1", len(sleeps))
	}
	if sleeps[0] != defaultDelay {
		t.Errorf("sleep = %v, want %v", sleeps[0], defaultDelay)
	}
}

func TestFetchBatchSearchFailure(t *testing.T) {
	client, mock, _ := newTestClient(t)
	mock.AddResponse(http.StatusServiceUnavailable, "down")

	if _, err := client.FetchBatch(context.Background(), "scotus", 2, "", nil); err == nil {
		t.Error("expected the batch to fail when search fails")
	}
}

func TestBuildDocumentFallbacks(t *testing.T) {
	doc := buildDocument("https://api.test/v4", &Cluster{ID: 7}, nil, nil)
	if doc.Metadata.Title != "Unknown Case" {
		t.Errorf("title = %q, want Unknown Case", doc.Metadata.Title)
	}
	if doc.Metadata.Court != "Unknown Court" {
		t.Errorf("court = %q, want Unknown Court", doc.Metadata.Court)
	}
	if doc.Metadata.Jurisdiction != "United States" {
		t.Errorf("jurisdiction = %q", doc.Metadata.Jurisdiction)
	}
}

func TestBuildDocumentStripsHTML(t *testing.T) {
	opinion := &Opinion{HTML: "<p>The judgment is <em>affirmed</em>.</p>"}
	doc := buildDocument("https://api.test/v4", &Cluster{ID: 7, CaseName: "X v. Y"}, opinion, nil)
	if doc.Text != "The judgment is affirmed." {
		t.Errorf("text = %q", doc.Text)
	}
}
