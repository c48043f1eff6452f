package httputil

import (
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestMockHTTPClientQueuedResponses(t *testing.T) {
	mock := NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, "first").
		AddResponse(http.StatusNotFound, "second")

	resp, err := mock.Get("http://example.com/a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "first" {
		t.Errorf("got (%d, %q), want (200, first)", resp.StatusCode, body)
	}

	resp, err = mock.Get("http://example.com/b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second response status = %d, want 404", resp.StatusCode)
	}

	// Exhausted queue falls back to an empty 200.
	resp, err = mock.Get("http://example.com/c")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("fallback status = %d, want 200", resp.StatusCode)
	}

	if mock.RequestCount() != 3 {
		t.Errorf("request count = %d, want 3", mock.RequestCount())
	}
	if req := mock.GetRequest(1); req == nil || req.URL.Path != "/b" {
		t.Errorf("recorded request 1 = %v", req)
	}
	if mock.GetRequest(99) != nil {
		t.Error("out-of-range request lookup should return nil")
	}
}

func TestMockHTTPClientErrors(t *testing.T) {
	mock := NewMockHTTPClient()
	mock.AddErrorResponse(errors.New("connection refused"))
	if _, err := mock.Get("http://example.com"); err == nil {
		t.Error("expected the queued error")
	}

	mock = NewMockHTTPClient()
	mock.DefaultError = errors.New("offline")
	if _, err := mock.Get("http://example.com"); err == nil {
		t.Error("expected the default error")
	}
}

func TestMockHTTPClientDoFunc(t *testing.T) {
	mock := NewMockHTTPClient()
	mock.DoFunc = func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("custom: " + req.URL.Host)
	}

	_, err := mock.Get("http://custom.test")
	if err == nil || err.Error() != "custom: custom.test" {
		t.Errorf("DoFunc not used: %v", err)
	}
}

func TestNewStandardClientDefaults(t *testing.T) {
	c := NewStandardClient(nil)
	if c.Client != http.DefaultClient {
		t.Error("nil client should fall back to http.DefaultClient")
	}
}
