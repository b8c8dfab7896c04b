package network

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"

	"deckprobe/internal/config"
)

func TestGetDeflate(t *testing.T) {
	const payload = "compressed content"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write([]byte(payload)); err != nil {
			t.Fatalf("failed to write deflate payload: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("failed to close deflate writer: %v", err)
		}

		w.Header().Set("Content-Encoding", "deflate")
		if _, err := w.Write(buf.Bytes()); err != nil {
			t.Fatalf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client, err := NewClient(config.Config{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if string(resp.Body) != payload {
		t.Fatalf("unexpected content: got %q want %q", resp.Body, payload)
	}
}

func TestGetBrotli(t *testing.T) {
	const payload = "brotli compressed content"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		if _, err := bw.Write([]byte(payload)); err != nil {
			t.Fatalf("failed to write brotli payload: %v", err)
		}
		if err := bw.Close(); err != nil {
			t.Fatalf("failed to close brotli writer: %v", err)
		}

		w.Header().Set("Content-Encoding", "br")
		if _, err := w.Write(buf.Bytes()); err != nil {
			t.Fatalf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client, err := NewClient(config.Config{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if string(resp.Body) != payload {
		t.Fatalf("unexpected content: got %q want %q", resp.Body, payload)
	}
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %q", got)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["prompt"] != "five slides on Go" {
			t.Fatalf("unexpected prompt: %v", body["prompt"])
		}

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := NewClient(config.Config{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	resp, err := client.PostJSON(context.Background(), server.URL, map[string]any{"prompt": "five slides on Go"})
	if err != nil {
		t.Fatalf("PostJSON returned error: %v", err)
	}

	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusAccepted)
	}
}

func TestGetInsecureTLS(t *testing.T) {
	const payload = "secure content"

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(payload)); err != nil {
			t.Fatalf("failed to write TLS response: %v", err)
		}
	}))
	defer server.Close()

	strict, err := NewClient(config.Config{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := strict.Get(context.Background(), server.URL); err == nil {
		t.Fatalf("expected TLS verification error without --insecure")
	}

	insecure, err := NewClient(config.Config{Insecure: true})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := insecure.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error with --insecure: %v", err)
	}

	if string(resp.Body) != payload {
		t.Fatalf("unexpected content: got %q want %q", resp.Body, payload)
	}
}
