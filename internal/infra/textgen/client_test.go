package textgen_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spotter-app/spotter/internal/domain"
	"github.com/spotter-app/spotter/internal/infra/textgen"
)

func testRequest() domain.MessageRequest {
	return domain.MessageRequest{
		UserName: "Sam",
		Event:    domain.EventSlacking,
		Severity: domain.SeveritySevere,
		Seed:     "ev-1",
	}
}

func TestNew_DisabledReturnsNil(t *testing.T) {
	if c := textgen.New(textgen.Config{Enabled: false}); c != nil {
		t.Error("disabled config must return a nil client")
	}
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Get back in there, Sam."}},
			},
		})
	}))
	defer srv.Close()

	c := textgen.New(textgen.Config{Enabled: true, Endpoint: srv.URL, Model: "test", TimeoutS: 2})
	text, err := c.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "Get back in there, Sam." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := textgen.New(textgen.Config{Enabled: true, Endpoint: srv.URL, Model: "test", TimeoutS: 2})
	if _, err := c.Generate(context.Background(), testRequest()); err == nil {
		t.Error("expected error on 503")
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	c := textgen.New(textgen.Config{Enabled: true, Endpoint: srv.URL, Model: "test", TimeoutS: 2})
	if _, err := c.Generate(context.Background(), testRequest()); err == nil {
		t.Error("expected error on empty choices")
	}
}

func TestGenerate_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection; otherwise the
		// client's disconnect is never noticed and Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := textgen.New(textgen.Config{Enabled: true, Endpoint: srv.URL, Model: "test", TimeoutS: 10})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Generate(ctx, testRequest()); err == nil {
		t.Error("expected timeout error")
	}
}
