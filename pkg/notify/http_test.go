package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSinkSuccess(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if v := r.Header.Get("X-Test"); v != "1" {
			t.Errorf("missing header, got %s", v)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{
			URL:            srv.URL,
			Method:         http.MethodPost,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	if err := sink.Send(context.Background(), NewPageGenerated("p1", "d", "films", "", nil)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.PageName != "p1" || got.Type != EventPageGenerated {
		t.Fatalf("server received %#v", got)
	}
}

func TestHTTPSinkErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: srv.URL},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	if err := sink.Send(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestHTTPSinkRequiresConfig(t *testing.T) {
	if _, err := newHTTPSink(context.Background(), SinkConfig{ID: "hook", Type: TypeHTTP}, nil); err == nil {
		t.Fatalf("expected error for missing http block")
	}
}
