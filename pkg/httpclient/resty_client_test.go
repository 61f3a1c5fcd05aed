package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsMethodHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("Content-Type = %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if string(raw) != `{"a":1}` {
			t.Fatalf("unexpected body %q", raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Do(context.Background(), Request{
		Method:  "post",
		URL:     srv.URL + "/things",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{"a":1}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("Body = %q", resp.Body())
	}
	if resp.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("Header missing content type: %#v", resp.Header())
	}
}

func TestRestyClientReturnsNon2xxWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(0).Do(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
}

func TestRestyClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewRestyClient(time.Second).Do(context.Background(), Request{URL: url}); err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}
