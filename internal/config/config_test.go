package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no transport timeout by default, got %s", cfg.HTTPTimeout)
	}
	if cfg.PagesTTL != 30*24*time.Hour {
		t.Fatalf("PagesTTL = %s", cfg.PagesTTL)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://pagila.example.com/api/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "15")
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://pagila.example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("StorageType = %q", cfg.StorageType)
	}
}

func TestFinalizeRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "relative base url",
			cfg:  Config{APIBaseURL: "/api", PagesTTLSeconds: 1, PagesCleanupSeconds: 1},
		},
		{
			name: "unsupported scheme",
			cfg:  Config{APIBaseURL: "ftp://example.com/api", PagesTTLSeconds: 1, PagesCleanupSeconds: 1},
		},
		{
			name: "negative timeout",
			cfg:  Config{APIBaseURL: DefaultAPIBaseURL, HTTPTimeoutSeconds: -1, PagesTTLSeconds: 1, PagesCleanupSeconds: 1},
		},
		{
			name: "zero ttl",
			cfg:  Config{APIBaseURL: DefaultAPIBaseURL, PagesCleanupSeconds: 1},
		},
		{
			name: "unknown log format",
			cfg:  Config{APIBaseURL: DefaultAPIBaseURL, LogFormat: "xml", PagesTTLSeconds: 1, PagesCleanupSeconds: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := finalize(&cfg); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestWithAPIBaseURLDoesNotMutateOriginal(t *testing.T) {
	orig := Config{APIBaseURL: DefaultAPIBaseURL}
	next, err := orig.WithAPIBaseURL("http://x/api")
	if err != nil {
		t.Fatalf("WithAPIBaseURL: %v", err)
	}
	if next.APIBaseURL != "http://x/api" {
		t.Fatalf("APIBaseURL = %q", next.APIBaseURL)
	}
	if orig.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("original config mutated: %q", orig.APIBaseURL)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:3001/api", want: "http://localhost:3001/api"},
		{in: "http://localhost:3001/api/", want: "http://localhost:3001/api"},
		{in: " https://pagila.example.com/api// ", want: "https://pagila.example.com/api"},
		{in: "http://localhost:3001", want: "http://localhost:3001"},
		{in: "/api", wantErr: true},
		{in: "localhost:3001/api", wantErr: true},
		{in: "ftp://example.com/api", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := normalizeBaseURL(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("normalizeBaseURL(%q) = %q, expected error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("normalizeBaseURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("normalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
