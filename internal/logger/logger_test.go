package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(core)

	log.ErrorObj("API Error (GET /films): boom", "api_error", map[string]any{"method": "GET"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "API Error (GET /films): boom" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("unexpected level %s", entries[0].Level)
	}
	if _, ok := entries[0].ContextMap()["api_error"]; !ok {
		t.Fatalf("api_error field missing: %#v", entries[0].ContextMap())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestPackageHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	InfoObj("noop", "k", 1)
	ErrorObj("noop", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPackageHelpersWriteToProcessLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	S = zap.New(core).Sugar()
	t.Cleanup(func() { S = nil })

	DebugObj("dashboard starting", "config", map[string]any{"app_name": "mpc-dashboard"})
	InfoObj("api base url overridden", "api_base_url", "http://x/api")
	WarnObj("shutdown failed", "error", "close storage")
	ErrorObj("failed to initialize dashboard", "error", "boom")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, want := range wantLevels {
		if entries[i].Level != want {
			t.Fatalf("entry %d level = %s, want %s", i, entries[i].Level, want)
		}
	}
	if got := entries[1].ContextMap()["api_base_url"]; got != "http://x/api" {
		t.Fatalf("api_base_url = %v", got)
	}
}
