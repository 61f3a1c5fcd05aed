package notify

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "notifiers.yaml", `
notifiers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: queue
    type: SQS
    sqs:
      uri: " https://sqs.us-east-1.amazonaws.com/1/pages "
      region: us-east-1
      endpoint: http://localhost:4566
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "queue" {
		t.Fatalf("expected only queue enabled, got %#v", enabled)
	}
	q := enabled[0]
	if q.Type != TypeSQS {
		t.Fatalf("type should be normalized, got %q", q.Type)
	}
	if q.SQS.QueueURL != "https://sqs.us-east-1.amazonaws.com/1/pages" || q.SQS.Endpoint != "http://localhost:4566" {
		t.Fatalf("unexpected sqs config %#v", q.SQS)
	}

	h, ok := reg.ByID("http1")
	if !ok || h.HTTP.Method != httpDefaultMethod || h.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", h.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "notifiers.json", `{"notifiers":[{"id":"topic","type":"sns","sns":{"topic_arn":"arn:aws:sns:eu-west-1:1:pages","region":"eu-west-1","access_key_id":"AK","secret_access_key":"SK"}}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("topic")
	if !ok {
		t.Fatalf("topic not found")
	}
	if cfg.SNS.Region != "eu-west-1" || cfg.SNS.AccessKeyID != "AK" {
		t.Fatalf("unexpected sns config %#v", cfg.SNS)
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "notifiers.yaml", `
notifiers:
  - id: a
    type: http
    http: {url: https://example.com}
  - id: a
    type: http
    http: {url: https://example.com/2}
`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadRegistryErrors(t *testing.T) {
	if _, err := LoadRegistry("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadRegistry(writeFile(t, "bad.json", "{not json")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateSinkConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  SinkConfig
	}{
		{name: "missing id", cfg: SinkConfig{Type: TypeHTTP}},
		{name: "missing type", cfg: SinkConfig{ID: "x"}},
		{name: "missing http", cfg: SinkConfig{ID: "h1", Type: TypeHTTP}},
		{name: "missing sqs region", cfg: SinkConfig{ID: "q", Type: TypeSQS, SQS: &SQSSinkConfig{QueueURL: "u"}}},
		{name: "missing sns topic", cfg: SinkConfig{ID: "s", Type: TypeSNS, SNS: &SNSSinkConfig{AWSAccess: AWSAccess{Region: "r"}}}},
		{name: "missing pubsub topic", cfg: SinkConfig{ID: "p", Type: TypePubSub, PubSub: &PubSubSinkConfig{ProjectID: "proj"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateSinkConfig(tt.cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
