package logger

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestRedactSensitive_SensitiveKeyName(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("connecting", "password", "hunter2", "auth_header", "Bearer abc", "addr", "127.0.0.1:9090")

	entry := decodeEntry(t, &buf)
	for _, key := range []string{"password", "auth_header"} {
		if entry[key] != redactedValue {
			t.Errorf("%s = %v, want %q", key, entry[key], redactedValue)
		}
	}
	if entry["addr"] != "127.0.0.1:9090" {
		t.Errorf("addr = %v, should not be redacted", entry["addr"])
	}
}

func TestRedactSensitive_EmptyValue(t *testing.T) {
	a := redactSensitive(slog.String("token", ""))
	if a.Value.String() != "" {
		t.Errorf("empty value should stay empty, got %q", a.Value.String())
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	a := redactSensitive(slog.Group("metrics", slog.String("secret", "s3cr3t"), slog.Int("port", 9090)))

	attrs := a.Value.Group()
	if len(attrs) != 2 {
		t.Fatalf("group has %d attrs, want 2", len(attrs))
	}
	if attrs[0].Value.String() != redactedValue {
		t.Errorf("nested secret = %q, want redacted", attrs[0].Value.String())
	}
	if attrs[1].Value.Int64() != 9090 {
		t.Errorf("nested port = %v, want 9090", attrs[1].Value)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"API_TOKEN", true},
		{"client_secret", true},
		{"handle_id", false},
		{"pending", false},
		{"grace_period", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
