package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New("info", FormatJSON, &buf).Named("form")
	log.Debug("hidden")
	log.Info("branch transition", zap.String("to", "true"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %q", buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["msg"] != "branch transition" || entry["component"] != "form" || entry["to"] != "true" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNew_ConsoleDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New("debug", FormatConsole, &buf).Debug("list reset", zap.String("list", "languages"))
	if !strings.Contains(buf.String(), " | DEBUG | list reset") {
		t.Fatalf("unexpected console output %q", buf.String())
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	levels := map[string]zapcore.Level{
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range levels {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if format, err := ParseFormat("JSON"); err != nil || format != FormatJSON {
		t.Fatalf("ParseFormat(JSON) = %q, %v", format, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
