package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}
	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}
	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	logger.Error("nothing happens")
	logger = logger.With(slog.String("key", "value"))

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger reports enabled")
	}
	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", logger.Level())
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}
		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
		if result["level"] != "INFO" {
			t.Errorf("expected level=INFO, got %v", result["level"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatText))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, "test message") {
			t.Error("message not found in text output")
		}
		if !strings.Contains(output, "key=value") {
			t.Error("key=value not found in text output")
		}
	})
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", (Logger).Trace, LevelTrace, true},
		{"trace at debug", (Logger).Trace, LevelDebug, false},
		{"debug at debug", (Logger).Debug, LevelDebug, true},
		{"debug at info", (Logger).Debug, LevelInfo, false},
		{"info at warn", (Logger).Info, LevelWarn, false},
		{"warn at warn", (Logger).Warn, LevelWarn, true},
		{"error at debug", (Logger).Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "test message")

			if (buf.Len() > 0) != tt.logged {
				t.Errorf("expected logged=%v, got output length=%d", tt.logged, buf.Len())
			}
		})
	}
}

func TestLogger_Trace_LevelName(t *testing.T) {
	var buf bytes.Buffer
	Make(&buf, WithLevel(LevelTrace)).Trace("deep")

	if !strings.Contains(buf.String(), `"level":"TRACE"`) {
		t.Errorf("expected TRACE level, got: %s", buf.String())
	}
}

func TestLogger_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   bool
	}{
		{"rfc3339", "RFC3339", true},
		{"kitchen", "Kitchen", true},
		{"none", "none", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Make(&buf, WithTimeLayout(tt.layout)).Info("x")

			if got := strings.Contains(buf.String(), `"time"`); got != tt.want {
				t.Errorf("time present = %v, want %v: %s", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	Make(&buf, WithCaller(true)).Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller info does not point at the call site: %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false)).Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_Wrap_KeepsBaseConfig(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelWarn))
	wrapped := base.Wrap(WithFormat(FormatText))

	if wrapped.Level() != LevelWarn {
		t.Errorf("expected wrapped level warn, got %v", wrapped.Level())
	}
	if wrapped.Format() != FormatText {
		t.Errorf("expected wrapped format text, got %v", wrapped.Format())
	}
	if base.Format() != FormatJSON {
		t.Error("wrap mutated the base logger")
	}
}

func TestLogger_Pretty(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithPretty(true), WithFormat(format)).
				With(slog.String("chunk", "main"))
			logger.Warn("volume clamped", slog.Int("volume", 100))

			out := buf.String()
			for _, want := range []string{"volume clamped", "chunk", "main", "100", colorYellow} {
				if !strings.Contains(out, want) {
					t.Errorf("pretty output missing %q: %q", want, out)
				}
			}
		})
	}
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var buf syncBuffer
	logger := Make(&buf)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("concurrent message", slog.Int("id", id))
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
