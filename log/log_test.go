package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.caller != DefaultCaller || l.pretty != DefaultPretty {
		t.Errorf("caller=%v pretty=%v, want defaults", l.caller, l.pretty)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Trace("trace")
	l.Info("info", slog.String("key", "value"))
	l.ErrorContext(t.Context(), "error")

	if l.Enabled(t.Context(), LevelError) {
		t.Error("zero Logger reports enabled")
	}

	if got := l.With(slog.Int("n", 1)); got.Logger != nil {
		t.Error("With on zero Logger returned a configured logger")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero Logger does not report defaults")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace below debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"debug at info", LevelInfo, func(l Logger) { l.Debug("msg") }, false},
		{"info at info", LevelInfo, func(l Logger) { l.Info("msg") }, true},
		{"warn at error", LevelError, func(l Logger) { l.Warn("msg") }, false},
		{"error at error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	l.With(slog.String("component", "eval")).
		TraceContext(t.Context(), "evaluate", slog.Int("depth", 2))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}

	want := map[string]any{
		"level":     "TRACE",
		"msg":       "evaluate",
		"component": "eval",
		"depth":     float64(2),
	}

	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %v", k, rec[k], v)
		}
	}

	if _, ok := rec["time"]; !ok {
		t.Error("missing time")
	}
}

func TestLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"))
	l.Info("compiled", slog.String("text", "(u) => u"), slog.Bool("ok", true))

	want := "level=INFO msg=compiled text=(u) => u ok=true\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_PrettyGroups(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout(""))
	l.With(slog.String("cmd", "eval")).Warn("failed",
		slog.Group("node", slog.String("kind", "Member"), slog.Int("depth", 1)))

	want := "level=WARN msg=failed cmd=eval node.kind=Member node.depth=1\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("source does not name the caller: %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	l := Make(&first, WithLevel(LevelWarn))
	w := l.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	w.Debug("wrapped")
	l.Debug("original")

	if first.Len() != 0 {
		t.Errorf("original logger wrote %q", first.String())
	}

	if !strings.Contains(second.String(), "wrapped") {
		t.Errorf("wrapped logger wrote %q", second.String())
	}

	if l.Level() != LevelWarn {
		t.Errorf("Wrap changed the original level to %v", l.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" Info ", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name := range Formats() {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q) = %q", name, got)
		}
	}

	if got := ParseFormat("xml"); got != DefaultFormat {
		t.Errorf("ParseFormat(xml) = %v, want %v", got, DefaultFormat)
	}
}

func TestLevels(t *testing.T) {
	got := slices.Collect(Levels())
	want := []string{"trace", "debug", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestTimeLayoutOf(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"RFC3339Nano", "2006-01-02T15:04:05.999999999Z07:00"},
		{"stamp-milli", "Jan _2 15:04:05.000"},
		{"kitchen", "3:04PM"},
		{"none", ""},
		{"  ", ""},
		{"2006/01/02", "2006/01/02"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := timeLayoutOf(tt.in); got != tt.want {
				t.Errorf("timeLayoutOf(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackageFunctions(t *testing.T) {
	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithFormat(FormatJSON)))
	Config(WithLevel(LevelDebug))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) ||
				!strings.Contains(out, `"key":"value"`) {
				t.Errorf("unexpected record %q", out)
			}
		})
	}

	buf.Reset()
	Trace("hidden")

	if buf.Len() != 0 {
		t.Errorf("trace logged below configured level: %q", buf.String())
	}
}
