package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

func TestLineHandler(t *testing.T) {
	tests := []struct {
		name   string
		format string
		log    func(l *slog.Logger)
		want   string
	}{
		{
			name:   "default format without extras",
			format: DefaultLineFormat,
			log:    func(l *slog.Logger) { l.Info("hello") },
			want:   "[INFO] hello\n",
		},
		{
			name:   "extras are JSON encoded",
			format: DefaultLineFormat,
			log:    func(l *slog.Logger) { l.Warn("hello", "count", 3, "name", "x", "ok", true) },
			want:   "[WARNING] hello count=3 name=\"x\" ok=true\n",
		},
		{
			name:   "quoted message",
			format: "{quotedmessage}",
			log:    func(l *slog.Logger) { l.Info(`say "hi"`) },
			want:   `"say \"hi\""` + "\n",
		},
		{
			name:   "formatted extra alias",
			format: "{message}|{formattedextra}",
			log:    func(l *slog.Logger) { l.Error("failed", "err", errors.New("boom")) },
			want:   "failed|err=\"boom\"\n",
		},
		{
			name:   "groups qualify keys",
			format: DefaultLineFormat,
			log: func(l *slog.Logger) {
				l.WithGroup("db").With("host", "h").Info("m", "port", 5)
			},
			want: "[INFO] m db.host=\"h\" db.port=5\n",
		},
		{
			name:   "inline group",
			format: DefaultLineFormat,
			log:    func(l *slog.Logger) { l.Info("m", slog.Group("req", "id", 1)) },
			want:   "[INFO] m req.id=1\n",
		},
		{
			name:   "unknown placeholder is literal",
			format: "{foo} {message}",
			log:    func(l *slog.Logger) { l.Info("m") },
			want:   "{foo} m\n",
		},
		{
			name:   "unterminated brace is literal",
			format: "{message} {level",
			log:    func(l *slog.Logger) { l.Info("m") },
			want:   "m {level\n",
		},
		{
			name:   "name is empty outside a named logger",
			format: "<{name}> {message}",
			log:    func(l *slog.Logger) { l.Info("m") },
			want:   "<> m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewLineHandler(&buf, tt.format, nil)))
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewLineHandler(&buf, DefaultLineFormat, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l.Info("dropped")
	l.Warn("kept")

	if got := buf.String(); got != "[WARNING] kept\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLineHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	h := NewLineHandler(&buf, DefaultLineFormat, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr { return redactSensitive(a) },
	})

	slog.New(h).Info("login", "password", "hunter2")

	want := `[INFO] login password="` + redactedValue + "\"\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLessThanFilter(t *testing.T) {
	f, err := NewLessThanFilter("30")
	if err != nil {
		t.Fatalf("NewLessThanFilter() error = %v", err)
	}
	if f.Level != slog.LevelWarn {
		t.Errorf("Level = %v, want %v", f.Level, slog.LevelWarn)
	}

	if _, err := NewLessThanFilter("loud"); err == nil {
		t.Error("NewLessThanFilter() expected error for unknown level")
	}
}

func TestFilterHandler(t *testing.T) {
	var buf bytes.Buffer
	f, _ := NewLessThanFilter("WARNING")
	l := slog.New(NewFilterHandler(NewLineHandler(&buf, "{level}", &slog.HandlerOptions{Level: slog.LevelDebug}), f))

	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")

	if got := buf.String(); got != "DEBUG\nINFO\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNewFilter_UnknownKind(t *testing.T) {
	if _, err := newFilter("f", FilterConfig{Kind: "regex"}); err == nil {
		t.Error("newFilter() expected error for unknown kind")
	}
}
