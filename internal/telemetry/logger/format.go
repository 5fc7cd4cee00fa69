package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultLineFormat is the format of the "default" formatter.
const DefaultLineFormat = "[{level}] {message} {extra}"

// Line format placeholders:
//
//	{level}          upper-case level name (INFO, WARNING, ...)
//	{message}        message text
//	{quotedmessage}  message as a JSON string
//	{extra}          attributes as space separated key="value" pairs,
//	                 values JSON encoded; {formattedextra} is an alias
//	{time}           record time, RFC 3339
//	{name}           name of the logger that emitted the record
var linePlaceholders = map[string]bool{
	"level":          true,
	"message":        true,
	"quotedmessage":  true,
	"extra":          true,
	"formattedextra": true,
	"time":           true,
	"name":           true,
}

type lineSegment struct {
	literal     string
	placeholder string
}

// LineHandler is a slog.Handler writing one formatted line per record.
type LineHandler struct {
	mu       *sync.Mutex
	w        io.Writer
	segments []lineSegment
	opts     slog.HandlerOptions
	attrs    []slog.Attr
	prefix   string
	groups   []string
}

var _ slog.Handler = (*LineHandler)(nil)

// NewLineHandler creates a LineHandler writing to w with the given format.
func NewLineHandler(w io.Writer, format string, opts *slog.HandlerOptions) *LineHandler {
	h := &LineHandler{
		mu:       new(sync.Mutex),
		w:        w,
		segments: parseLineFormat(format),
	}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func parseLineFormat(format string) []lineSegment {
	var segs []lineSegment
	for format != "" {
		open := strings.IndexByte(format, '{')
		if open < 0 {
			segs = append(segs, lineSegment{literal: format})
			break
		}
		end := strings.IndexByte(format[open:], '}')
		if end < 0 {
			segs = append(segs, lineSegment{literal: format})
			break
		}
		name := format[open+1 : open+end]
		if !linePlaceholders[name] {
			segs = append(segs, lineSegment{literal: format[:open+end+1]})
			format = format[open+end+1:]
			continue
		}
		if open > 0 {
			segs = append(segs, lineSegment{literal: format[:open]})
		}
		segs = append(segs, lineSegment{placeholder: name})
		format = format[open+end+1:]
	}
	return segs
}

// Enabled reports whether level reaches the handler's minimum level.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// WithAttrs returns a handler that includes attrs in every record's extras.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &h2
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	h2.groups = append(append([]string(nil), h.groups...), name)
	return &h2
}

func (h *LineHandler) qualify(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = h.appendAttr(out, h.prefix, h.groups, a)
	}
	return out
}

func (h *LineHandler) appendAttr(out []slog.Attr, prefix string, groups []string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup && h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return out
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		subGroups := groups
		if a.Key != "" {
			sub = prefix + a.Key + "."
			subGroups = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			out = h.appendAttr(out, sub, subGroups, ga)
		}
		return out
	}
	a.Key = prefix + a.Key
	return append(out, a)
}

// Handle formats and writes r.
func (h *LineHandler) Handle(ctx context.Context, r slog.Record) error {
	extras := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		extras = h.appendAttr(extras, h.prefix, h.groups, a)
		return true
	})

	var b strings.Builder
	for _, seg := range h.segments {
		if seg.placeholder == "" {
			b.WriteString(seg.literal)
			continue
		}
		switch seg.placeholder {
		case "level":
			b.WriteString(LevelName(r.Level))
		case "message":
			b.WriteString(r.Message)
		case "quotedmessage":
			b.WriteString(quoteValue(slog.StringValue(r.Message)))
		case "extra", "formattedextra":
			b.WriteString(formatExtra(extras))
		case "time":
			if !r.Time.IsZero() {
				b.WriteString(r.Time.Format(time.RFC3339))
			}
		case "name":
			b.WriteString(loggerNameFromContext(ctx))
		}
	}
	line := strings.TrimRight(b.String(), " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func formatExtra(attrs []slog.Attr) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Key+"="+quoteValue(a.Value))
	}
	return strings.Join(parts, " ")
}

// quoteValue renders v as JSON, so strings come out double quoted.
func quoteValue(v slog.Value) string {
	var x any
	switch v.Kind() {
	case slog.KindString:
		x = v.String()
	case slog.KindTime:
		x = v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		x = v.Duration().String()
	default:
		x = v.Any()
		if err, ok := x.(error); ok {
			x = err.Error()
		}
	}
	b, err := json.Marshal(x)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprint(x))
	}
	return string(b)
}
