package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const logTimestampLayout = "2006-01-02 15:04:05"

// debugOnlyKeys are hidden from INFO-and-above console lines.
var debugOnlyKeys = map[string]struct{}{
	FieldCorrelationID: {},
}

// consoleHandler writes one line per record:
//
//	2006-01-02 15:04:05 INFO  analysis(align): comparison complete edit_distance=2 path="a b.mp4"
//
// component and stage attributes move into the prefix; everything else
// follows the message as key=value pairs.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     slog.Leveler
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newPrettyHandler(w io.Writer, lvl slog.Leveler, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	pairs := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&pairs, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&pairs, h.groups, attr)
		return true
	})
	pairs = dedupeKVsByKey(pairs)

	var component, stage string
	var line strings.Builder
	line.Grow(96 + len(pairs)*24)

	fields := pairs[:0]
	for _, p := range pairs {
		switch p.key {
		case FieldComponent:
			component = attrString(p.value)
		case FieldStage:
			stage = attrString(p.value)
		default:
			if _, hidden := debugOnlyKeys[p.key]; hidden && record.Level >= slog.LevelInfo {
				continue
			}
			fields = append(fields, p)
		}
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	line.WriteString(timestamp.In(time.Local).Format(logTimestampLayout))
	line.WriteByte(' ')
	line.WriteString(levelLabel(record.Level))
	line.WriteByte(' ')
	if prefix := originPrefix(component, stage); prefix != "" {
		line.WriteString(prefix)
		line.WriteString(": ")
	}

	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	line.WriteString(message)
	for _, p := range fields {
		line.WriteByte(' ')
		line.WriteString(p.key)
		line.WriteByte('=')
		line.WriteString(formatValue(p.value))
	}
	if h.addSource {
		if src := record.Source(); src != nil {
			line.WriteString(" (")
			line.WriteString(filepath.Base(src.File))
			line.WriteByte(':')
			line.WriteString(strconv.Itoa(src.Line))
			line.WriteByte(')')
		}
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, line.String())
	return err
}

func originPrefix(component, stage string) string {
	switch {
	case component != "" && stage != "":
		return component + "(" + stage + ")"
	case component != "":
		return component
	case stage != "":
		return "(" + stage + ")"
	}
	return ""
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.derive()
	next.attrs = append(next.attrs, attrs...)
	return next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.derive()
	next.groups = append(next.groups, name)
	return next
}

// derive copies h; the mutex is shared so sibling handlers never interleave
// partial lines.
func (h *consoleHandler) derive() *consoleHandler {
	return &consoleHandler{
		mu:        h.mu,
		writer:    h.writer,
		level:     h.level,
		attrs:     append([]slog.Attr(nil), h.attrs...),
		groups:    append([]string(nil), h.groups...),
		addSource: h.addSource,
	}
}

type kv struct {
	key   string
	value slog.Value
}

// dedupeKVsByKey keeps the first position of each key and the last value
// written to it.
func dedupeKVsByKey(pairs []kv) []kv {
	if len(pairs) < 2 {
		return pairs
	}
	index := make(map[string]int, len(pairs))
	out := make([]kv, 0, len(pairs))
	for _, p := range pairs {
		if p.key == "" {
			continue
		}
		if i, seen := index[p.key]; seen {
			out[i].value = p.value
			continue
		}
		index[p.key] = len(out)
		out = append(out, p)
	}
	return out
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

// flattenAttr expands groups into dotted keys.
func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		flattenAttrs(dst, next, value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 && key != "" {
		key = strings.Join(prefix, ".") + "." + key
	}
	*dst = append(*dst, kv{key: key, value: value})
}

// levelLabel pads to five columns so messages line up.
func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}
