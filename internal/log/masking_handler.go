package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// maskedKeys contains attribute keys whose values carry plaintext passwords
// or raw input records. Matching is case-insensitive and includes keys that
// merely contain one of these words ("password_candidate" masks too).
var maskedKeys = map[string]bool{
	"password":  true,
	"candidate": true,
	"line":      true,
	"record":    true,
	"value":     true,
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***MASKED***"

// MaskingHandler wraps an slog.Handler and masks password-bearing attribute
// values before passing records on.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay free of masking concerns
type MaskingHandler struct {
	handler slog.Handler
}

// NewMaskingHandler creates a MaskingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is wrapped.
func NewMaskingHandler(handler slog.Handler) *MaskingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskingHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying
// handler.
func (h *MaskingHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added, masked.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskingHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *MaskingHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if isMaskedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// isMaskedKey reports whether key names a password-bearing attribute.
func isMaskedKey(key string) bool {
	keyLower := strings.ToLower(key)
	if maskedKeys[keyLower] {
		return true
	}
	for word := range maskedKeys {
		if strings.Contains(keyLower, word) {
			return true
		}
	}
	return false
}

// NewLogger builds the application logger: an slog text handler writing to
// w at the given level, wrapped in a MaskingHandler unless showPasswords is
// set.
func NewLogger(w io.Writer, level slog.Level, showPasswords bool) *slog.Logger {
	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if !showPasswords {
		handler = NewMaskingHandler(handler)
	}
	return slog.New(handler)
}
