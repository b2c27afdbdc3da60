// Package payload classifies raw text (an HTTP body fragment, a CLI
// argument) into the Value variant it denotes without the caller declaring
// a type up front.
//
// Rules are applied in order to the whitespace-trimmed input:
//
//  1. true / false          → Bool
//  2. null                  → Null
//  3. a numeric literal     → Number (i64 → u64 → f64 → i128/u128)
//  4. "..."                 → String, JSON escapes resolved
//  5. leading { or [        → structural JSON decode
//  6. anything else         → PARSE_ERROR
//
// Parse error offsets always index into the caller's original text.
package payload

import (
	"encoding/json"
	"log/slog"
	"strings"
	"unicode"

	"github.com/roach88/valu/internal/value"
)

type config struct {
	ordering value.Ordering
}

// Option configures classification.
type Option func(*config)

// WithOrdering sets the ordering policy for Objects produced by the
// structural decoder. The default preserves key order from the input.
func WithOrdering(o value.Ordering) Option {
	return func(c *config) { c.ordering = o }
}

func newConfig(opts []Option) config {
	cfg := config{ordering: value.InsertionOrder}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ToValue classifies text and builds the Value it denotes.
func ToValue(text string, opts ...Option) (value.Value, error) {
	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return nil, value.NewParseError(lead, "empty payload")
	}

	switch trimmed {
	case "true", "false":
		slog.Debug("payload classified", "rule", "bool")
		return value.Bool(trimmed == "true"), nil
	case "null":
		slog.Debug("payload classified", "rule", "null")
		return value.Null{}, nil
	}

	n, err := value.ParseNumber(trimmed)
	if err == nil {
		slog.Debug("payload classified", "rule", "number", "integer", n.IsInteger())
		return n, nil
	}
	if value.IsOutOfRange(err) {
		return nil, err
	}

	if isQuoted(trimmed) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return nil, value.NewParseError(lead, "invalid string literal: %v", err)
		}
		slog.Debug("payload classified", "rule", "string", "runes", value.String(s).Len())
		return value.String(s), nil
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		slog.Debug("payload classified", "rule", "structural", "open", string(trimmed[0]))
		return DecodeStructural([]byte(text), opts...)
	}

	slog.Debug("payload unrecognized", "length", len(trimmed))
	return nil, value.NewParseError(lead, "unrecognized payload shape")
}

// isQuoted reports whether s is a single double-quoted literal: it opens
// and closes with '"' and contains no unescaped quote in between.
func isQuoted(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	escaped := false
	for i := 1; i < len(s)-1; i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return false
		}
	}
	return !escaped
}
