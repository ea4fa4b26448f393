package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_JSONForProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production", Level: slog.LevelInfo})

	log.Info("scored book", "book_id", "book-1")

	assert.Contains(t, buf.String(), `"msg":"scored book"`)
	assert.Contains(t, buf.String(), `"book_id":"book-1"`)
}

func TestNew_PrettyForDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelInfo})

	log.Info("scored book", "book_id", "book-1")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "scored book")
	assert.Contains(t, out, "book_id=book-1")
	assert.NotContains(t, out, `"msg"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"trace":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrettyHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil)).With("component", "cache").WithGroup("score")

	log.Info("hit", "book_id", "b1", "note", "two words")

	out := buf.String()
	assert.Contains(t, out, "component=cache")
	assert.Contains(t, out, "score.book_id=b1")
	assert.Contains(t, out, `score.note="two words"`)
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json"})

	log.WithError(errors.New("boom")).WithField("book_id", "b2").Info("failed")
	log.Component("recommend").Info("ready")

	out := buf.String()
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"book_id":"b2"`)
	assert.Contains(t, out, `"component":"recommend"`)
}
