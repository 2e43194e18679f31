package slogpretty_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/linemk/shop-cart/internal/lib/logger/handlers/slogpretty"
	"github.com/stretchr/testify/assert"
)

func newLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	color.NoColor = true
	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: level}}
	return slog.New(opts.NewPrettyHandler(buf))
}

func TestPrettyHandler_PrintsMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelDebug).With(slog.String("op", "service.CartService.Add"))

	log.Error("failed to add product", slog.Int64("productID", 101), slog.Any("error", errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "failed to add product")
	assert.Contains(t, out, `"op": "service.CartService.Add"`)
	assert.Contains(t, out, `"productID": 101`)
	assert.Contains(t, out, `"error": "boom"`)
}

func TestPrettyHandler_WithAttrsAccumulates(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelDebug).
		With(slog.String("op", "handlers.AddHandler")).
		With(slog.String("request_id", "req-1"))

	log.Info("cart changed")

	out := buf.String()
	assert.Contains(t, out, `"op": "handlers.AddHandler"`)
	assert.Contains(t, out, `"request_id": "req-1"`)
}

func TestPrettyHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelDebug).WithGroup("http")

	log.Info("request completed", slog.Int("status", 303))

	assert.Contains(t, buf.String(), `"http.status": 303`)
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelInfo)

	log.Debug("building catalog view")
	assert.Empty(t, buf.String())

	log.Info("product page loaded")
	assert.Contains(t, buf.String(), "INFO:")
}
