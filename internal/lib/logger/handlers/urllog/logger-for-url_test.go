package urllog_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/shop-cart/internal/lib/logger/handlers/urllog"
	"github.com/stretchr/testify/assert"
)

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/Product", http.StatusSeeOther)
	})
	handler := middleware.RequestID(urllog.CustomLoggerMiddleware(log)(next))

	req := httptest.NewRequest("POST", "/Product/Add/1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	out := buf.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "url=/Product/Add/1")
	assert.Contains(t, out, "status=303")
	assert.NotContains(t, out, "request_id=\"\"")
	assert.NotContains(t, out, "request_id= ")
}
