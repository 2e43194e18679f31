package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/linemk/shop-cart/internal/service"
)

var validate = validator.New()

// ErrorResponse - общий ответ при ошибке, requestId связывает его с записью в логах
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

type idParam struct {
	ID int64 `validate:"required,gt=0"`
}

// parseID читает и валидирует параметр {id} из пути
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

// requestID возвращает id запроса, выставленный middleware.RequestID, или генерирует новый
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

// writeError пишет общий ответ об ошибке: 404 для отсутствующих сущностей, 500 для остального
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	resp := ErrorResponse{Error: "internal server error", RequestID: requestID(r)}
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrNotFound) {
		resp.Error = "not found"
		status = http.StatusNotFound
	}

	logger.Error("request failed",
		slog.String("request_id", resp.RequestID),
		slog.Int("status", status),
		slog.Any("error", err),
	)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, logger, status, resp)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}
