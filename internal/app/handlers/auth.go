package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/shop-cart/internal/service"
)

// AuthRequest - запрос на вход; неизвестный email регистрируется автоматически
type AuthRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse содержит JWT-токен для заголовка Authorization
type AuthResponse struct {
	Token string `json:"token"`
}

// AuthHandler обрабатывает POST /api/auth
func AuthHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AuthHandler"
		logger := log.With(slog.String("op", op))

		var req AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Warn("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		token, err := authService.Login(r.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			logger.Warn("login rejected", slog.String("username", req.Username))
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		case err != nil:
			writeError(w, r, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, AuthResponse{Token: token})
	}
}
