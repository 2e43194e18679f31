package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/shop-cart/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-cart/internal/service"
)

// CatalogPath - страница, на которую возвращают все операции с корзиной
const CatalogPath = "/Product"

type cartAction func(ctx context.Context, userID, productID int64) error

// AddHandler обрабатывает /Product/Add/{id}
func AddHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return cartHandler(log, "handlers.AddHandler", cartService.Add)
}

// MinusHandler обрабатывает /Product/Minus/{id}
func MinusHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return cartHandler(log, "handlers.MinusHandler", cartService.Decrease)
}

// DeleteHandler обрабатывает /Product/Delete/{id}
func DeleteHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return cartHandler(log, "handlers.DeleteHandler", cartService.Delete)
}

func cartHandler(log *slog.Logger, op string, action cartAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", op))

		productID, err := parseID(r)
		if err != nil {
			logger.Warn("invalid request: bad id", slog.Any("error", err))
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		userID, _ := jwtmiddleware.FromContext(r.Context())

		err = action(r.Context(), userID, productID)
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			// анонимный запрос корзину не меняет, просто возвращаем на каталог
			logger.Info("cart change ignored for anonymous user", slog.Int64("productID", productID))
		case err != nil:
			writeError(w, r, logger, err)
			return
		default:
			logger.Info("cart changed", slog.Int64("userID", userID), slog.Int64("productID", productID))
		}

		http.Redirect(w, r, CatalogPath, http.StatusSeeOther)
	}
}
