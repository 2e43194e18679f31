package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-cart/internal/domain/models"
	"github.com/linemk/shop-cart/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-cart/internal/service"
	"github.com/linemk/shop-cart/internal/storage"
	"github.com/shopspring/decimal"
)

// IndexHandler обрабатывает GET /Product и /Product/Index - весь каталог и корзина пользователя
func IndexHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return catalogHandler(log, catalogService, "handlers.IndexHandler", nil)
}

// SortByCategoryHandler обрабатывает GET /Product/SortByCategory/{id}
func SortByCategoryHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return catalogHandler(log, catalogService, "handlers.SortByCategoryHandler", func(id int64) storage.ProductFilter {
		return storage.ProductFilter{CategoryID: id}
	})
}

// SortBySupplierHandler обрабатывает GET /Product/SortBySupplier/{id}
func SortBySupplierHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return catalogHandler(log, catalogService, "handlers.SortBySupplierHandler", func(id int64) storage.ProductFilter {
		return storage.ProductFilter{SupplierID: id}
	})
}

func catalogHandler(log *slog.Logger, catalogService service.CatalogService, op string, filterFor func(id int64) storage.ProductFilter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", op))

		var filter storage.ProductFilter
		if filterFor != nil {
			id, err := parseID(r)
			if err != nil {
				logger.Warn("invalid request: bad id", slog.Any("error", err))
				http.Error(w, "invalid id", http.StatusBadRequest)
				return
			}
			filter = filterFor(id)
		}

		// анонимный пользователь получает каталог с пустой корзиной
		userID, _ := jwtmiddleware.FromContext(r.Context())

		view, err := catalogService.Catalog(r.Context(), userID, filter)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}

		logger.Info("product page loaded", slog.Int("products", len(view.Products)), slog.Int("cart_count", view.CartCount))
		writeJSON(w, logger, http.StatusOK, view)
	}
}

// CartResponse - содержимое открытого заказа
type CartResponse struct {
	Lines  []*models.OrderedProduct   `json:"lines"`
	Count  int                        `json:"count"`
	Totals map[string]decimal.Decimal `json:"totals"`
}

// CartHandler обрабатывает GET /api/cart, требует авторизации
func CartHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lines, err := catalogService.ListOpenCartLines(r.Context(), userID)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}

		resp := CartResponse{Lines: lines, Totals: make(map[string]decimal.Decimal)}
		for _, line := range lines {
			resp.Count += line.Quantity
			resp.Totals[line.Currency] = resp.Totals[line.Currency].Add(line.Subtotal())
		}
		writeJSON(w, logger, http.StatusOK, resp)
	}
}
