package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/shop-cart/internal/app/handlers"
	"github.com/linemk/shop-cart/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-cart/internal/lib/logger/handlers/urllog"
	"github.com/linemk/shop-cart/internal/service"
)

// newRouter собирает маршруты каталога, корзины и авторизации
func newRouter(
	log *slog.Logger,
	jwtSecret string,
	authService service.AuthServiceInterface,
	catalogService service.CatalogService,
	cartService service.CartService,
) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// эндпоинт для аутентификации
	router.Post("/api/auth", handlers.AuthHandler(log, authService))

	// содержимое корзины только для авторизованных
	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware(jwtSecret))
		r.Get("/api/cart", handlers.CartHandler(log, catalogService))
	})

	// каталог доступен анонимно, корзина меняется только при наличии пользователя
	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewOptionalJWTMiddleware(jwtSecret))

		r.Get("/Product", handlers.IndexHandler(log, catalogService))
		r.Get("/Product/Index", handlers.IndexHandler(log, catalogService))
		r.Get("/Product/SortByCategory/{id}", handlers.SortByCategoryHandler(log, catalogService))
		r.Get("/Product/SortBySupplier/{id}", handlers.SortBySupplierHandler(log, catalogService))

		// ссылки из корзины приходят GET-запросом, формы - POST
		cartRoutes := map[string]http.HandlerFunc{
			"/Product/Add/{id}":    handlers.AddHandler(log, cartService),
			"/Product/Minus/{id}":  handlers.MinusHandler(log, cartService),
			"/Product/Delete/{id}": handlers.DeleteHandler(log, cartService),
		}
		for pattern, h := range cartRoutes {
			r.Get(pattern, h)
			r.Post(pattern, h)
		}
	})

	return router
}
