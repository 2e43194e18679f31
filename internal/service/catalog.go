package service

import (
	"context"
	"log/slog"

	"github.com/linemk/shop-cart/internal/domain/models"
	"github.com/linemk/shop-cart/internal/storage"
	"github.com/shopspring/decimal"
)

// CatalogService отдаёт каталог товаров и строки корзины текущего пользователя.
type CatalogService interface {
	ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error)
	ListOpenCartLines(ctx context.Context, userID int64) ([]*models.OrderedProduct, error)
	Catalog(ctx context.Context, userID int64, filter storage.ProductFilter) (*CatalogView, error)
}

// CatalogView - модель страницы каталога: товары, корзина и навигация по фильтрам.
type CatalogView struct {
	Products   []*models.Product          `json:"products"`
	CartLines  []*models.OrderedProduct   `json:"cartLines"`
	CartCount  int                        `json:"cartCount"`
	CartTotals map[string]decimal.Decimal `json:"cartTotals"` // валюта -> сумма
	Categories []*models.Category         `json:"categories"`
	Suppliers  []*models.Supplier         `json:"suppliers"`
}

type catalogService struct {
	log         *slog.Logger
	catalogRepo storage.CatalogStorage
	lineRepo    storage.CartLineStorage
}

func NewCatalogService(log *slog.Logger, catalogRepo storage.CatalogStorage, lineRepo storage.CartLineStorage) CatalogService {
	return &catalogService{
		log:         log,
		catalogRepo: catalogRepo,
		lineRepo:    lineRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"

	products, err := s.catalogRepo.ListProducts(ctx, filter)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, classify(op, err)
	}
	return products, nil
}

// ListOpenCartLines возвращает строки открытого заказа. Для анонимного пользователя - пустой список.
func (s *catalogService) ListOpenCartLines(ctx context.Context, userID int64) ([]*models.OrderedProduct, error) {
	const op = "service.CatalogService.ListOpenCartLines"

	if userID <= 0 {
		return []*models.OrderedProduct{}, nil
	}

	lines, err := s.lineRepo.GetOpenLinesByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to list cart lines", slog.String("op", op), slog.Int64("userID", userID), slog.Any("error", err))
		return nil, classify(op, err)
	}
	return lines, nil
}

// Catalog собирает модель страницы каталога
func (s *catalogService) Catalog(ctx context.Context, userID int64, filter storage.ProductFilter) (*CatalogView, error) {
	const op = "service.CatalogService.Catalog"
	s.log.Debug("building catalog view",
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("categoryID", filter.CategoryID),
		slog.Int64("supplierID", filter.SupplierID),
	)

	products, err := s.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	lines, err := s.ListOpenCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, classify(op, err)
	}

	suppliers, err := s.catalogRepo.ListSuppliers(ctx)
	if err != nil {
		s.log.Error("failed to list suppliers", slog.String("op", op), slog.Any("error", err))
		return nil, classify(op, err)
	}

	view := &CatalogView{
		Products:   products,
		CartLines:  lines,
		CartTotals: make(map[string]decimal.Decimal),
		Categories: categories,
		Suppliers:  suppliers,
	}
	for _, line := range lines {
		view.CartCount += line.Quantity
		view.CartTotals[line.Currency] = view.CartTotals[line.Currency].Add(line.Subtotal())
	}
	return view, nil
}
