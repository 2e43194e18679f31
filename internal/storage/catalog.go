package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/shop-cart/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter ограничивает выборку каталога. Нулевые значения означают "без фильтра",
// если заданы оба поля, используется только категория.
type ProductFilter struct {
	CategoryID int64
	SupplierID int64
}

// CatalogStorage описывает чтение каталога: товары, категории и поставщики.
type CatalogStorage interface {
	// ListProducts возвращает товары с названиями категории и поставщика, отсортированные по id.
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
	// GetProductByIDTx получает товар внутри транзакции изменения корзины.
	GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogStorage {
	return &catalogRepository{db: db}
}

const productColumns = `
		SELECT p.id, p.name, p.description, p.default_price, p.currency,
		       p.category_id, c.name AS category_name, p.supplier_id, s.name AS supplier_name
		FROM products p
		JOIN categories c ON p.category_id = c.id
		JOIN suppliers s ON p.supplier_id = s.id`

func (r *catalogRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	query := productColumns
	var args []interface{}
	switch {
	case filter.CategoryID != 0:
		query += `
		WHERE p.category_id = $1`
		args = append(args, filter.CategoryID)
	case filter.SupplierID != 0:
		query += `
		WHERE p.supplier_id = $1`
		args = append(args, filter.SupplierID)
	}
	query += `
		ORDER BY p.id`

	products := []*models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

func (r *catalogRepository) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	p := &models.Product{}
	row := tx.QueryRowContext(ctx, productColumns+`
		WHERE p.id = $1`, id)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.DefaultPrice, &p.Currency,
		&p.CategoryID, &p.CategoryName, &p.SupplierID, &p.SupplierName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories := []*models.Category{}
	if err := r.db.SelectContext(ctx, &categories, "SELECT id, name, description FROM categories ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	return categories, nil
}

func (r *catalogRepository) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	suppliers := []*models.Supplier{}
	if err := r.db.SelectContext(ctx, &suppliers, "SELECT id, name, description FROM suppliers ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	return suppliers, nil
}
