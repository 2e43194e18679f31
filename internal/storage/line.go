package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/shop-cart/internal/domain/models"
)

var ErrLineNotFound = errors.New("cart line not found")

// CartLineStorage описывает методы для работы со строками корзины (ordered_products).
// Строка корзины ищется по паре (пользователь, товар) среди неоплаченных заказов.
type CartLineStorage interface {
	// UpsertLineTx добавляет товар в заказ с количеством 1 или увеличивает количество на 1.
	// Возвращает итоговое количество.
	UpsertLineTx(ctx context.Context, tx *sql.Tx, orderID int64, product *models.Product) (int, error)
	// GetOpenLineForUpdateTx находит строку открытого заказа и блокирует её.
	GetOpenLineForUpdateTx(ctx context.Context, tx *sql.Tx, userID, productID int64) (*models.OrderedProduct, error)
	UpdateLineQuantityTx(ctx context.Context, tx *sql.Tx, lineID int64, quantity int) error
	DeleteLineTx(ctx context.Context, tx *sql.Tx, lineID int64) error
	// DeleteOpenLine удаляет строку открытого заказа одним запросом, false - если строки не было.
	DeleteOpenLine(ctx context.Context, userID, productID int64) (bool, error)
	// GetOpenLinesByUserID возвращает строки открытого заказа пользователя.
	GetOpenLinesByUserID(ctx context.Context, userID int64) ([]*models.OrderedProduct, error)
}

type cartLineRepository struct {
	db *sql.DB
}

func NewCartLineRepository(db *sql.DB) CartLineStorage {
	return &cartLineRepository{db: db}
}

func (r *cartLineRepository) UpsertLineTx(ctx context.Context, tx *sql.Tx, orderID int64, product *models.Product) (int, error) {
	// снимок названия, цены и валюты пишется только при первой вставке
	query := `
		INSERT INTO ordered_products (order_id, product_id, name, price, currency, quantity)
		VALUES ($1, $2, $3, $4, $5, 1)
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = ordered_products.quantity + 1
		RETURNING quantity`
	var quantity int
	err := tx.QueryRowContext(ctx, query, orderID, product.ID, product.Name, product.DefaultPrice, product.Currency).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return quantity, nil
}

func (r *cartLineRepository) GetOpenLineForUpdateTx(ctx context.Context, tx *sql.Tx, userID, productID int64) (*models.OrderedProduct, error) {
	line := &models.OrderedProduct{}
	query := `
		SELECT op.id, op.order_id, op.product_id, op.name, op.price, op.currency, op.quantity
		FROM ordered_products op
		JOIN orders o ON op.order_id = o.id
		WHERE op.product_id = $1 AND o.user_id = $2 AND o.is_paid = FALSE
		FOR UPDATE OF op`
	row := tx.QueryRowContext(ctx, query, productID, userID)
	if err := row.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Name, &line.Price, &line.Currency, &line.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *cartLineRepository) UpdateLineQuantityTx(ctx context.Context, tx *sql.Tx, lineID int64, quantity int) error {
	res, err := tx.ExecContext(ctx, "UPDATE ordered_products SET quantity = $1 WHERE id = $2", quantity, lineID)
	if err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *cartLineRepository) DeleteLineTx(ctx context.Context, tx *sql.Tx, lineID int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM ordered_products WHERE id = $1", lineID)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *cartLineRepository) DeleteOpenLine(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
		DELETE FROM ordered_products op
		USING orders o
		WHERE op.order_id = o.id AND op.product_id = $1 AND o.user_id = $2 AND o.is_paid = FALSE`
	res, err := r.db.ExecContext(ctx, query, productID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete cart line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *cartLineRepository) GetOpenLinesByUserID(ctx context.Context, userID int64) ([]*models.OrderedProduct, error) {
	query := `
		SELECT op.id, op.order_id, op.product_id, op.name, op.price, op.currency, op.quantity
		FROM ordered_products op
		JOIN orders o ON op.order_id = o.id
		WHERE o.user_id = $1 AND o.is_paid = FALSE
		ORDER BY op.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	lines := []*models.OrderedProduct{}
	for rows.Next() {
		line := &models.OrderedProduct{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Name, &line.Price, &line.Currency, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
