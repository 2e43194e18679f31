package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/shop-cart/internal/domain/models"
)

var (
	ErrOrderNotFound   = errors.New("open order not found")
	ErrOpenOrderExists = errors.New("user already has an open order")
)

// код ошибки unique_violation в postgres
const uniqueViolation = "23505"

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// GetOpenOrderTx возвращает неоплаченный заказ пользователя.
	GetOpenOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Order, error)
	// CreateOpenOrderTx создаёт неоплаченный заказ с пустыми адресом и платёжными данными.
	CreateOpenOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Order, error)
}

// orderRepository - конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetOpenOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, user_id, address_id, payment_info_id, is_paid, created_at
		FROM orders
		WHERE user_id = $1 AND is_paid = FALSE`
	row := tx.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&order.ID, &order.UserID, &order.AddressID, &order.PaymentInfoID, &order.IsPaid, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CreateOpenOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Order, error) {
	order := &models.Order{UserID: userID}

	// адрес и платёжные данные заполняются позже, при оформлении заказа
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO addresses (full_name, email, phone, country, city, street, zip)
		 VALUES ('', '', '', '', '', '', '') RETURNING id`,
	).Scan(&order.AddressID); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	if err := tx.QueryRowContext(ctx,
		`INSERT INTO payment_infos (name_on_card, card_number, cvv, exp_month, exp_year)
		 VALUES ('', '', '', '', '') RETURNING id`,
	).Scan(&order.PaymentInfoID); err != nil {
		return nil, fmt.Errorf("failed to create payment info: %w", err)
	}

	query := `INSERT INTO orders (user_id, address_id, payment_info_id, is_paid, created_at)
	          VALUES ($1, $2, $3, FALSE, NOW()) RETURNING id, created_at`
	err := tx.QueryRowContext(ctx, query, userID, order.AddressID, order.PaymentInfoID).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrOpenOrderExists
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}
