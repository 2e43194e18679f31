package service

import (
	"errors"
	"fmt"

	"github.com/linemk/shop-cart/internal/storage"
)

var (
	// ErrAuthRequired - операция с корзиной вызвана без идентификатора пользователя.
	ErrAuthRequired = errors.New("authentication required")
	// ErrNotFound - товар, заказ или строка корзины не существует.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StoreError - сбой хранилища (соединение, ограничения целостности и т.п.).
// Не обрабатывается внутри сервисов и доходит до транспортного слоя.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store error: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// classify приводит ошибку хранилища к таксономии сервиса
func classify(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrLineNotFound),
		errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	default:
		return &StoreError{Op: op, Err: err}
	}
}
