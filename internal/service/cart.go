package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/linemk/shop-cart/internal/storage"
)

// CartService изменяет открытый (неоплаченный) заказ пользователя.
type CartService interface {
	Add(ctx context.Context, userID, productID int64) error
	Decrease(ctx context.Context, userID, productID int64) error
	Delete(ctx context.Context, userID, productID int64) error
}

type cartService struct {
	log         *slog.Logger
	db          *sql.DB
	userRepo    storage.UserStorage
	catalogRepo storage.CatalogStorage
	orderRepo   storage.OrderStorage
	lineRepo    storage.CartLineStorage
}

func NewCartService(
	log *slog.Logger,
	db *sql.DB,
	userRepo storage.UserStorage,
	catalogRepo storage.CatalogStorage,
	orderRepo storage.OrderStorage,
	lineRepo storage.CartLineStorage,
) CartService {
	return &cartService{
		log:         log,
		db:          db,
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
	}
}

// Add добавляет товар в корзину.
// Если открытого заказа нет, он создаётся. Если товар уже в корзине, количество увеличивается на 1.
// Всё выполняется в одной транзакции под блокировкой строки пользователя.
func (s *cartService) Add(ctx context.Context, userID, productID int64) error {
	const op = "service.CartService.Add"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if userID <= 0 {
		return ErrAuthRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return &StoreError{Op: op, Err: err}
	}

	if _, err := s.userRepo.LockUserByIDTx(ctx, tx, userID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to lock user", slog.Any("error", err))
		return classify(op, err)
	}

	product, err := s.catalogRepo.GetProductByIDTx(ctx, tx, productID)
	if err != nil {
		rollback(logger, tx)
		logger.Warn("failed to get product", slog.Any("error", err))
		return classify(op, err)
	}

	order, err := s.orderRepo.GetOpenOrderTx(ctx, tx, userID)
	if errors.Is(err, storage.ErrOrderNotFound) {
		logger.Info("no open order, creating one")
		order, err = s.orderRepo.CreateOpenOrderTx(ctx, tx, userID)
	}
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get open order", slog.Any("error", err))
		return classify(op, err)
	}

	quantity, err := s.lineRepo.UpsertLineTx(ctx, tx, order.ID, product)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to add cart line", slog.Any("error", err))
		return classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return &StoreError{Op: op, Err: err}
	}

	logger.Info("product added to cart", slog.Int64("orderID", order.ID), slog.Int("quantity", quantity))
	return nil
}

// Decrease уменьшает количество товара в корзине на 1, строка с нулевым количеством удаляется.
// Если товара в корзине нет, ничего не происходит.
func (s *cartService) Decrease(ctx context.Context, userID, productID int64) error {
	const op = "service.CartService.Decrease"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if userID <= 0 {
		return ErrAuthRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return &StoreError{Op: op, Err: err}
	}

	if _, err := s.userRepo.LockUserByIDTx(ctx, tx, userID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to lock user", slog.Any("error", err))
		return classify(op, err)
	}

	line, err := s.lineRepo.GetOpenLineForUpdateTx(ctx, tx, userID, productID)
	if err != nil {
		rollback(logger, tx)
		if errors.Is(err, storage.ErrLineNotFound) {
			logger.Debug("product is not in cart, nothing to decrease")
			return nil
		}
		logger.Error("failed to get cart line", slog.Any("error", err))
		return classify(op, err)
	}

	if line.Quantity <= 1 {
		err = s.lineRepo.DeleteLineTx(ctx, tx, line.ID)
	} else {
		err = s.lineRepo.UpdateLineQuantityTx(ctx, tx, line.ID, line.Quantity-1)
	}
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to decrease cart line", slog.Any("error", err))
		return classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return &StoreError{Op: op, Err: err}
	}

	logger.Info("cart line decreased", slog.Int("quantity", line.Quantity-1))
	return nil
}

// Delete удаляет товар из корзины независимо от количества. Повторный вызов ничего не меняет.
func (s *cartService) Delete(ctx context.Context, userID, productID int64) error {
	const op = "service.CartService.Delete"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if userID <= 0 {
		return ErrAuthRequired
	}

	deleted, err := s.lineRepo.DeleteOpenLine(ctx, userID, productID)
	if err != nil {
		logger.Error("failed to delete cart line", slog.Any("error", err))
		return classify(op, err)
	}

	logger.Info("cart line delete processed", slog.Bool("deleted", deleted))
	return nil
}

// rollback откатывает транзакцию, ошибка отката только логируется
func rollback(logger *slog.Logger, tx *sql.Tx) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}
