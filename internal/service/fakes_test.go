package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"

	"github.com/linemk/shop-cart/internal/domain/models"
	"github.com/linemk/shop-cart/internal/storage"
)

// fakeStore хранит пользователей, каталог, заказы и строки корзины в памяти
// и реализует все интерфейсы хранилища, нужные сервисам.
type fakeStore struct {
	users      map[string]*models.User // ключ - email
	products   map[int64]*models.Product
	categories []*models.Category
	suppliers  []*models.Supplier
	orders     []*models.Order
	lines      []*models.OrderedProduct

	nextID int64

	// ошибки для эмуляции сбоев хранилища
	listErr   error
	upsertErr error
	lockErr   error
}

var (
	_ storage.UserStorage     = (*fakeStore)(nil)
	_ storage.CatalogStorage  = (*fakeStore)(nil)
	_ storage.OrderStorage    = (*fakeStore)(nil)
	_ storage.CartLineStorage = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		products: make(map[int64]*models.Product),
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addUser(id int64, email string) *models.User {
	user := &models.User{ID: id, Email: email, PassHash: []byte("hashed")}
	f.users[email] = user
	return user
}

func (f *fakeStore) openOrders(userID int64) []*models.Order {
	var open []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID && !o.IsPaid {
			open = append(open, o)
		}
	}
	return open
}

// UserStorage

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = f.id()
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeStore) LockUserByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.User, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return f.GetUserByID(ctx, id)
}

// CatalogStorage

func (f *fakeStore) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	products := []*models.Product{}
	for _, p := range f.products {
		switch {
		case filter.CategoryID != 0 && p.CategoryID != filter.CategoryID:
			continue
		case filter.CategoryID == 0 && filter.SupplierID != 0 && p.SupplierID != filter.SupplierID:
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (f *fakeStore) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	return f.suppliers, nil
}

// OrderStorage

func (f *fakeStore) GetOpenOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Order, error) {
	open := f.openOrders(userID)
	if len(open) == 0 {
		return nil, storage.ErrOrderNotFound
	}
	return open[0], nil
}

func (f *fakeStore) CreateOpenOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*models.Order, error) {
	if len(f.openOrders(userID)) > 0 {
		return nil, storage.ErrOpenOrderExists
	}
	order := &models.Order{ID: f.id(), UserID: userID, AddressID: f.id(), PaymentInfoID: f.id()}
	f.orders = append(f.orders, order)
	return order, nil
}

// CartLineStorage

func (f *fakeStore) UpsertLineTx(ctx context.Context, tx *sql.Tx, orderID int64, product *models.Product) (int, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	for _, l := range f.lines {
		if l.OrderID == orderID && l.ProductID == product.ID {
			l.Quantity++
			return l.Quantity, nil
		}
	}
	f.lines = append(f.lines, &models.OrderedProduct{
		ID:        f.id(),
		OrderID:   orderID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.DefaultPrice,
		Currency:  product.Currency,
		Quantity:  1,
	})
	return 1, nil
}

func (f *fakeStore) GetOpenLineForUpdateTx(ctx context.Context, tx *sql.Tx, userID, productID int64) (*models.OrderedProduct, error) {
	for _, o := range f.openOrders(userID) {
		for _, l := range f.lines {
			if l.OrderID == o.ID && l.ProductID == productID {
				cp := *l
				return &cp, nil
			}
		}
	}
	return nil, storage.ErrLineNotFound
}

func (f *fakeStore) UpdateLineQuantityTx(ctx context.Context, tx *sql.Tx, lineID int64, quantity int) error {
	for _, l := range f.lines {
		if l.ID == lineID {
			l.Quantity = quantity
			return nil
		}
	}
	return storage.ErrLineNotFound
}

func (f *fakeStore) DeleteLineTx(ctx context.Context, tx *sql.Tx, lineID int64) error {
	for i, l := range f.lines {
		if l.ID == lineID {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return storage.ErrLineNotFound
}

func (f *fakeStore) DeleteOpenLine(ctx context.Context, userID, productID int64) (bool, error) {
	line, err := f.GetOpenLineForUpdateTx(ctx, nil, userID, productID)
	if err != nil {
		return false, nil
	}
	return true, f.DeleteLineTx(ctx, nil, line.ID)
}

func (f *fakeStore) GetOpenLinesByUserID(ctx context.Context, userID int64) ([]*models.OrderedProduct, error) {
	lines := []*models.OrderedProduct{}
	for _, o := range f.openOrders(userID) {
		for _, l := range f.lines {
			if l.OrderID == o.ID {
				lines = append(lines, l)
			}
		}
	}
	return lines, nil
}
