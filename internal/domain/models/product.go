package models

import "github.com/shopspring/decimal"

// Category представляет категорию товаров
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Supplier представляет поставщика товаров
type Supplier struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Product представляет товар каталога вместе с названиями категории и поставщика.
// Для сервиса корзины каталог доступен только на чтение.
type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	DefaultPrice decimal.Decimal `json:"default_price" db:"default_price"`
	Currency     string          `json:"currency" db:"currency"`
	CategoryID   int64           `json:"category_id" db:"category_id"`
	CategoryName string          `json:"category_name" db:"category_name"` // заполняется через JOIN
	SupplierID   int64           `json:"supplier_id" db:"supplier_id"`
	SupplierName string          `json:"supplier_name" db:"supplier_name"` // заполняется через JOIN
}
