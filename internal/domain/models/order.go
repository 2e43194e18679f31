package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order представляет заказ пользователя. Неоплаченный заказ (IsPaid == false) является корзиной,
// у пользователя может быть не больше одного такого заказа.
type Order struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AddressID     int64     `json:"address_id"`
	PaymentInfoID int64     `json:"payment_info_id"`
	IsPaid        bool      `json:"is_paid"`
	CreatedAt     time.Time `json:"created_at"`
}

// Address - адрес доставки, принадлежит ровно одному заказу.
// При открытии заказа создаётся пустым и заполняется при оформлении.
type Address struct {
	ID       int64
	FullName string
	Email    string
	Phone    string
	Country  string
	City     string
	Street   string
	Zip      string
}

// PaymentInfo - платёжные данные заказа, создаются пустыми вместе с заказом
type PaymentInfo struct {
	ID         int64
	NameOnCard string
	CardNumber string
	CVV        string
	ExpMonth   string
	ExpYear    string
}

// OrderedProduct - строка корзины. Название, цена и валюта фиксируются в момент первого добавления.
type OrderedProduct struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Quantity  int             `json:"quantity"`
}

// Subtotal возвращает стоимость строки: цена * количество
func (p *OrderedProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
