package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Nombre      string          `gorm:"not null"                    json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre       string `gorm:"not null"                 json:"nombre"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Order struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID    uint            `gorm:"index;not null"              json:"user_id"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderItem keeps the unit price paid at checkout, decoupled from any
// later change to the product row.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"                 json:"id"`
	OrderID   uint            `gorm:"index;not null"                           json:"order_id"`
	ProductID uint            `gorm:"not null"                                 json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity>0"                json:"quantity"`
	Precio    decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
}
