package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mgarrido/tienda/internal/cart"
	"github.com/mgarrido/tienda/internal/logging"
	"github.com/mgarrido/tienda/internal/models"
)

var (
	ErrEmptyCart = errors.New("empty cart")
	// ErrNotFound also covers orders that exist but belong to another
	// user; callers never learn the difference.
	ErrNotFound = errors.New("order not found")
)

type Service struct {
	DB *gorm.DB
}

// Checkout persists one Order plus one OrderItem per cart line inside
// a single transaction. On any failure nothing is written and the
// cart is left untouched so the user can retry.
func (s *Service) Checkout(ctx context.Context, userID uint, ct *cart.Cart) (uint, error) {
	if ct == nil || ct.TotalQty == 0 {
		return 0, ErrEmptyCart
	}

	l := logging.FromContext(ctx).With("svc", "orders.checkout", "user_id", userID)

	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:    userID,
			Total:     ct.TotalPrice,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range ct.Items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Precio:    item.Precio,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		l.Error("checkout_error", "error", err)
		return 0, err
	}

	l.Info("checkout_success", "order_id", order.ID, "total", order.Total)
	return order.ID, nil
}

func (s *Service) History(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TicketItem is one receipt line with the product's current display
// name joined in. A deleted product leaves Nombre empty but never
// invalidates the line.
type TicketItem struct {
	Nombre   string          `gorm:"column:nombre"`
	Quantity int             `gorm:"column:quantity"`
	Precio   decimal.Decimal `gorm:"column:price"`
}

func (t TicketItem) LineTotal() decimal.Decimal {
	return t.Precio.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

type Ticket struct {
	Order models.Order
	Items []TicketItem
}

// Ticket loads an order with its lines, but only for its owner.
func (s *Service) Ticket(ctx context.Context, orderID, userID uint) (*Ticket, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var items []TicketItem
	err = s.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.quantity, order_items.price, products.nombre").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return &Ticket{Order: order, Items: items}, nil
}
