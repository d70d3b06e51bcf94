// Package cart holds the session-scoped shopping cart and its totals.
// It does no I/O; persistence of the cart is the session layer's job.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mgarrido/tienda/internal/models"
)

// Item is a cart line with the product name and unit price snapshotted
// at the time of the first add.
type Item struct {
	ProductID uint            `json:"product_id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Quantity  int             `json:"quantity"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Precio.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items      map[uint]*Item  `json:"items"`
	TotalQty   int             `json:"totalQty"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func New() *Cart {
	return &Cart{
		Items:      map[uint]*Item{},
		TotalPrice: decimal.Zero,
	}
}

// Add puts qty units of p in the cart, accumulating if the product is
// already there. Callers normalize qty beforehand; values below 1 are
// treated as 1.
func (c *Cart) Add(p models.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	item, ok := c.Items[p.ID]
	if !ok {
		item = &Item{ProductID: p.ID, Nombre: p.Nombre, Precio: p.Precio}
		c.Items[p.ID] = item
	}
	item.Quantity += qty
	c.recompute()
}

// Update sets the quantity of a line absolutely. A quantity of zero or
// less removes the line. Unknown products are ignored.
func (c *Cart) Update(productID uint, qty int) {
	item, ok := c.Items[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		delete(c.Items, productID)
	} else {
		item.Quantity = qty
	}
	c.recompute()
}

func (c *Cart) Remove(productID uint) {
	if _, ok := c.Items[productID]; !ok {
		return
	}
	delete(c.Items, productID)
	c.recompute()
}

func (c *Cart) Clear() {
	c.Items = map[uint]*Item{}
	c.TotalQty = 0
	c.TotalPrice = decimal.Zero
}

// recompute rebuilds both totals from the lines. Totals are never
// adjusted incrementally, so they cannot drift from the items.
func (c *Cart) recompute() {
	c.TotalQty = 0
	c.TotalPrice = decimal.Zero
	for _, item := range c.Items {
		c.TotalQty += item.Quantity
		c.TotalPrice = c.TotalPrice.Add(item.LineTotal())
	}
}
