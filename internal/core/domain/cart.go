package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	Cart struct {
		ID        int64
		Items     []CartItem
		UpdatedAt time.Time
	}

	CartItem struct {
		ID            int64
		Product       Product
		PriceSnapshot decimal.Decimal
		Quantity      int
	}
)

// LineTotal is the price snapshot multiplied by the quantity.
func (it CartItem) LineTotal() decimal.Decimal {
	return it.PriceSnapshot.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Shipping is fixed at zero.
func (c Cart) Shipping() decimal.Decimal {
	return decimal.Zero
}

func (c Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Shipping())
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Item returns the item with the given id.
func (c Cart) Item(itemID int64) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return CartItem{}, false
}
