package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	DeliveryForm struct {
		FullName     string
		Phone        string
		AddressLine1 string
		City         string
		Pincode      string
	}

	Order struct {
		ID        int64
		Status    string
		Delivery  DeliveryForm
		Subtotal  decimal.Decimal
		CreatedAt time.Time
		Items     []OrderItem
	}

	OrderItem struct {
		Product       Product
		Quantity      int
		PriceSnapshot decimal.Decimal
	}
)
