package httpapi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	categoryJSON struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	productImageJSON struct {
		ID        int64  `json:"id"`
		ImageURL  string `json:"image_url"`
		IsPrimary bool   `json:"is_primary"`
	}

	productJSON struct {
		ID          int64              `json:"id"`
		Category    *categoryJSON      `json:"category"`
		Name        string             `json:"name"`
		Slug        string             `json:"slug"`
		Description string             `json:"description"`
		Price       decimal.Decimal    `json:"price"`
		Stock       int                `json:"stock"`
		IsActive    bool               `json:"is_active"`
		Images      []productImageJSON `json:"images"`
	}
)

type (
	cartJSON struct {
		ID        int64          `json:"id"`
		Items     []cartItemJSON `json:"items"`
		UpdatedAt time.Time      `json:"updated_at"`
	}

	cartItemJSON struct {
		ID            int64           `json:"id"`
		Product       productJSON     `json:"product"`
		Quantity      int             `json:"quantity"`
		PriceSnapshot decimal.Decimal `json:"price_snapshot"`
	}

	addItemJSON struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}

	updateItemJSON struct {
		Quantity int `json:"quantity"`
	}
)

type (
	deliveryFormJSON struct {
		FullName     string `json:"full_name"`
		Phone        string `json:"phone"`
		AddressLine1 string `json:"address_line1"`
		City         string `json:"city"`
		Pincode      string `json:"pincode"`
	}

	orderJSON struct {
		ID           int64           `json:"id"`
		Status       string          `json:"status"`
		FullName     string          `json:"full_name"`
		Phone        string          `json:"phone"`
		AddressLine1 string          `json:"address_line1"`
		City         string          `json:"city"`
		Pincode      string          `json:"pincode"`
		Subtotal     decimal.Decimal `json:"subtotal"`
		CreatedAt    time.Time       `json:"created_at"`
		Items        []orderItemJSON `json:"items"`
	}

	orderItemJSON struct {
		Product       productRef      `json:"product"`
		Quantity      int             `json:"quantity"`
		PriceSnapshot decimal.Decimal `json:"price_snapshot"`
	}
)

// A productRef is either a nested product object or a bare product id.
type productRef struct {
	productJSON
}

func (r *productRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) != 0 && b[0] == '{' {
		return json.Unmarshal(b, &r.productJSON)
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	return json.Unmarshal(b, &r.ID)
}

type (
	credentialsJSON struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	registerJSON struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	tokensJSON struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
)

func (v categoryJSON) toDomain() domain.Category {
	return domain.Category{ID: v.ID, Name: v.Name, Slug: v.Slug}
}

func (v productJSON) toDomain() (p domain.Product) {
	p.ID = v.ID
	p.Name = v.Name
	p.Slug = v.Slug
	p.Description = v.Description
	p.Price = v.Price
	p.Stock = v.Stock
	p.IsActive = v.IsActive

	if v.Category != nil {
		c := v.Category.toDomain()
		p.Category = &c
	}

	p.Images = make([]domain.ProductImage, len(v.Images))
	for i := range v.Images {
		p.Images[i].ID = v.Images[i].ID
		p.Images[i].URL = v.Images[i].ImageURL
		p.Images[i].IsPrimary = v.Images[i].IsPrimary
	}
	return p
}

func (v cartJSON) toDomain() domain.Cart {
	c := domain.Cart{
		ID:        v.ID,
		UpdatedAt: v.UpdatedAt,
		Items:     make([]domain.CartItem, len(v.Items)),
	}
	for i, it := range v.Items {
		c.Items[i] = domain.CartItem{
			ID:            it.ID,
			Product:       it.Product.toDomain(),
			PriceSnapshot: it.PriceSnapshot,
			Quantity:      it.Quantity,
		}
	}
	return c
}

func (v orderJSON) toDomain() domain.Order {
	o := domain.Order{
		ID:     v.ID,
		Status: v.Status,
		Delivery: domain.DeliveryForm{
			FullName:     v.FullName,
			Phone:        v.Phone,
			AddressLine1: v.AddressLine1,
			City:         v.City,
			Pincode:      v.Pincode,
		},
		Subtotal:  v.Subtotal,
		CreatedAt: v.CreatedAt,
		Items:     make([]domain.OrderItem, len(v.Items)),
	}
	for i, it := range v.Items {
		o.Items[i] = domain.OrderItem{
			Product:       it.Product.toDomain(),
			Quantity:      it.Quantity,
			PriceSnapshot: it.PriceSnapshot,
		}
	}
	return o
}

func deliveryFormFromDomain(f domain.DeliveryForm) deliveryFormJSON {
	return deliveryFormJSON{
		FullName:     f.FullName,
		Phone:        f.Phone,
		AddressLine1: f.AddressLine1,
		City:         f.City,
		Pincode:      f.Pincode,
	}
}
