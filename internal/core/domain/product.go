package domain

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

const imageFallbackPattern = "https://picsum.photos/seed/%s/900/700"

type (
	Product struct {
		ID          int64
		Name        string
		Slug        string
		Description string
		Price       decimal.Decimal
		Stock       int
		Category    *Category
		IsActive    bool
		Images      []ProductImage
	}

	ProductImage struct {
		ID        int64
		URL       string
		IsPrimary bool
	}

	Category struct {
		ID   int64
		Name string
		Slug string
	}
)

// InStock reports whether the product could be added to a cart at load time.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// CategorySlug returns the slug of the product category or an empty string.
func (p Product) CategorySlug() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Slug
}

// PrimaryImage returns the first image flagged as primary, else the first
// image, else a placeholder seeded by the slug (or the id when slug is empty).
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary && img.URL != "" {
			return img.URL
		}
	}

	if len(p.Images) != 0 && p.Images[0].URL != "" {
		return p.Images[0].URL
	}

	seed := p.Slug
	if seed == "" {
		seed = strconv.FormatInt(p.ID, 10)
	}
	return fmt.Sprintf(imageFallbackPattern, url.PathEscape(seed))
}
