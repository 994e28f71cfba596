package model

import (
	"slices"

	"github.com/tuanvumaihuynh/coffee-roastery/pkg/ptr"
)

// Product is a packaged item for sale, optionally made from a Roast.
type Product struct {
	Meta

	Roast            *RecordID `json:"roast"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category"`
	Colours          []string  `json:"colours"`
	Details          []string  `json:"details"`
	PackageSizeGrams float64   `json:"package_size_grams"`
	Price            float64   `json:"price"`
	PriceCurrency    *string   `json:"price_currency"`
	StockUnits       int32     `json:"stock_units"`
}

type CreateProductRequest struct {
	Roast            *RecordID `json:"roast"`
	Name             *string   `json:"name" validate:"required"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category"`
	Colours          []string  `json:"colours"`
	Details          []string  `json:"details"`
	PackageSizeGrams *float64  `json:"package_size_grams" validate:"required"`
	Price            *float64  `json:"price" validate:"required"`
	PriceCurrency    *string   `json:"price_currency"`
	StockUnits       *int32    `json:"stock_units" validate:"required"`
}

func (r CreateProductRequest) ToProduct() Product {
	return Product{
		Roast:            r.Roast,
		Name:             ptr.Deref(r.Name),
		Description:      r.Description,
		Category:         r.Category,
		Colours:          slices.Clone(r.Colours),
		Details:          slices.Clone(r.Details),
		PackageSizeGrams: ptr.Deref(r.PackageSizeGrams),
		Price:            ptr.Deref(r.Price),
		PriceCurrency:    r.PriceCurrency,
		StockUnits:       ptr.Deref(r.StockUnits),
	}
}

type UpdateProductRequest struct {
	Roast            *RecordID `json:"roast"`
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category"`
	Colours          []string  `json:"colours"`
	Details          []string  `json:"details"`
	PackageSizeGrams *float64  `json:"package_size_grams"`
	Price            *float64  `json:"price"`
	PriceCurrency    *string   `json:"price_currency"`
	StockUnits       *int32    `json:"stock_units"`
}

// Merge returns p with every field present in u overwritten.
// Keep in sync with the Product field list.
func (u UpdateProductRequest) Merge(p Product) Product {
	setOptional(&p.Roast, u.Roast)
	setValue(&p.Name, u.Name)
	setOptional(&p.Description, u.Description)
	setOptional(&p.Category, u.Category)
	setList(&p.Colours, u.Colours)
	setList(&p.Details, u.Details)
	setValue(&p.PackageSizeGrams, u.PackageSizeGrams)
	setValue(&p.Price, u.Price)
	setOptional(&p.PriceCurrency, u.PriceCurrency)
	setValue(&p.StockUnits, u.StockUnits)
	return p
}
