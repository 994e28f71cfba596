package model

import (
	"slices"

	"github.com/tuanvumaihuynh/coffee-roastery/pkg/ptr"
)

// GreenCoffee is a lot of unroasted coffee held in stock.
type GreenCoffee struct {
	Meta

	Name             string   `json:"name"`
	OriginCountry    string   `json:"origin_country"`
	Region           *string  `json:"region"`
	Variety          *string  `json:"variety"`
	ProcessingMethod *string  `json:"processing_method"`
	AltitudeMASL     *int32   `json:"altitude_masl"`
	HarvestYear      *int32   `json:"harvest_year"`
	StockGrams       float64  `json:"stock_grams"`
	PricePerKg       *float64 `json:"price_per_kg"`
	PriceCurrency    *string  `json:"price_currency"`
	Supplier         *string  `json:"supplier"`
	CuppingNotes     []string `json:"cupping_notes"`
}

type CreateGreenCoffeeRequest struct {
	Name             *string  `json:"name" validate:"required"`
	OriginCountry    *string  `json:"origin_country" validate:"required"`
	Region           *string  `json:"region"`
	Variety          *string  `json:"variety"`
	ProcessingMethod *string  `json:"processing_method"`
	AltitudeMASL     *int32   `json:"altitude_masl"`
	HarvestYear      *int32   `json:"harvest_year"`
	StockGrams       *float64 `json:"stock_grams" validate:"required"`
	PricePerKg       *float64 `json:"price_per_kg"`
	PriceCurrency    *string  `json:"price_currency"`
	Supplier         *string  `json:"supplier"`
	CuppingNotes     []string `json:"cupping_notes"`
}

// ToGreenCoffee builds an unsaved record from the request.
func (r CreateGreenCoffeeRequest) ToGreenCoffee() GreenCoffee {
	return GreenCoffee{
		Name:             ptr.Deref(r.Name),
		OriginCountry:    ptr.Deref(r.OriginCountry),
		Region:           r.Region,
		Variety:          r.Variety,
		ProcessingMethod: r.ProcessingMethod,
		AltitudeMASL:     r.AltitudeMASL,
		HarvestYear:      r.HarvestYear,
		StockGrams:       ptr.Deref(r.StockGrams),
		PricePerKg:       r.PricePerKg,
		PriceCurrency:    r.PriceCurrency,
		Supplier:         r.Supplier,
		CuppingNotes:     slices.Clone(r.CuppingNotes),
	}
}

type UpdateGreenCoffeeRequest struct {
	Name             *string  `json:"name"`
	OriginCountry    *string  `json:"origin_country"`
	Region           *string  `json:"region"`
	Variety          *string  `json:"variety"`
	ProcessingMethod *string  `json:"processing_method"`
	AltitudeMASL     *int32   `json:"altitude_masl"`
	HarvestYear      *int32   `json:"harvest_year"`
	StockGrams       *float64 `json:"stock_grams"`
	PricePerKg       *float64 `json:"price_per_kg"`
	PriceCurrency    *string  `json:"price_currency"`
	Supplier         *string  `json:"supplier"`
	CuppingNotes     []string `json:"cupping_notes"`
}

// Merge returns g with every field present in u overwritten.
// Keep in sync with the GreenCoffee field list.
func (u UpdateGreenCoffeeRequest) Merge(g GreenCoffee) GreenCoffee {
	setValue(&g.Name, u.Name)
	setValue(&g.OriginCountry, u.OriginCountry)
	setOptional(&g.Region, u.Region)
	setOptional(&g.Variety, u.Variety)
	setOptional(&g.ProcessingMethod, u.ProcessingMethod)
	setOptional(&g.AltitudeMASL, u.AltitudeMASL)
	setOptional(&g.HarvestYear, u.HarvestYear)
	setValue(&g.StockGrams, u.StockGrams)
	setOptional(&g.PricePerKg, u.PricePerKg)
	setOptional(&g.PriceCurrency, u.PriceCurrency)
	setOptional(&g.Supplier, u.Supplier)
	setList(&g.CuppingNotes, u.CuppingNotes)
	return g
}
