package model

import (
	"slices"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/pkg/ptr"
)

// Roast is one roasting batch. GreenCoffee references the lot it was
// roasted from; the reference is not checked and may dangle.
type Roast struct {
	Meta

	Name           string     `json:"name"`
	GreenCoffee    *RecordID  `json:"green_coffee"`
	DateRoasted    *time.Time `json:"date_roasted"`
	RoastLevel     string     `json:"roast_level"`
	BatchSizeGrams float64    `json:"batch_size_grams"`
	YieldGrams     float64    `json:"yield_grams"`
	Notes          []string   `json:"notes"`
}

type CreateRoastRequest struct {
	Name           *string    `json:"name" validate:"required"`
	GreenCoffee    *RecordID  `json:"green_coffee"`
	DateRoasted    *time.Time `json:"date_roasted"`
	RoastLevel     *string    `json:"roast_level" validate:"required"`
	BatchSizeGrams *float64   `json:"batch_size_grams" validate:"required"`
	YieldGrams     *float64   `json:"yield_grams" validate:"required"`
	Notes          []string   `json:"notes"`
}

func (r CreateRoastRequest) ToRoast() Roast {
	return Roast{
		Name:           ptr.Deref(r.Name),
		GreenCoffee:    r.GreenCoffee,
		DateRoasted:    r.DateRoasted,
		RoastLevel:     ptr.Deref(r.RoastLevel),
		BatchSizeGrams: ptr.Deref(r.BatchSizeGrams),
		YieldGrams:     ptr.Deref(r.YieldGrams),
		Notes:          slices.Clone(r.Notes),
	}
}

type UpdateRoastRequest struct {
	Name           *string    `json:"name"`
	GreenCoffee    *RecordID  `json:"green_coffee"`
	DateRoasted    *time.Time `json:"date_roasted"`
	RoastLevel     *string    `json:"roast_level"`
	BatchSizeGrams *float64   `json:"batch_size_grams"`
	YieldGrams     *float64   `json:"yield_grams"`
	Notes          []string   `json:"notes"`
}

// Merge returns r with every field present in u overwritten.
// Keep in sync with the Roast field list.
func (u UpdateRoastRequest) Merge(r Roast) Roast {
	setValue(&r.Name, u.Name)
	setOptional(&r.GreenCoffee, u.GreenCoffee)
	setOptional(&r.DateRoasted, u.DateRoasted)
	setValue(&r.RoastLevel, u.RoastLevel)
	setValue(&r.BatchSizeGrams, u.BatchSizeGrams)
	setValue(&r.YieldGrams, u.YieldGrams)
	setList(&r.Notes, u.Notes)
	return r
}
