package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/ptr"
)

func sampleGreenCoffee() model.GreenCoffee {
	id := model.NewRecordID(model.GreenCoffeeTable, "g1")
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return model.GreenCoffee{
		Meta:             model.Meta{ID: &id, CreatedAt: &created, UpdatedAt: &created},
		Name:             "Yirgacheffe Konga",
		OriginCountry:    "Ethiopia",
		Region:           ptr.New("Gedeo"),
		Variety:          ptr.New("Heirloom"),
		ProcessingMethod: ptr.New("Washed"),
		AltitudeMASL:     ptr.New(int32(1950)),
		HarvestYear:      ptr.New(int32(2023)),
		StockGrams:       12000,
		PricePerKg:       ptr.New(14.5),
		PriceCurrency:    ptr.New("EUR"),
		Supplier:         ptr.New("Nordic Approach"),
		CuppingNotes:     []string{"jasmine", "bergamot"},
	}
}

func TestUpdateGreenCoffeeRequestMerge(t *testing.T) {
	tests := []struct {
		name   string
		update model.UpdateGreenCoffeeRequest
		mutate func(g *model.GreenCoffee)
	}{
		{
			name:   "empty update changes nothing",
			update: model.UpdateGreenCoffeeRequest{},
			mutate: func(*model.GreenCoffee) {},
		},
		{
			name:   "required field",
			update: model.UpdateGreenCoffeeRequest{StockGrams: ptr.New(0.0)},
			mutate: func(g *model.GreenCoffee) { g.StockGrams = 0 },
		},
		{
			name:   "optional field",
			update: model.UpdateGreenCoffeeRequest{Region: ptr.New("Sidama")},
			mutate: func(g *model.GreenCoffee) { g.Region = ptr.New("Sidama") },
		},
		{
			name:   "list replaced as a whole",
			update: model.UpdateGreenCoffeeRequest{CuppingNotes: []string{}},
			mutate: func(g *model.GreenCoffee) { g.CuppingNotes = []string{} },
		},
		{
			name: "several fields",
			update: model.UpdateGreenCoffeeRequest{
				Name:          ptr.New("Konga Lot 7"),
				OriginCountry: ptr.New("Ethiopia"),
				HarvestYear:   ptr.New(int32(2024)),
				Supplier:      ptr.New("Falcon"),
			},
			mutate: func(g *model.GreenCoffee) {
				g.Name = "Konga Lot 7"
				g.HarvestYear = ptr.New(int32(2024))
				g.Supplier = ptr.New("Falcon")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := sampleGreenCoffee()
			tc.mutate(&want)

			got := tc.update.Merge(sampleGreenCoffee())

			assert.Equal(t, want, got)
		})
	}
}

func TestUpdateGreenCoffeeRequestMergeDoesNotAlias(t *testing.T) {
	notes := []string{"plum"}
	u := model.UpdateGreenCoffeeRequest{CuppingNotes: notes, Supplier: ptr.New("Falcon")}

	got := u.Merge(sampleGreenCoffee())
	notes[0] = "changed"
	*u.Supplier = "changed"

	assert.Equal(t, []string{"plum"}, got.CuppingNotes)
	assert.Equal(t, "Falcon", *got.Supplier)
}

func TestUpdateRoastRequestMerge(t *testing.T) {
	roasted := time.Date(2024, 4, 2, 7, 30, 0, 0, time.UTC)
	green := model.NewRecordID(model.GreenCoffeeTable, "g1")
	base := model.Roast{
		Name:           "Konga light",
		GreenCoffee:    &green,
		DateRoasted:    &roasted,
		RoastLevel:     "Light",
		BatchSizeGrams: 5000,
		YieldGrams:     4300,
		Notes:          []string{"first crack 8:40"},
	}

	otherGreen := model.NewRecordID(model.GreenCoffeeTable, "missing")
	got := model.UpdateRoastRequest{
		GreenCoffee: &otherGreen,
		YieldGrams:  ptr.New(4250.0),
	}.Merge(base)

	want := base
	want.GreenCoffee = &otherGreen
	want.YieldGrams = 4250
	assert.Equal(t, want, got)

	assert.Equal(t, base, model.UpdateRoastRequest{}.Merge(base))
}

func TestUpdateProductRequestMerge(t *testing.T) {
	roast := model.NewRecordID(model.RoastTable, "r1")
	base := model.Product{
		Roast:            &roast,
		Name:             "Konga 250g",
		Description:      ptr.New("Floral washed Ethiopian"),
		Category:         ptr.New("filter"),
		Colours:          []string{"white"},
		Details:          []string{"whole bean"},
		PackageSizeGrams: 250,
		Price:            16,
		PriceCurrency:    ptr.New("EUR"),
		StockUnits:       40,
	}

	got := model.UpdateProductRequest{
		Category:   ptr.New("espresso"),
		Colours:    []string{"black", "gold"},
		StockUnits: ptr.New(int32(0)),
	}.Merge(base)

	want := base
	want.Category = ptr.New("espresso")
	want.Colours = []string{"black", "gold"}
	want.StockUnits = 0
	assert.Equal(t, want, got)
}

func TestCreateRequestsLeaveMetaUnset(t *testing.T) {
	g := model.CreateGreenCoffeeRequest{
		Name:          ptr.New("Test Green Coffee"),
		OriginCountry: ptr.New("Ethiopia"),
		StockGrams:    ptr.New(1000.0),
	}.ToGreenCoffee()
	assert.Equal(t, model.Meta{}, g.Meta)
	assert.Equal(t, "Test Green Coffee", g.Name)
	assert.Nil(t, g.CuppingNotes)

	r := model.CreateRoastRequest{
		Name:           ptr.New("Test Roast"),
		RoastLevel:     ptr.New("Medium"),
		BatchSizeGrams: ptr.New(500.0),
		YieldGrams:     ptr.New(450.0),
	}.ToRoast()
	assert.Equal(t, model.Meta{}, r.Meta)
	assert.Equal(t, 450.0, r.YieldGrams)

	p := model.CreateProductRequest{
		Name:             ptr.New("Sampler"),
		PackageSizeGrams: ptr.New(100.0),
		Price:            ptr.New(9.5),
		StockUnits:       ptr.New(int32(3)),
	}.ToProduct()
	assert.Equal(t, model.Meta{}, p.Meta)
	assert.Equal(t, int32(3), p.StockUnits)
}
