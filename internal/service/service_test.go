package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/apperr"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/service"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/memory"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/ptr"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/zerror"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func statusOf(t *testing.T, err error) zerror.Status {
	t.Helper()

	var zerr zerror.ZError
	require.ErrorAs(t, err, &zerr)
	return zerr.Status()
}

func msgOf(t *testing.T, err error) string {
	t.Helper()

	var zerr zerror.ZError
	require.ErrorAs(t, err, &zerr)
	return zerr.Msg()
}

func TestGreenCoffeeService(t *testing.T) {
	ctx := context.Background()
	updatedAt := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := service.NewGreenCoffeeService(memory.New(), service.WithClock(fixedClock(updatedAt)))

	created, err := svc.CreateGreenCoffee(ctx, model.CreateGreenCoffeeRequest{
		Name:          ptr.New("Ethiopia Yirgacheffe"),
		OriginCountry: ptr.New("Ethiopia"),
		Region:        ptr.New("Gedeo"),
		StockGrams:    ptr.New(0.0),
		CuppingNotes:  []string{"jasmine", "lemon"},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, model.GreenCoffeeTable, created.ID.Table)
	assert.Zero(t, created.StockGrams)

	t.Run("Should get by full id and bare key", func(t *testing.T) {
		byID, err := svc.GetGreenCoffee(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, created, byID)

		byKey, err := svc.GetGreenCoffee(ctx, created.ID.Key)
		require.NoError(t, err)
		assert.Equal(t, created, byKey)
	})

	t.Run("Should not resolve id of another table", func(t *testing.T) {
		_, err := svc.GetGreenCoffee(ctx, model.NewRecordID(model.RoastTable, created.ID.Key).String())
		assert.Equal(t, zerror.StatusNotFound, statusOf(t, err))
	})

	t.Run("Should merge present fields and stamp updated at", func(t *testing.T) {
		got, err := svc.UpdateGreenCoffee(ctx, created.ID.String(), model.UpdateGreenCoffeeRequest{
			StockGrams: ptr.New(60000.0),
			Supplier:   ptr.New("Importer A"),
		})
		require.NoError(t, err)

		assert.Equal(t, 60000.0, got.StockGrams)
		assert.Equal(t, ptr.New("Importer A"), got.Supplier)
		assert.Equal(t, "Ethiopia Yirgacheffe", got.Name)
		assert.Equal(t, ptr.New("Gedeo"), got.Region)
		assert.Equal(t, []string{"jasmine", "lemon"}, got.CuppingNotes)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
		assert.Equal(t, updatedAt, *got.UpdatedAt)
	})

	t.Run("Should stamp updated at on empty update", func(t *testing.T) {
		later := updatedAt.Add(time.Hour)
		svc := service.NewGreenCoffeeService(memory.New(), service.WithClock(fixedClock(later)))
		rec, err := svc.CreateGreenCoffee(ctx, model.CreateGreenCoffeeRequest{
			Name:          ptr.New("Kenya AA"),
			OriginCountry: ptr.New("Kenya"),
			StockGrams:    ptr.New(1.0),
		})
		require.NoError(t, err)

		got, err := svc.UpdateGreenCoffee(ctx, rec.ID.String(), model.UpdateGreenCoffeeRequest{})
		require.NoError(t, err)
		assert.Equal(t, later, *got.UpdatedAt)
		assert.Equal(t, rec.Name, got.Name)
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		_, err := svc.GetGreenCoffee(ctx, "green_coffee:missing")
		assert.Equal(t, zerror.StatusNotFound, statusOf(t, err))
		assert.Equal(t, "Green coffee with id 'green_coffee:missing' not found", msgOf(t, err))

		_, err = svc.UpdateGreenCoffee(ctx, "missing", model.UpdateGreenCoffeeRequest{})
		assert.True(t, errors.Is(err, apperr.NotFoundErr))

		err = svc.DeleteGreenCoffee(ctx, "missing")
		assert.True(t, errors.Is(err, apperr.NotFoundErr))
	})

	t.Run("Should delete once", func(t *testing.T) {
		require.NoError(t, svc.DeleteGreenCoffee(ctx, created.ID.String()))

		err := svc.DeleteGreenCoffee(ctx, created.ID.String())
		assert.Equal(t, zerror.StatusNotFound, statusOf(t, err))

		all, err := svc.ListGreenCoffees(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestRoastService_DanglingReference(t *testing.T) {
	ctx := context.Background()
	svc := service.NewRoastService(memory.New())

	ghost := model.NewRecordID(model.GreenCoffeeTable, "never-created")
	created, err := svc.CreateRoast(ctx, model.CreateRoastRequest{
		Name:           ptr.New("Ghost roast"),
		GreenCoffee:    &ghost,
		RoastLevel:     ptr.New("light"),
		BatchSizeGrams: ptr.New(500.0),
		YieldGrams:     ptr.New(420.0),
	})
	require.NoError(t, err)

	got, err := svc.GetRoast(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, &ghost, got.GreenCoffee)
}

func TestProductService_ListCompleteness(t *testing.T) {
	ctx := context.Background()
	svc := service.NewProductService(memory.New())

	want := map[string]bool{}
	for _, name := range []string{"Espresso 250g", "Filter 1kg", "Decaf 250g"} {
		p, err := svc.CreateProduct(ctx, model.CreateProductRequest{
			Name:             ptr.New(name),
			PackageSizeGrams: ptr.New(250.0),
			Price:            ptr.New(12.5),
			StockUnits:       ptr.New(int32(0)),
		})
		require.NoError(t, err)
		want[p.ID.String()] = true
	}

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	got := map[string]bool{}
	for _, p := range all {
		got[p.ID.String()] = true
	}
	assert.Equal(t, want, got)
}

// silentGateway accepts writes but never returns the record.
type silentGateway struct {
	*memory.Gateway
}

func (silentGateway) Create(context.Context, string, json.RawMessage) (*storage.Document, error) {
	return nil, nil
}

func (silentGateway) Update(context.Context, string, string, json.RawMessage, time.Time) (*storage.Document, error) {
	return nil, nil
}

func TestService_AbsentAfterWrite(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()
	svc := service.NewRoastService(silentGateway{backing})

	_, err := svc.CreateRoast(ctx, model.CreateRoastRequest{
		Name:           ptr.New("Lost"),
		RoastLevel:     ptr.New("dark"),
		BatchSizeGrams: ptr.New(1.0),
		YieldGrams:     ptr.New(1.0),
	})
	assert.Equal(t, zerror.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "Failed to create roast record", msgOf(t, err))

	doc, err := backing.Create(ctx, model.RoastTable, json.RawMessage(`{"name":"Stored"}`))
	require.NoError(t, err)

	_, err = svc.UpdateRoast(ctx, doc.ID.String(), model.UpdateRoastRequest{Name: ptr.New("Renamed")})
	assert.Equal(t, zerror.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "Failed to update roast record", msgOf(t, err))
}

type brokenGateway struct {
	storage.Gateway
}

func (brokenGateway) List(context.Context, string) ([]storage.Document, error) {
	return nil, errors.New("connection refused")
}

func (brokenGateway) Delete(context.Context, string, string) (*storage.Document, error) {
	return nil, errors.New("connection refused")
}

func TestService_StorageFailure(t *testing.T) {
	svc := service.NewProductService(brokenGateway{})

	_, err := svc.ListProducts(context.Background())
	assert.Equal(t, zerror.StatusInternalServerError, statusOf(t, err))
	assert.True(t, errors.Is(err, apperr.DatabaseErr))
	assert.Equal(t, "Database error: list product: connection refused", msgOf(t, err))

	err = svc.DeleteProduct(context.Background(), "product:abc")
	assert.True(t, errors.Is(err, apperr.DatabaseErr))
}
