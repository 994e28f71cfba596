package service

import (
	"context"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

type GreenCoffeeService interface {
	ListGreenCoffees(ctx context.Context) ([]model.GreenCoffee, error)
	GetGreenCoffee(ctx context.Context, id string) (model.GreenCoffee, error)
	CreateGreenCoffee(ctx context.Context, req model.CreateGreenCoffeeRequest) (model.GreenCoffee, error)
	UpdateGreenCoffee(ctx context.Context, id string, req model.UpdateGreenCoffeeRequest) (model.GreenCoffee, error)
	DeleteGreenCoffee(ctx context.Context, id string) error
}

type greenCoffeeService struct {
	records records[model.GreenCoffee, *model.GreenCoffee]
}

func NewGreenCoffeeService(gw storage.Gateway, opts ...Option) GreenCoffeeService {
	return &greenCoffeeService{
		records: newRecords[model.GreenCoffee](gw, model.GreenCoffeeTable, "Green coffee", opts),
	}
}

func (s *greenCoffeeService) ListGreenCoffees(ctx context.Context) ([]model.GreenCoffee, error) {
	return s.records.list(ctx)
}

func (s *greenCoffeeService) GetGreenCoffee(ctx context.Context, id string) (model.GreenCoffee, error) {
	return s.records.get(ctx, id)
}

func (s *greenCoffeeService) CreateGreenCoffee(ctx context.Context, req model.CreateGreenCoffeeRequest) (model.GreenCoffee, error) {
	return s.records.create(ctx, req.ToGreenCoffee())
}

func (s *greenCoffeeService) UpdateGreenCoffee(ctx context.Context, id string, req model.UpdateGreenCoffeeRequest) (model.GreenCoffee, error) {
	return s.records.update(ctx, id, req.Merge)
}

func (s *greenCoffeeService) DeleteGreenCoffee(ctx context.Context, id string) error {
	return s.records.delete(ctx, id)
}
