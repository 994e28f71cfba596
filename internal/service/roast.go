package service

import (
	"context"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

type RoastService interface {
	ListRoasts(ctx context.Context) ([]model.Roast, error)
	GetRoast(ctx context.Context, id string) (model.Roast, error)
	CreateRoast(ctx context.Context, req model.CreateRoastRequest) (model.Roast, error)
	UpdateRoast(ctx context.Context, id string, req model.UpdateRoastRequest) (model.Roast, error)
	DeleteRoast(ctx context.Context, id string) error
}

type roastService struct {
	records records[model.Roast, *model.Roast]
}

func NewRoastService(gw storage.Gateway, opts ...Option) RoastService {
	return &roastService{
		records: newRecords[model.Roast](gw, model.RoastTable, "Roast", opts),
	}
}

func (s *roastService) ListRoasts(ctx context.Context) ([]model.Roast, error) {
	return s.records.list(ctx)
}

func (s *roastService) GetRoast(ctx context.Context, id string) (model.Roast, error) {
	return s.records.get(ctx, id)
}

func (s *roastService) CreateRoast(ctx context.Context, req model.CreateRoastRequest) (model.Roast, error) {
	return s.records.create(ctx, req.ToRoast())
}

func (s *roastService) UpdateRoast(ctx context.Context, id string, req model.UpdateRoastRequest) (model.Roast, error) {
	return s.records.update(ctx, id, req.Merge)
}

func (s *roastService) DeleteRoast(ctx context.Context, id string) error {
	return s.records.delete(ctx, id)
}
