package service

import (
	"context"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	records records[model.Product, *model.Product]
}

func NewProductService(gw storage.Gateway, opts ...Option) ProductService {
	return &productService{
		records: newRecords[model.Product](gw, model.ProductTable, "Product", opts),
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.records.list(ctx)
}

func (s *productService) GetProduct(ctx context.Context, id string) (model.Product, error) {
	return s.records.get(ctx, id)
}

func (s *productService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	return s.records.create(ctx, req.ToProduct())
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (model.Product, error) {
	return s.records.update(ctx, id, req.Merge)
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	return s.records.delete(ctx, id)
}
