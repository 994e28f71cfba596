package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/service"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/validator"
)

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, v validator.Validator) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validator:  v,
	}
}

func (h *productHandler) register(s *Service) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.handle(h.ListProducts))
		r.Post("/", s.handle(h.CreateProduct))
		r.Get("/{id}", s.handle(h.GetProduct))
		r.Put("/{id}", s.handle(h.UpdateProduct))
		r.Delete("/{id}", s.handle(h.DeleteProduct))
	}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	items, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, items)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	item, err := h.productSvc.GetProduct(r.Context(), recordID(r))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req model.CreateProductRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		return err
	}

	item, err := h.productSvc.CreateProduct(r.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	var req model.UpdateProductRequest
	if err := decodeJSON(w, r, nil, &req); err != nil {
		return err
	}

	item, err := h.productSvc.UpdateProduct(r.Context(), recordID(r), req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	if err := h.productSvc.DeleteProduct(r.Context(), recordID(r)); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
