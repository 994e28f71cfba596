package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/service"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/validator"
)

type greenCoffeeHandler struct {
	greenCoffeeSvc service.GreenCoffeeService
	validator      validator.Validator
}

func newGreenCoffeeHandler(greenCoffeeSvc service.GreenCoffeeService, v validator.Validator) *greenCoffeeHandler {
	return &greenCoffeeHandler{
		greenCoffeeSvc: greenCoffeeSvc,
		validator:      v,
	}
}

func (h *greenCoffeeHandler) register(s *Service) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.handle(h.ListGreenCoffees))
		r.Post("/", s.handle(h.CreateGreenCoffee))
		r.Get("/{id}", s.handle(h.GetGreenCoffee))
		r.Put("/{id}", s.handle(h.UpdateGreenCoffee))
		r.Delete("/{id}", s.handle(h.DeleteGreenCoffee))
	}
}

func (h *greenCoffeeHandler) ListGreenCoffees(w http.ResponseWriter, r *http.Request) error {
	items, err := h.greenCoffeeSvc.ListGreenCoffees(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, items)
}

func (h *greenCoffeeHandler) GetGreenCoffee(w http.ResponseWriter, r *http.Request) error {
	item, err := h.greenCoffeeSvc.GetGreenCoffee(r.Context(), recordID(r))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *greenCoffeeHandler) CreateGreenCoffee(w http.ResponseWriter, r *http.Request) error {
	var req model.CreateGreenCoffeeRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		return err
	}

	item, err := h.greenCoffeeSvc.CreateGreenCoffee(r.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *greenCoffeeHandler) UpdateGreenCoffee(w http.ResponseWriter, r *http.Request) error {
	var req model.UpdateGreenCoffeeRequest
	if err := decodeJSON(w, r, nil, &req); err != nil {
		return err
	}

	item, err := h.greenCoffeeSvc.UpdateGreenCoffee(r.Context(), recordID(r), req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *greenCoffeeHandler) DeleteGreenCoffee(w http.ResponseWriter, r *http.Request) error {
	if err := h.greenCoffeeSvc.DeleteGreenCoffee(r.Context(), recordID(r)); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, messageResponse{Message: "Green coffee deleted successfully"})
}
