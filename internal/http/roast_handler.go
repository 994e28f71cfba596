package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/service"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/validator"
)

type roastHandler struct {
	roastSvc  service.RoastService
	validator validator.Validator
}

func newRoastHandler(roastSvc service.RoastService, v validator.Validator) *roastHandler {
	return &roastHandler{
		roastSvc:  roastSvc,
		validator: v,
	}
}

func (h *roastHandler) register(s *Service) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.handle(h.ListRoasts))
		r.Post("/", s.handle(h.CreateRoast))
		r.Get("/{id}", s.handle(h.GetRoast))
		r.Put("/{id}", s.handle(h.UpdateRoast))
		r.Delete("/{id}", s.handle(h.DeleteRoast))
	}
}

func (h *roastHandler) ListRoasts(w http.ResponseWriter, r *http.Request) error {
	items, err := h.roastSvc.ListRoasts(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, items)
}

func (h *roastHandler) GetRoast(w http.ResponseWriter, r *http.Request) error {
	item, err := h.roastSvc.GetRoast(r.Context(), recordID(r))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *roastHandler) CreateRoast(w http.ResponseWriter, r *http.Request) error {
	var req model.CreateRoastRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		return err
	}

	item, err := h.roastSvc.CreateRoast(r.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *roastHandler) UpdateRoast(w http.ResponseWriter, r *http.Request) error {
	var req model.UpdateRoastRequest
	if err := decodeJSON(w, r, nil, &req); err != nil {
		return err
	}

	item, err := h.roastSvc.UpdateRoast(r.Context(), recordID(r), req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, item)
}

func (h *roastHandler) DeleteRoast(w http.ResponseWriter, r *http.Request) error {
	if err := h.roastSvc.DeleteRoast(r.Context(), recordID(r)); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, messageResponse{Message: "Roast deleted successfully"})
}
