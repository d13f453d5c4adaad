package handler

import (
	"encoding/json"
	"net/http"

	"aquavalle/internal/reservations/service"
	"aquavalle/pkg/config"
	apperrors "aquavalle/pkg/errors"
	apphttp "aquavalle/pkg/http"
	"aquavalle/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// ReservationHandler exposes the public booking endpoints used by the
// reservation wizard.
type ReservationHandler struct {
	service service.ReservationService
	cfg     *config.Config
}

func NewReservationHandler(service service.ReservationService, cfg *config.Config) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations/:id", h.GetByID)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apphttp.WriteError(w, apperrors.InvalidInput("Invalid JSON payload"))
		return
	}

	reservation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteCreated(w, reservation)
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, reservation)
}
