package handler

import (
	"net/http"
	"strconv"

	"aquavalle/internal/availability/service"
	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	apperrors "aquavalle/pkg/errors"
	apphttp "aquavalle/pkg/http"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	cfg     *config.Config
}

func NewAvailabilityHandler(service service.AvailabilityService, cfg *config.Config) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/rooms/:id", h.RoomDates)
	router.GET("/api/v1/availability/fullday", h.FulldayDates)
}

type unavailableDatesResponse struct {
	UnavailableDates []dates.Date `json:"unavailable_dates"`
}

func (h *AvailabilityHandler) RoomDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	from, to, err := parseDateRange(r)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	unavailable, err := h.service.UnavailableRoomDates(r.Context(), []string{ps.ByName("id")}, from, to)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, unavailableDatesResponse{UnavailableDates: unavailable})
}

func (h *AvailabilityHandler) FulldayDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from, to, err := parseDateRange(r)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	numGuests := 1
	if raw := r.URL.Query().Get("num_guests"); raw != "" {
		numGuests, err = strconv.Atoi(raw)
		if err != nil || numGuests < 1 {
			apphttp.WriteError(w, apperrors.InvalidInput("num_guests must be a positive integer"))
			return
		}
	}

	unavailable, err := h.service.UnavailableFulldayDates(r.Context(), from, to, numGuests)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, unavailableDatesResponse{UnavailableDates: unavailable})
}

func parseDateRange(r *http.Request) (dates.Date, dates.Date, error) {
	var zero dates.Date

	from, err := dates.Parse(r.URL.Query().Get("start_date"))
	if err != nil {
		return zero, zero, apperrors.InvalidInput("start_date must be a valid YYYY-MM-DD date")
	}

	to, err := dates.Parse(r.URL.Query().Get("end_date"))
	if err != nil {
		return zero, zero, apperrors.InvalidInput("end_date must be a valid YYYY-MM-DD date")
	}

	return from, to, nil
}
