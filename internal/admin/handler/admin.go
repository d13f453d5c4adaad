package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	adminservice "aquavalle/internal/admin/service"
	blocksservice "aquavalle/internal/blocks/service"
	reservationsservice "aquavalle/internal/reservations/service"

	"aquavalle/pkg/auth"
	"aquavalle/pkg/config"
	apperrors "aquavalle/pkg/errors"
	apphttp "aquavalle/pkg/http"
	"aquavalle/pkg/middleware"
	"aquavalle/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// AdminHandler exposes the authenticated management API. Everything except
// login and the password reset pair sits behind the bearer middleware.
type AdminHandler struct {
	auth         adminservice.AuthService
	stats        adminservice.StatsService
	reservations reservationsservice.ReservationService
	blocks       blocksservice.BlockService
	tokens       *auth.TokenManager
	cfg          *config.Config
}

func NewAdminHandler(
	authSvc adminservice.AuthService,
	stats adminservice.StatsService,
	reservations reservationsservice.ReservationService,
	blocks blocksservice.BlockService,
	tokens *auth.TokenManager,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		auth:         authSvc,
		stats:        stats,
		reservations: reservations,
		blocks:       blocks,
		tokens:       tokens,
		cfg:          cfg,
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	requireAdmin := middleware.RequireAdmin(h.tokens)

	router.POST("/api/v1/admin/login", h.Login)
	router.POST("/api/v1/admin/request-reset", h.RequestReset)
	router.POST("/api/v1/admin/reset-password", h.ResetPassword)

	router.GET("/api/v1/admin/me", requireAdmin(h.Me))
	router.GET("/api/v1/admin/stats", requireAdmin(h.Stats))
	router.GET("/api/v1/admin/reservations", requireAdmin(h.ListReservations))
	router.PUT("/api/v1/admin/reservations/:id", requireAdmin(h.UpdateReservation))
	router.DELETE("/api/v1/admin/reservations/:id", requireAdmin(h.CancelReservation))
	router.GET("/api/v1/admin/blocks", requireAdmin(h.ListBlocks))
	router.POST("/api/v1/admin/blocks", requireAdmin(h.CreateBlock))
	router.DELETE("/api/v1/admin/blocks/:id", requireAdmin(h.DeleteBlock))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apphttp.WriteError(w, apperrors.InvalidInput("Invalid JSON payload"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, result)
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.AdminClaims(r)
	if !ok {
		apphttp.WriteError(w, apperrors.Unauthorized("missing credentials"))
		return
	}

	admin, err := h.auth.Me(r.Context(), claims.Subject)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, admin)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	month, year, err := extractMonthYear(r)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	stats, err := h.stats.Dashboard(r.Context(), month, year)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, stats)
}

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := apphttp.ExtractLimitOffset(r)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	month, year, err := extractMonthYear(r)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	filter, _, err := adminservice.Window(month, year)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}
	filter.Status = r.URL.Query().Get("status_filter")
	filter.Type = r.URL.Query().Get("reservation_type")

	reservations, count, err := h.reservations.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WritePaginated(w, reservations, count, limit, offset)
}

func (h *AdminHandler) UpdateReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ReservationUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		apphttp.WriteError(w, apperrors.InvalidInput("Invalid JSON payload"))
		return
	}

	reservation, err := h.reservations.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, reservation)
}

func (h *AdminHandler) CancelReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.reservations.Cancel(r.Context(), ps.ByName("id")); err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteNoContent(w)
}

func (h *AdminHandler) ListBlocks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := apphttp.ExtractLimitOffset(r)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	blocks, count, err := h.blocks.GetAll(r.Context(), limit, offset)
	if err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WritePaginated(w, blocks, count, limit, offset)
}

func (h *AdminHandler) CreateBlock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var block model.AvailabilityBlock
	if err := json.NewDecoder(r.Body).Decode(&block); err != nil {
		apphttp.WriteError(w, apperrors.InvalidInput("Invalid JSON payload"))
		return
	}

	if claims, ok := middleware.AdminClaims(r); ok {
		block.CreatedBy = claims.Email
	}

	if err := h.blocks.Create(r.Context(), &block); err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteCreated(w, block)
}

func (h *AdminHandler) DeleteBlock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.blocks.Delete(r.Context(), ps.ByName("id")); err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteNoContent(w)
}

type requestResetRequest struct {
	Email string `json:"email"`
}

func (h *AdminHandler) RequestReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req requestResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apphttp.WriteError(w, apperrors.InvalidInput("Invalid JSON payload"))
		return
	}

	if err := h.auth.RequestReset(r.Context(), req.Email); err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, map[string]string{
		"message": "If the email exists, a reset code has been sent",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apphttp.WriteError(w, apperrors.InvalidInput("Invalid JSON payload"))
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		apphttp.WriteError(w, err)
		return
	}

	apphttp.WriteSuccess(w, map[string]string{
		"message": "Password updated successfully",
	})
}

func extractMonthYear(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	month := 0
	if s := query.Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid month parameter: " + s)
		}
		month = v
	}

	year := 0
	if s := query.Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid year parameter: " + s)
		}
		year = v
	}

	return month, year, nil
}
