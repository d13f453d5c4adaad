package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aquavalle/internal/reservations/repository"
	"aquavalle/pkg/config"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/logger"
	"aquavalle/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockReservationService struct {
	createFunc  func(ctx context.Context, req *model.ReservationCreate) (*model.ReservationResponse, error)
	getByIDFunc func(ctx context.Context, id string) (*model.ReservationResponse, error)
}

func (m *mockReservationService) Create(ctx context.Context, req *model.ReservationCreate) (*model.ReservationResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.ReservationResponse{}, nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.ReservationResponse, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.ReservationResponse{}, nil
}

func (m *mockReservationService) GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.ReservationResponse, int64, error) {
	return nil, 0, nil
}

func (m *mockReservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.ReservationResponse, error) {
	return nil, nil
}

func (m *mockReservationService) Cancel(ctx context.Context, id string) error {
	return nil
}

func testHandler(svc *mockReservationService) *ReservationHandler {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
	return NewReservationHandler(svc, cfg)
}

func TestCreate_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       `{"client_name":"Maria Perez"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json",
			body:       `{"client_name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "room not available",
			body:       `{}`,
			serviceErr: apperrors.RoomNotAvailable("requested dates overlap an existing reservation"),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeRoomNotAvailable,
		},
		{
			name:       "capacity exceeded",
			body:       `{}`,
			serviceErr: apperrors.CapacityExceeded("only 2 day-pass places left"),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeCapacityExceeded,
		},
		{
			name:       "validation failure",
			body:       `{}`,
			serviceErr: apperrors.Validation("Reservation validation failed", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				createFunc: func(ctx context.Context, req *model.ReservationCreate) (*model.ReservationResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.ReservationResponse{ID: "65f0000000000000000000ff"}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			testHandler(svc).Create(w, req, httprouter.Params{})

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}

			if tt.wantCode != "" {
				var resp struct {
					Code string `json:"code"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode error body: %v", err)
				}
				if resp.Code != tt.wantCode {
					t.Errorf("expected error code %s, got %s", tt.wantCode, resp.Code)
				}
			}
		})
	}
}

func TestGetByID_StatusCodes(t *testing.T) {
	svc := &mockReservationService{
		getByIDFunc: func(ctx context.Context, id string) (*model.ReservationResponse, error) {
			if id == "65f0000000000000000000ff" {
				return &model.ReservationResponse{ID: id}, nil
			}
			return nil, apperrors.NotFoundWithID("Reservation", id)
		},
	}
	handler := testHandler(svc)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/65f0000000000000000000ff", nil)
		w := httptest.NewRecorder()

		handler.GetByID(w, req, httprouter.Params{{Key: "id", Value: "65f0000000000000000000ff"}})

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/65f00000000000000000dead", nil)
		w := httptest.NewRecorder()

		handler.GetByID(w, req, httprouter.Params{{Key: "id", Value: "65f00000000000000000dead"}})

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}
