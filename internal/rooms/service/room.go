package service

import (
	"context"
	"errors"

	roomserrors "aquavalle/internal/rooms/errors"
	"aquavalle/internal/rooms/repository"
	"aquavalle/pkg/config"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/model"
)

type RoomService interface {
	GetAll(ctx context.Context) ([]*model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Room, error)
}

type roomService struct {
	repo repository.RoomRepository
	cfg  *config.Config
}

func NewRoomService(repo repository.RoomRepository, cfg *config.Config) RoomService {
	return &roomService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *roomService) GetAll(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx, true)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

// GetByIDs resolves a set of room ids, failing when any of them is unknown.
func (s *roomService) GetByIDs(ctx context.Context, ids []string) ([]*model.Room, error) {
	if len(ids) == 0 {
		return nil, apperrors.InvalidInput("At least one room ID is required")
	}

	rooms, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		s.cfg.Log.Error("Failed to resolve rooms", "ids", ids, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	if len(rooms) != len(ids) {
		found := make(map[string]bool, len(rooms))
		for _, room := range rooms {
			found[room.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, apperrors.NotFoundWithID("Room", id)
			}
		}
	}

	return rooms, nil
}
