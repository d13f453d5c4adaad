package service

import (
	"context"
	"errors"
	"sync"

	blockserrors "aquavalle/internal/blocks/errors"
	"aquavalle/internal/blocks/repository"
	roomsservice "aquavalle/internal/rooms/service"
	"aquavalle/pkg/config"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/model"
)

type BlockService interface {
	Create(ctx context.Context, block *model.AvailabilityBlock) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.BlockResponse, int64, error)
	Delete(ctx context.Context, id string) error
}

type blockService struct {
	repo    repository.BlockRepository
	roomSvc roomsservice.RoomService
	cfg     *config.Config
}

func NewBlockService(repo repository.BlockRepository, roomSvc roomsservice.RoomService, cfg *config.Config) BlockService {
	return &blockService{
		repo:    repo,
		roomSvc: roomSvc,
		cfg:     cfg,
	}
}

func (s *blockService) Create(ctx context.Context, block *model.AvailabilityBlock) error {
	if block.StartDate.IsZero() || block.EndDate.IsZero() {
		return apperrors.InvalidInput("start_date and end_date are required")
	}
	if block.EndDate.Before(block.StartDate) {
		return apperrors.Validation("Invalid block range", map[string]any{
			"error": "end_date must not be before start_date",
		})
	}
	if block.BlockType == "" {
		block.BlockType = model.BlockOther
	}

	// A room-scoped block must point at a real room.
	if block.RoomID != nil {
		if _, err := s.roomSvc.GetByID(ctx, *block.RoomID); err != nil {
			return err
		}
	}

	if err := s.repo.Create(ctx, block); err != nil {
		s.cfg.Log.Error("Failed to create availability block", "error", err)
		return apperrors.Internal("Failed to create availability block", err)
	}

	s.cfg.Log.Info("Availability block created",
		"id", block.ID,
		"room_id", block.RoomID,
		"start_date", block.StartDate,
		"end_date", block.EndDate,
		"blocks_fullday", block.BlocksFullday,
	)
	return nil
}

func (s *blockService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.BlockResponse, int64, error) {
	var count int64
	var blocks []*model.AvailabilityBlock
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count availability blocks", "error", errCount)
			errCount = apperrors.Internal("Failed to count availability blocks", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		blocks, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list availability blocks", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve availability blocks", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	responses, err := s.toResponses(ctx, blocks)
	if err != nil {
		return nil, 0, err
	}

	return responses, count, nil
}

func (s *blockService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Block ID cannot be empty")
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, blockserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Availability block", id)
		}
		if errors.Is(err, blockserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid block ID format")
		}
		return apperrors.Internal("Failed to delete availability block", err)
	}

	s.cfg.Log.Info("Availability block deleted", "id", id)
	return nil
}

func (s *blockService) toResponses(ctx context.Context, blocks []*model.AvailabilityBlock) ([]*model.BlockResponse, error) {
	rooms, err := s.roomSvc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.Name
	}

	responses := make([]*model.BlockResponse, 0, len(blocks))
	for _, block := range blocks {
		roomName := "All rooms"
		if block.RoomID != nil {
			if name, ok := names[*block.RoomID]; ok {
				roomName = name
			}
		}
		responses = append(responses, &model.BlockResponse{
			ID:            block.ID,
			RoomID:        block.RoomID,
			RoomName:      roomName,
			StartDate:     block.StartDate,
			EndDate:       block.EndDate,
			BlockType:     block.BlockType,
			Reason:        block.Reason,
			BlocksFullday: block.BlocksFullday,
			CreatedAt:     block.CreatedAt,
		})
	}

	return responses, nil
}
