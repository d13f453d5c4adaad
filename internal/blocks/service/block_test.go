package service

import (
	"context"
	"testing"

	blockserrors "aquavalle/internal/blocks/errors"
	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/logger"
	"aquavalle/pkg/model"
)

const pachoID = "65f000000000000000000001"

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

type mockBlockRepo struct {
	created   []*model.AvailabilityBlock
	deleteErr error
}

func (m *mockBlockRepo) Create(ctx context.Context, block *model.AvailabilityBlock) error {
	m.created = append(m.created, block)
	return nil
}

func (m *mockBlockRepo) FindByID(ctx context.Context, id string) (*model.AvailabilityBlock, error) {
	return nil, blockserrors.ErrNotFound
}

func (m *mockBlockRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.AvailabilityBlock, error) {
	return m.created, nil
}

func (m *mockBlockRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.created)), nil
}

func (m *mockBlockRepo) FindOverlapping(ctx context.Context, from, to dates.Date) ([]*model.AvailabilityBlock, error) {
	return nil, nil
}

func (m *mockBlockRepo) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

type mockRoomService struct{}

func (m *mockRoomService) GetAll(ctx context.Context) ([]*model.Room, error) {
	return []*model.Room{{ID: pachoID, Name: "Pacho"}}, nil
}

func (m *mockRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == pachoID {
		return &model.Room{ID: pachoID, Name: "Pacho"}, nil
	}
	return nil, apperrors.NotFoundWithID("Room", id)
}

func (m *mockRoomService) GetByIDs(ctx context.Context, ids []string) ([]*model.Room, error) {
	return nil, nil
}

func TestCreateBlock(t *testing.T) {
	t.Run("valid all-rooms block", func(t *testing.T) {
		repo := &mockBlockRepo{}
		svc := NewBlockService(repo, &mockRoomService{}, testConfig())

		err := svc.Create(context.Background(), &model.AvailabilityBlock{
			StartDate: dates.MustParse("2025-03-15"),
			EndDate:   dates.MustParse("2025-03-16"),
			BlockType: model.BlockMaintenance,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected 1 block created, got %d", len(repo.created))
		}
	})

	t.Run("one-day block with equal dates", func(t *testing.T) {
		repo := &mockBlockRepo{}
		svc := NewBlockService(repo, &mockRoomService{}, testConfig())

		err := svc.Create(context.Background(), &model.AvailabilityBlock{
			StartDate: dates.MustParse("2025-03-15"),
			EndDate:   dates.MustParse("2025-03-15"),
			BlockType: model.BlockOther,
		})
		if err != nil {
			t.Fatalf("end date equal to start must be valid (inclusive end), got: %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		svc := NewBlockService(&mockBlockRepo{}, &mockRoomService{}, testConfig())

		err := svc.Create(context.Background(), &model.AvailabilityBlock{
			StartDate: dates.MustParse("2025-03-16"),
			EndDate:   dates.MustParse("2025-03-15"),
			BlockType: model.BlockMaintenance,
		})
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("unknown room rejected", func(t *testing.T) {
		svc := NewBlockService(&mockBlockRepo{}, &mockRoomService{}, testConfig())

		unknown := "65f00000000000000000dead"
		err := svc.Create(context.Background(), &model.AvailabilityBlock{
			RoomID:    &unknown,
			StartDate: dates.MustParse("2025-03-15"),
			EndDate:   dates.MustParse("2025-03-16"),
			BlockType: model.BlockMaintenance,
		})
		if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("block type defaults to other", func(t *testing.T) {
		repo := &mockBlockRepo{}
		svc := NewBlockService(repo, &mockRoomService{}, testConfig())

		err := svc.Create(context.Background(), &model.AvailabilityBlock{
			StartDate: dates.MustParse("2025-03-15"),
			EndDate:   dates.MustParse("2025-03-16"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.created[0].BlockType != model.BlockOther {
			t.Errorf("expected default block type, got %s", repo.created[0].BlockType)
		}
	})
}

func TestGetAllBlocks_RoomNames(t *testing.T) {
	repo := &mockBlockRepo{}
	svc := NewBlockService(repo, &mockRoomService{}, testConfig())

	roomID := pachoID
	_ = svc.Create(context.Background(), &model.AvailabilityBlock{
		RoomID:    &roomID,
		StartDate: dates.MustParse("2025-03-15"),
		EndDate:   dates.MustParse("2025-03-16"),
		BlockType: model.BlockMaintenance,
	})
	_ = svc.Create(context.Background(), &model.AvailabilityBlock{
		StartDate: dates.MustParse("2025-04-01"),
		EndDate:   dates.MustParse("2025-04-02"),
		BlockType: model.BlockPrivateEvent,
	})

	responses, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(responses) != 2 {
		t.Fatalf("expected 2 blocks, got count=%d len=%d", count, len(responses))
	}

	if responses[0].RoomName != "Pacho" {
		t.Errorf("expected room name join, got %s", responses[0].RoomName)
	}
	if responses[1].RoomName != "All rooms" {
		t.Errorf("expected All rooms for nil room, got %s", responses[1].RoomName)
	}
}

func TestDeleteBlock(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := NewBlockService(&mockBlockRepo{deleteErr: blockserrors.ErrNotFound}, &mockRoomService{}, testConfig())

		err := svc.Delete(context.Background(), "65f00000000000000000dead")
		if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		svc := NewBlockService(&mockBlockRepo{}, &mockRoomService{}, testConfig())
		if err := svc.Delete(context.Background(), "65f000000000000000000001"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
