package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	reserrors "aquavalle/internal/reservations/errors"
	"aquavalle/internal/reservations/repository"
	"aquavalle/internal/reservations/validator"

	blocksrepository "aquavalle/internal/blocks/repository"
	roomsrepository "aquavalle/internal/rooms/repository"

	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/kafka"
	"aquavalle/pkg/model"
	"aquavalle/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// Publisher is the slice of the Kafka producer the service needs. A nil
// publisher disables events.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type ReservationService interface {
	Create(ctx context.Context, req *model.ReservationCreate) (*model.ReservationResponse, error)
	GetByID(ctx context.Context, id string) (*model.ReservationResponse, error)
	GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.ReservationResponse, int64, error)
	Update(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	clients   repository.ClientRepository
	rooms     roomsrepository.RoomRepository
	blocks    blocksrepository.BlockRepository
	validator *validator.ReservationValidator
	publisher Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	clients repository.ClientRepository,
	rooms roomsrepository.RoomRepository,
	blocks blocksrepository.BlockRepository,
	validator *validator.ReservationValidator,
	publisher Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		clients:   clients,
		rooms:     rooms,
		blocks:    blocks,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationCreate) (*model.ReservationResponse, error) {
	s.sanitizeCreate(req)

	if req.ClientPhone == "" {
		return nil, apperrors.Validation("Invalid phone number", map[string]any{
			"field": "client_phone",
		})
	}

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	var rooms []*model.Room
	var err error
	if req.Type == model.TypeLodging {
		rooms, err = s.resolveRooms(ctx, req.RoomIDs)
		if err != nil {
			return nil, err
		}
		if capacity := totalCapacity(rooms); req.NumGuests > capacity {
			return nil, apperrors.CapacityExceeded(fmt.Sprintf(
				"the selected rooms sleep %d guests, %d requested", capacity, req.NumGuests))
		}
	} else if req.NumGuests > s.cfg.MaxFulldayCapacity {
		return nil, apperrors.CapacityExceeded(fmt.Sprintf(
			"day passes are limited to %d guests per date", s.cfg.MaxFulldayCapacity))
	}

	lockIDs, err := s.acquireLocks(ctx, req)
	if err != nil {
		return nil, err
	}
	defer s.releaseLocks(ctx, lockIDs)

	reservation := &model.Reservation{
		Type:         req.Type,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		NumGuests:    req.NumGuests,
		RoomIDs:      req.RoomIDs,
		Status:       model.StatusConfirmed,
		Notes:        req.Notes,
	}
	if req.Type == model.TypeFullday {
		// Stored form: day passes carry no check-out date, even when the
		// submission spelled out the same-day one.
		reservation.CheckOutDate = nil
		reservation.TotalPrice = PriceFullday(req.NumGuests, s.cfg.FulldayPrice)
	} else {
		reservation.TotalPrice = PriceLodging(rooms, req.CheckInDate, *req.CheckOutDate)
	}

	var client *model.Client
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, reservation, ""); err != nil {
			return err
		}

		client, err = s.resolveClient(sessCtx, req)
		if err != nil {
			return err
		}
		reservation.ClientID = client.ID

		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"type", reservation.Type,
		"check_in_date", reservation.CheckInDate,
		"num_guests", reservation.NumGuests,
		"total_price", reservation.TotalPrice,
	)

	s.publishEvent(ctx, model.EventReservationCreated, reservation, client, rooms)

	return s.buildResponse(reservation, client, rooms), nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.ReservationResponse, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return s.hydrate(ctx, reservation)
}

func (s *reservationService) GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.ReservationResponse, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	responses, err := s.hydrateAll(ctx, reservations)
	if err != nil {
		return nil, 0, err
	}

	return responses, count, nil
}

func (s *reservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.ReservationResponse, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to check reservation existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	if err := s.validator.ValidateShape(merged); err != nil {
		s.cfg.Log.Warn("Reservation update produced invalid shape", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	// A moved date or a grown day-pass party both claim availability the
	// stored record does not hold yet.
	needsRecheck := !merged.CheckInDate.Equal(existing.CheckInDate) ||
		!equalCheckOut(merged.CheckOutDate, existing.CheckOutDate) ||
		merged.NumGuests != existing.NumGuests

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if needsRecheck && merged.Occupies() {
			if err := s.verifyAvailability(sessCtx, merged, merged.ID); err != nil {
				return err
			}
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return nil, err
	}

	if updates.ClientName != "" || updates.ClientPhone != "" {
		if err := s.updateClientContact(ctx, merged.ClientID, updates); err != nil {
			s.cfg.Log.Warn("Failed to update client contact", "client_id", merged.ClientID, "error", err)
		}
	}

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return s.hydrate(ctx, merged)
}

func (s *reservationService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		return apperrors.Internal("Failed to retrieve reservation", err)
	}

	if reservation.Status == model.StatusCancelled {
		return nil
	}

	reservation.Status = model.StatusCancelled
	if _, err := s.repo.Update(ctx, id, reservation); err != nil {
		s.cfg.Log.Error("Failed to cancel reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel reservation", err)
	}

	s.cfg.Log.Info("Reservation cancelled", "id", id)

	// Best effort: the event is still useful without client details.
	client, clientErr := s.clients.FindByID(ctx, reservation.ClientID)
	if clientErr != nil {
		client = nil
	}
	s.publishEvent(ctx, model.EventReservationCancelled, reservation, client, nil)
	return nil
}

// --- Helpers ---

func (s *reservationService) sanitizeCreate(req *model.ReservationCreate) {
	req.ClientName = sanitizer.NormalizeName(req.ClientName)
	req.ClientDocument = sanitizer.NormalizeDocument(req.ClientDocument)
	req.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	req.ClientPhone = sanitizer.NormalizePhone(req.ClientPhone)
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
}

func (s *reservationService) resolveRooms(ctx context.Context, ids []string) ([]*model.Room, error) {
	rooms, err := s.rooms.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve rooms", err)
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
	for _, room := range rooms {
		if !room.IsActive {
			return nil, apperrors.RoomNotAvailable(fmt.Sprintf("room %s is not available for booking", room.Name))
		}
	}
	return rooms, nil
}

func totalCapacity(rooms []*model.Room) int {
	var capacity int
	for _, room := range rooms {
		capacity += room.Capacity
	}
	return capacity
}

// acquireLocks takes one advisory lock per contended resource: each room for
// lodging, the day-pass pool date for fullday. Room locks are acquired in
// sorted order so concurrent multi-room requests cannot deadlock.
func (s *reservationService) acquireLocks(ctx context.Context, req *model.ReservationCreate) ([]string, error) {
	var keys []string
	if req.Type == model.TypeLodging {
		for _, roomID := range req.RoomIDs {
			keys = append(keys, "room_"+roomID)
		}
		sort.Strings(keys)
	} else {
		keys = []string{"fullday_" + req.CheckInDate.String()}
	}

	var acquired []string
	for _, key := range keys {
		lock := &model.ReservationLock{
			ID:        key,
			ExpiresAt: time.Now().Add(s.cfg.LockTTL),
		}
		if _, err := s.lockRepo.Create(ctx, lock); err != nil {
			s.releaseLocks(ctx, acquired)
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.Conflict("These dates are currently being booked by another request. Please try again.")
			}
			return nil, apperrors.Internal("Failed to acquire reservation lock", err)
		}
		acquired = append(acquired, key)
	}

	return acquired, nil
}

func (s *reservationService) releaseLocks(ctx context.Context, lockIDs []string) {
	for _, lockID := range lockIDs {
		if err := s.lockRepo.Delete(ctx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", err)
		}
	}
}

// verifyAvailability rechecks the live store under the advisory locks.
// excludeID skips the reservation being edited.
func (s *reservationService) verifyAvailability(ctx context.Context, reservation *model.Reservation, excludeID string) error {
	from := reservation.CheckInDate
	to := reservation.StayEnd()

	if reservation.Type == model.TypeLodging {
		overlapping, err := s.repo.FindLodgingInRange(ctx, reservation.RoomIDs, from, to)
		if err != nil {
			return apperrors.Internal("Failed to check existing reservations", err)
		}
		for _, other := range overlapping {
			if other.ID == excludeID {
				continue
			}
			return apperrors.RoomNotAvailable(fmt.Sprintf(
				"requested dates overlap an existing reservation (%s - %s)",
				other.CheckInDate, other.StayEnd()))
		}

		blocks, err := s.blocks.FindOverlapping(ctx, from, to)
		if err != nil {
			return apperrors.Internal("Failed to check availability blocks", err)
		}
		for _, block := range blocks {
			for _, roomID := range reservation.RoomIDs {
				if block.AppliesToRoom(roomID) {
					return apperrors.RoomNotAvailable(fmt.Sprintf(
						"requested dates are blocked (%s - %s)", block.StartDate, block.EndDate))
				}
			}
		}
		return nil
	}

	blocks, err := s.blocks.FindOverlapping(ctx, from, to)
	if err != nil {
		return apperrors.Internal("Failed to check availability blocks", err)
	}
	for _, block := range blocks {
		if block.BlocksFullday {
			return apperrors.RoomNotAvailable(fmt.Sprintf("date %s is not available", from))
		}
	}

	// The sum excludes the reservation being edited, so its guests count
	// once, at their new values.
	committed, err := s.repo.SumFulldayGuestsOn(ctx, from, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check day-pass capacity", err)
	}
	if committed+reservation.NumGuests > s.cfg.MaxFulldayCapacity {
		return apperrors.CapacityExceeded(fmt.Sprintf(
			"only %d day-pass places left on %s", s.cfg.MaxFulldayCapacity-committed, from))
	}

	return nil
}

// resolveClient finds or creates the canonical client for a document id.
// Under strict identity, a document registered to a different name rejects
// the reservation; otherwise the stored record absorbs the new details.
func (s *reservationService) resolveClient(ctx context.Context, req *model.ReservationCreate) (*model.Client, error) {
	existing, err := s.clients.FindByDocument(ctx, req.ClientDocument)
	if err != nil {
		if !errors.Is(err, reserrors.ErrClientNotFound) {
			return nil, apperrors.Internal("Failed to look up client", err)
		}

		client := &model.Client{
			FullName:   req.ClientName,
			IDDocument: req.ClientDocument,
			Email:      req.ClientEmail,
			Phone:      req.ClientPhone,
		}
		if err := s.clients.Create(ctx, client); err != nil {
			return nil, apperrors.Internal("Failed to create client", err)
		}
		return client, nil
	}

	if !strings.EqualFold(existing.FullName, req.ClientName) && s.cfg.StrictClientIdentity {
		return nil, apperrors.DuplicateClientMismatch(req.ClientDocument)
	}

	existing.FullName = req.ClientName
	existing.Phone = req.ClientPhone
	if req.ClientEmail != "" {
		existing.Email = req.ClientEmail
	}
	if err := s.clients.Update(ctx, existing.ID, existing); err != nil {
		return nil, apperrors.Internal("Failed to update client", err)
	}

	return existing, nil
}

func (s *reservationService) mergeUpdates(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.CheckInDate != nil {
		merged.CheckInDate = *updates.CheckInDate
	}
	if updates.CheckOutDate != nil {
		merged.CheckOutDate = updates.CheckOutDate
	}
	if updates.Notes != nil {
		merged.Notes = sanitizer.NormalizeNotes(*updates.Notes)
	}

	// Same stored form as creation: a same-day check-out on a day pass
	// collapses to nil.
	if merged.Type == model.TypeFullday && merged.CheckOutDate != nil && merged.CheckOutDate.Equal(merged.CheckInDate) {
		merged.CheckOutDate = nil
	}

	// Guest count edits only apply to day passes, where the price follows.
	if updates.NumGuests != nil && merged.Type == model.TypeFullday {
		merged.NumGuests = *updates.NumGuests
		merged.TotalPrice = PriceFullday(merged.NumGuests, s.cfg.FulldayPrice)
	}

	return &merged
}

func (s *reservationService) updateClientContact(ctx context.Context, clientID string, updates *model.ReservationUpdate) error {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if updates.ClientName != "" {
		client.FullName = sanitizer.NormalizeName(updates.ClientName)
	}
	if updates.ClientPhone != "" {
		if phone := sanitizer.NormalizePhone(updates.ClientPhone); phone != "" {
			client.Phone = phone
		}
	}
	return s.clients.Update(ctx, client.ID, client)
}

func (s *reservationService) publishEvent(ctx context.Context, eventType string, reservation *model.Reservation, client *model.Client, rooms []*model.Room) {
	if s.publisher == nil {
		return
	}

	event := model.ReservationEvent{
		ReservationID: reservation.ID,
		Type:          reservation.Type,
		Status:        reservation.Status,
		CheckInDate:   reservation.CheckInDate,
		CheckOutDate:  reservation.CheckOutDate,
		NumGuests:     reservation.NumGuests,
		TotalPrice:    reservation.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	}
	if client != nil {
		event.ClientName = client.FullName
		event.ClientEmail = client.Email
	}
	for _, room := range rooms {
		event.RoomNames = append(event.RoomNames, room.Name)
	}

	msg := kafka.NewMessage().
		WithKey(reservation.ID).
		WithEventType(eventType).
		WithSource("reservations").
		WithValue(event).
		Build()

	// Best effort: a broker outage must not fail the booking.
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}

func (s *reservationService) hydrate(ctx context.Context, reservation *model.Reservation) (*model.ReservationResponse, error) {
	responses, err := s.hydrateAll(ctx, []*model.Reservation{reservation})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *reservationService) hydrateAll(ctx context.Context, reservations []*model.Reservation) ([]*model.ReservationResponse, error) {
	clientIDs := make([]string, 0, len(reservations))
	seen := make(map[string]bool, len(reservations))
	for _, reservation := range reservations {
		if reservation.ClientID != "" && !seen[reservation.ClientID] {
			clientIDs = append(clientIDs, reservation.ClientID)
			seen[reservation.ClientID] = true
		}
	}

	clients := map[string]*model.Client{}
	if len(clientIDs) > 0 {
		var err error
		clients, err = s.clients.FindByIDs(ctx, clientIDs)
		if err != nil {
			return nil, apperrors.Internal("Failed to resolve clients", err)
		}
	}

	roomNames, err := s.roomNames(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		resp := &model.ReservationResponse{
			ID:           reservation.ID,
			Type:         reservation.Type,
			CheckInDate:  reservation.CheckInDate,
			CheckOutDate: reservation.CheckOutDate,
			NumGuests:    reservation.NumGuests,
			TotalPrice:   reservation.TotalPrice,
			Status:       reservation.Status,
			Notes:        reservation.Notes,
			CreatedAt:    reservation.CreatedAt,
			Rooms:        []string{},
		}
		if client, ok := clients[reservation.ClientID]; ok {
			resp.Client = model.ClientSummary{
				ID:       client.ID,
				Name:     client.FullName,
				Phone:    client.Phone,
				Email:    client.Email,
				Document: client.IDDocument,
			}
		}
		for _, roomID := range reservation.RoomIDs {
			if name, ok := roomNames[roomID]; ok {
				resp.Rooms = append(resp.Rooms, name)
			}
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *reservationService) roomNames(ctx context.Context) (map[string]string, error) {
	rooms, err := s.rooms.FindAll(ctx, false)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve room names", err)
	}
	names := make(map[string]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.Name
	}
	return names, nil
}

func (s *reservationService) buildResponse(reservation *model.Reservation, client *model.Client, rooms []*model.Room) *model.ReservationResponse {
	resp := &model.ReservationResponse{
		ID:           reservation.ID,
		Type:         reservation.Type,
		CheckInDate:  reservation.CheckInDate,
		CheckOutDate: reservation.CheckOutDate,
		NumGuests:    reservation.NumGuests,
		TotalPrice:   reservation.TotalPrice,
		Status:       reservation.Status,
		Notes:        reservation.Notes,
		CreatedAt:    reservation.CreatedAt,
		Rooms:        []string{},
	}
	if client != nil {
		resp.Client = model.ClientSummary{
			ID:       client.ID,
			Name:     client.FullName,
			Phone:    client.Phone,
			Email:    client.Email,
			Document: client.IDDocument,
		}
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, room.Name)
	}
	return resp
}

func equalCheckOut(a, b *dates.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
