package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flyee/flights/internal/domain"
	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
	redisstore "github.com/flyee/flights/internal/store/redis"
)

// Slots is the daily booking grid. Availability for a date is this list
// minus the slots held by non-cancelled bookings.
var Slots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// Store is the persistence surface the booking lifecycle needs. Satisfied by
// *redisstore.Store. GetBooking reports unknown ids with
// redisstore.ErrBookingNotFound.
type Store interface {
	SaveBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ClaimSlot(ctx context.Context, date, slot, bookingID string) (bool, error)
	ReleaseSlot(ctx context.Context, date, slot, bookingID string) error
	TakenSlots(ctx context.Context, date string, slots []string) (map[string]bool, error)
}

// Service implements the booking lifecycle on top of the store.
type Service struct {
	store    Store
	flights  *index.FlightIndex
	validate *Validator
	log      logger.Logger
	now      func() time.Time
}

func NewService(store Store, flights *index.FlightIndex, log logger.Logger) *Service {
	return &Service{
		store:    store,
		flights:  flights,
		validate: NewValidator(),
		log:      log,
		now:      time.Now,
	}
}

// Create validates the request, claims the requested slot and stores the
// booking with status pending.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.checkSlot(req.Time); err != nil {
		return nil, err
	}
	if req.FlightID != "" {
		if _, ok := s.flights.Get(req.FlightID); !ok {
			return nil, ErrUnknownFlight
		}
	}

	now := s.now().UTC()
	b := &domain.Booking{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Service:   req.Service,
		Notes:     req.Notes,
		FlightID:  req.FlightID,
		SeatClass: req.SeatClass,
		Status:    domain.BookingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	claimed, err := s.store.ClaimSlot(ctx, b.Date, b.Time, b.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrSlotTaken
	}

	if err := s.store.SaveBooking(ctx, b); err != nil {
		// Best effort: don't leave the slot held by a booking that was
		// never stored.
		if relErr := s.store.ReleaseSlot(ctx, b.Date, b.Time, b.ID); relErr != nil {
			s.log.Warn("failed to release slot after save failure",
				logger.String("booking_id", b.ID),
				logger.Error(relErr))
		}
		return nil, err
	}

	s.log.Info("booking created",
		logger.String("booking_id", b.ID),
		logger.String("date", b.Date),
		logger.String("slot", b.Time),
		logger.String("flight_id", b.FlightID))
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, redisstore.ErrBookingNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns all bookings, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// Update applies the non-nil fields of req, moving the slot claim when the
// date, time or cancellation state changes.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*domain.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if req.Time != nil {
		if err := s.checkSlot(*req.Time); err != nil {
			return nil, err
		}
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldDate, oldTime, oldStatus := b.Date, b.Time, b.Status
	applyUpdate(b, req)

	if req.FlightID != nil && b.FlightID != "" {
		if _, ok := s.flights.Get(b.FlightID); !ok {
			return nil, ErrUnknownFlight
		}
	}

	hadSlot := oldStatus != domain.BookingCancelled
	needSlot := b.Status != domain.BookingCancelled
	slotMoved := b.Date != oldDate || b.Time != oldTime

	if needSlot && (slotMoved || !hadSlot) {
		claimed, err := s.store.ClaimSlot(ctx, b.Date, b.Time, b.ID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrSlotTaken
		}
	}
	if hadSlot && (slotMoved || !needSlot) {
		if err := s.store.ReleaseSlot(ctx, oldDate, oldTime, b.ID); err != nil {
			s.log.Warn("failed to release previous slot",
				logger.String("booking_id", b.ID),
				logger.Error(err))
		}
	}

	b.UpdatedAt = s.now().UTC()
	if err := s.store.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking updated",
		logger.String("booking_id", b.ID),
		logger.String("status", b.Status))
	return b, nil
}

// Delete removes a booking and frees its slot.
func (s *Service) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if b.Status != domain.BookingCancelled {
		if err := s.store.ReleaseSlot(ctx, b.Date, b.Time, b.ID); err != nil {
			s.log.Warn("failed to release slot on delete",
				logger.String("booking_id", b.ID),
				logger.Error(err))
		}
	}
	return s.store.DeleteBooking(ctx, id)
}

// Availability returns the free slots for a date, in grid order.
func (s *Service) Availability(ctx context.Context, date string) ([]string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ValidationError{{Field: "date", Message: "must match format 2006-01-02"}}
	}

	taken, err := s.store.TakenSlots(ctx, date, Slots)
	if err != nil {
		return nil, err
	}

	free := make([]string, 0, len(Slots))
	for _, slot := range Slots {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// PruneCancelled deletes cancelled bookings last touched more than retention
// ago. Returns the number deleted.
func (s *Service) PruneCancelled(ctx context.Context, retention time.Duration) (int, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-retention)
	deleted := 0
	for _, b := range bookings {
		if b.Status != domain.BookingCancelled || b.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.store.DeleteBooking(ctx, b.ID); err != nil {
			s.log.Warn("failed to prune booking",
				logger.String("booking_id", b.ID),
				logger.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *Service) checkSlot(slot string) error {
	for _, known := range Slots {
		if slot == known {
			return nil
		}
	}
	return ValidationError{{Field: "time", Message: "must be one of the bookable slots"}}
}

func applyUpdate(b *domain.Booking, req UpdateRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Email != nil {
		b.Email = *req.Email
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Date != nil {
		b.Date = *req.Date
	}
	if req.Time != nil {
		b.Time = *req.Time
	}
	if req.Service != nil {
		b.Service = *req.Service
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if req.FlightID != nil {
		b.FlightID = *req.FlightID
	}
	if req.SeatClass != nil {
		b.SeatClass = *req.SeatClass
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
}
