package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/flyee/flights/internal/domain"
)

// ErrBookingNotFound is returned when a booking id is unknown.
var ErrBookingNotFound = errors.New("booking not found")

// SaveBooking stores a booking and registers its id.
func (s *Store) SaveBooking(ctx context.Context, b *domain.Booking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	if err := s.client.Set(ctx, BookingKey(b.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	if err := s.client.SAdd(ctx, KeyAllBookings, b.ID).Err(); err != nil {
		return fmt.Errorf("failed to register booking id: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by id.
func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	data, err := s.client.Get(ctx, BookingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	var b domain.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking: %w", err)
	}
	return &b, nil
}

// ListBookings retrieves every stored booking. Entries that can no longer be
// read are skipped rather than failing the whole listing.
func (s *Store) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	ids, err := s.client.SMembers(ctx, KeyAllBookings).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list booking ids: %w", err)
	}

	bookings := make([]*domain.Booking, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBooking(ctx, id)
		if err != nil {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// DeleteBooking removes a booking and deregisters its id.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, BookingKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if err := s.client.SRem(ctx, KeyAllBookings, id).Err(); err != nil {
		return fmt.Errorf("failed to deregister booking id: %w", err)
	}
	return nil
}

// ClaimSlot atomically claims a date/time slot for a booking. Returns false
// when the slot is already held by another booking.
func (s *Store) ClaimSlot(ctx context.Context, date, slot, bookingID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, SlotKey(date, slot), bookingID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim slot: %w", err)
	}
	return ok, nil
}

// ReleaseSlot frees a date/time slot, but only if bookingID still holds it.
func (s *Store) ReleaseSlot(ctx context.Context, date, slot, bookingID string) error {
	holder, err := s.client.Get(ctx, SlotKey(date, slot)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read slot holder: %w", err)
	}
	if holder != bookingID {
		return nil
	}
	if err := s.client.Del(ctx, SlotKey(date, slot)).Err(); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}

// TakenSlots reports which of the given slots are held on a date.
func (s *Store) TakenSlots(ctx context.Context, date string, slots []string) (map[string]bool, error) {
	if len(slots) == 0 {
		return map[string]bool{}, nil
	}

	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = SlotKey(date, slot)
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read slots: %w", err)
	}

	taken := make(map[string]bool, len(slots))
	for i, val := range vals {
		taken[slots[i]] = val != nil
	}
	return taken, nil
}
