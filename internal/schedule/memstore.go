package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// MemStore is the in-process Store implementation. Reserve serializes on a
// per-(station, date) partition mutex, so the check-then-insert pair is
// atomic for that partition while other partitions proceed in parallel.
//
// Used as the embedded store in single-node deployments and as the engine
// under concurrency tests; PgStore provides the same contract over
// PostgreSQL.
type MemStore struct {
	mu          sync.RWMutex
	byID        map[string]*domain.Booking
	byPartition map[string][]string // "stationID|date" -> booking ids
	byRequestID map[string]string   // idempotency key -> booking id

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

// NewMemStore creates an empty in-memory schedule.
func NewMemStore() *MemStore {
	return &MemStore{
		byID:        make(map[string]*domain.Booking),
		byPartition: make(map[string][]string),
		byRequestID: make(map[string]string),
		locks:       make(map[string]*sync.Mutex),
		now:         time.Now,
	}
}

func partitionKey(stationID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", stationID, domain.DateKey(date))
}

// partitionLock returns the mutex serializing reserves for one partition,
// creating it on first use.
func (s *MemStore) partitionLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *MemStore) partitionBookings(key string) []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byPartition[key]
	bookings := make([]*domain.Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.byID[id]; ok {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

// IsAvailable implements Store.
func (s *MemStore) IsAvailable(ctx context.Context, stationID int64, date time.Time, start, end timeofday.TimeOfDay, excludeID string) (bool, error) {
	bookings := s.partitionBookings(partitionKey(stationID, date))
	return !hasOverlap(bookings, start, end, excludeID), nil
}

// Reserve implements Store. The partition mutex is held across the
// conflict check and the insert, which is the whole correctness story: no
// concurrent Reserve on the same station and date can interleave between
// the two.
func (s *MemStore) Reserve(ctx context.Context, c Candidate) (*domain.Booking, error) {
	key := partitionKey(c.StationID, c.Date)

	lock := s.partitionLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Replayed idempotency key: hand back the original commit.
	if c.RequestID != nil {
		s.mu.RLock()
		id, seen := s.byRequestID[*c.RequestID]
		s.mu.RUnlock()
		if seen {
			return s.getCopy(id)
		}
	}

	if hasOverlap(s.partitionBookings(key), c.StartTime, c.EndTime, "") {
		return nil, ErrConflict
	}

	now := s.now()
	booking := &domain.Booking{
		ID:          domain.NewBookingID(),
		Date:        domain.DateOnly(c.Date),
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		StationID:   c.StationID,
		MemberName:  c.MemberName,
		MemberPhone: c.MemberPhone,
		Notes:       c.Notes,
		Status:      domain.StatusConfirmed,
		RequestID:   c.RequestID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.byID[booking.ID] = booking
	s.byPartition[key] = append(s.byPartition[key], booking.ID)
	if c.RequestID != nil {
		s.byRequestID[*c.RequestID] = booking.ID
	}
	s.mu.Unlock()

	return copyBooking(booking), nil
}

// Get implements Store.
func (s *MemStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getCopy(id)
}

// Cancel implements Store; idempotent on already-cancelled bookings.
func (s *MemStore) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if booking.IsCancelled() {
		return copyBooking(booking), nil
	}

	now := s.now()
	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now
	return copyBooking(booking), nil
}

// Delete implements Store.
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.byID, id)
	if booking.RequestID != nil {
		delete(s.byRequestID, *booking.RequestID)
	}

	key := partitionKey(booking.StationID, booking.Date)
	ids := s.byPartition[key]
	for i, bid := range ids {
		if bid == id {
			s.byPartition[key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// Query implements Store; the result is a snapshot of copies.
func (s *MemStore) Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	result := make([]*domain.Booking, 0)
	for _, b := range s.byID {
		if matchesFilter(b, filter) {
			result = append(result, copyBooking(b))
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.NewestFirst {
			a, b = b, a
		}
		if !domain.SameDay(a.Date, b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.StartTime < b.StartTime
	})
	return result, nil
}

func (s *MemStore) getCopy(id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyBooking(booking), nil
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}
