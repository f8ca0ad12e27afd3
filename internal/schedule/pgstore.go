package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
	bookingRepo "github.com/abrans2005/cycling-booking/internal/infra/storage/booking"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// BookingRepository is the persistence surface PgStore needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByRequestID(ctx context.Context, requestID string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	MarkCancelled(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PgStore implements Store over PostgreSQL. Atomicity of Reserve comes
// from a serializable transaction that re-reads the day's bookings with
// FOR UPDATE immediately before the insert; the transaction manager
// retries serialization failures before surfacing them.
type PgStore struct {
	repo  BookingRepository
	txMgr TransactionManager
}

// NewPgStore creates the PostgreSQL-backed schedule.
func NewPgStore(repo BookingRepository, txMgr TransactionManager) *PgStore {
	return &PgStore{repo: repo, txMgr: txMgr}
}

// IsAvailable implements Store. Runs outside any transaction; the result
// is a UX hint only, Reserve re-checks authoritatively.
func (s *PgStore) IsAvailable(ctx context.Context, stationID int64, date time.Time, start, end timeofday.TimeOfDay, excludeID string) (bool, error) {
	bookings, err := s.repo.List(ctx, dayFilter(stationID, date))
	if err != nil {
		return false, fmt.Errorf("schedule: IsAvailable - list bookings: %w", err)
	}
	return !hasOverlap(bookings, start, end, excludeID), nil
}

// Reserve implements Store.
func (s *PgStore) Reserve(ctx context.Context, c Candidate) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txMgr.DoSerializable(ctx, func(txCtx context.Context) error {
		// Replayed idempotency key: hand back the original commit.
		if c.RequestID != nil {
			existing, err := s.repo.GetByRequestID(txCtx, *c.RequestID)
			if err == nil {
				result = existing
				return nil
			}
			if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("schedule: Reserve - check request id: %w", err)
			}
		}

		// Day-partition read with FOR UPDATE; conflict check and insert
		// are a single logical step from here to commit.
		bookings, err := s.repo.List(txCtx, dayFilter(c.StationID, c.Date))
		if err != nil {
			return fmt.Errorf("schedule: Reserve - list bookings: %w", err)
		}

		if hasOverlap(bookings, c.StartTime, c.EndTime, "") {
			return ErrConflict
		}

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
		}

		created, err := s.repo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateRequestID) {
				// Lost a race on the same idempotency key; the winner's
				// booking is the result.
				return err
			}
			return fmt.Errorf("schedule: Reserve - create booking: %w", err)
		}

		result = created
		return nil
	})

	if errors.Is(err, bookingRepo.ErrDuplicateRequestID) && c.RequestID != nil {
		return s.repo.GetByRequestID(ctx, *c.RequestID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get implements Store.
func (s *PgStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, ErrNotFound
	}
	return booking, err
}

// Cancel implements Store; idempotent on already-cancelled bookings.
func (s *PgStore) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txMgr.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("schedule: Cancel - get booking: %w", err)
		}

		if booking.IsCancelled() {
			result = booking
			return nil
		}

		if err := s.repo.MarkCancelled(txCtx, id); err != nil {
			return fmt.Errorf("schedule: Cancel - mark cancelled: %w", err)
		}

		updated, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("schedule: Cancel - reload booking: %w", err)
		}
		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete implements Store.
func (s *PgStore) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrNotFound
	}
	return err
}

// Query implements Store.
func (s *PgStore) Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return s.repo.List(ctx, filter)
}

func dayFilter(stationID int64, date time.Time) domain.BookingFilter {
	d := domain.DateOnly(date)
	return domain.BookingFilter{
		Date:      &d,
		StationID: &stationID,
	}
}
