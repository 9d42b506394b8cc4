package passengers

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/sirupsen/logrus"
)

type PassengerUseCase interface {
	SaveDetails(ctx context.Context, caller domain.Identity, bookingID int64, passengers []domain.PassengerDetail) ([]domain.PassengerDetail, error)
	ListForBooking(ctx context.Context, caller domain.Identity, bookingID int64) ([]domain.PassengerDetail, error)
	DeleteForBooking(ctx context.Context, caller domain.Identity, bookingID int64) (int64, error)
	DeletePassenger(ctx context.Context, caller domain.Identity, id int64) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type PassengerService struct {
	repo     repository.PassengerRepository
	bookings BookingReader
	log      *logrus.Logger
}

func NewPassengerService(repo repository.PassengerRepository, bookings BookingReader, log *logrus.Logger) *PassengerService {
	return &PassengerService{repo: repo, bookings: bookings, log: log}
}

// SaveDetails validates the whole roster before writing any of it.
func (s *PassengerService) SaveDetails(ctx context.Context, caller domain.Identity, bookingID int64, passengers []domain.PassengerDetail) ([]domain.PassengerDetail, error) {
	if bookingID <= 0 {
		return nil, domain.Validation("Invalid BookingId.")
	}
	if err := domain.ValidatePassengers(passengers); err != nil {
		return nil, err
	}
	if _, err := s.ownedBooking(ctx, caller, bookingID, "You can only add passengers to your own bookings."); err != nil {
		return nil, err
	}

	for i := range passengers {
		passengers[i].UserID = caller.UserID
		passengers[i].BookingID = bookingID
	}
	if err := s.repo.CreateBatch(ctx, passengers); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"booking_id": bookingID, "user_id": caller.UserID, "count": len(passengers)}).Info("passenger details saved")
	return passengers, nil
}

func (s *PassengerService) ListForBooking(ctx context.Context, caller domain.Identity, bookingID int64) ([]domain.PassengerDetail, error) {
	if _, err := s.ownedBooking(ctx, caller, bookingID, "You can only view passengers for your own bookings."); err != nil {
		return nil, err
	}
	return s.repo.ListByBookingForUser(ctx, bookingID, caller.UserID)
}

func (s *PassengerService) DeleteForBooking(ctx context.Context, caller domain.Identity, bookingID int64) (int64, error) {
	if _, err := s.ownedBooking(ctx, caller, bookingID, "You can only delete passengers from your own bookings."); err != nil {
		return 0, err
	}
	removed, err := s.repo.DeleteByBookingForUser(ctx, bookingID, caller.UserID)
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"booking_id": bookingID, "count": removed}).Info("passenger details deleted")
	return removed, nil
}

func (s *PassengerService) DeletePassenger(ctx context.Context, caller domain.Identity, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.Forbidden("You can only delete your own passengers.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *PassengerService) ownedBooking(ctx context.Context, caller domain.Identity, bookingID int64, denial string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != caller.UserID {
		return nil, domain.Forbidden("%s", denial)
	}
	return booking, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
