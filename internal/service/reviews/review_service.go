package reviews

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/sirupsen/logrus"
)

type ReviewUseCase interface {
	List(ctx context.Context) ([]domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error)
	Create(ctx context.Context, caller domain.Identity, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
}

// BookingChecker answers whether a user ever booked a flight, in any status.
type BookingChecker interface {
	ExistsForUserFlight(ctx context.Context, userID, flightID int64) (bool, error)
}

type ReviewService struct {
	repo     repository.ReviewRepository
	bookings BookingChecker
	log      *logrus.Logger
}

func NewReviewService(repo repository.ReviewRepository, bookings BookingChecker, log *logrus.Logger) *ReviewService {
	return &ReviewService{repo: repo, bookings: bookings, log: log}
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.repo.List(ctx)
}

func (s *ReviewService) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReviewService) ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error) {
	return s.repo.ListByFlight(ctx, flightID)
}

func (s *ReviewService) Create(ctx context.Context, caller domain.Identity, review *domain.Review) error {
	if err := review.Normalize(); err != nil {
		return err
	}

	booked, err := s.bookings.ExistsForUserFlight(ctx, caller.UserID, review.FlightID)
	if err != nil {
		return err
	}
	if !booked {
		return domain.Validation("You can only review flights you have booked.")
	}

	review.UserID = caller.UserID
	review.Reviewer = caller.Name
	if err := s.repo.Create(ctx, review); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"review_id": review.ID, "flight_id": review.FlightID, "rating": review.Rating}).Info("review added")
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("review_id", id).Info("review deleted")
	return nil
}

var _ ReviewUseCase = (*ReviewService)(nil)
