package owners

import (
	"context"
	"errors"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/sirupsen/logrus"
)

type OwnerUseCase interface {
	ListDetails(ctx context.Context, caller domain.Identity, userID int64) ([]domain.FlightDetailView, error)
	CreateDetail(ctx context.Context, caller domain.Identity, detail *domain.FlightDetail) error
	UpdateDetail(ctx context.Context, caller domain.Identity, id int64, input domain.FlightDetail) (*domain.FlightDetail, error)
	DeleteDetail(ctx context.Context, caller domain.Identity, id int64) error
	ListBookings(ctx context.Context, caller domain.Identity, userID int64) ([]domain.OwnerBooking, error)
}

type FlightReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type OwnerService struct {
	repo    repository.OwnerRepository
	flights FlightReader
	log     *logrus.Logger
}

func NewOwnerService(repo repository.OwnerRepository, flights FlightReader, log *logrus.Logger) *OwnerService {
	return &OwnerService{repo: repo, flights: flights, log: log}
}

func (s *OwnerService) ListDetails(ctx context.Context, caller domain.Identity, userID int64) ([]domain.FlightDetailView, error) {
	owner, err := s.ownerOf(ctx, caller, userID)
	if err != nil || owner == nil {
		return []domain.FlightDetailView{}, err
	}
	return s.repo.ListDetailsByOwner(ctx, owner.ID)
}

func (s *OwnerService) ListBookings(ctx context.Context, caller domain.Identity, userID int64) ([]domain.OwnerBooking, error) {
	owner, err := s.ownerOf(ctx, caller, userID)
	if err != nil || owner == nil {
		return []domain.OwnerBooking{}, err
	}
	return s.repo.ListBookingsForOwner(ctx, owner.ID)
}

// ownerOf resolves the owner record of userID. A user who never registered a
// schedule has none, which is reported as nil without error.
func (s *OwnerService) ownerOf(ctx context.Context, caller domain.Identity, userID int64) (*domain.FlightOwner, error) {
	if caller.UserID != userID && !caller.IsAdmin() {
		return nil, domain.Forbidden("You can only view your own flights.")
	}
	owner, err := s.repo.GetOwnerByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return owner, err
}

// CreateDetail registers a schedule for the caller, creating the caller's
// owner record on first use.
func (s *OwnerService) CreateDetail(ctx context.Context, caller domain.Identity, detail *domain.FlightDetail) error {
	if err := detail.Normalize(); err != nil {
		return err
	}
	if _, err := s.flights.GetByID(ctx, detail.FlightID); err != nil {
		return err
	}

	owner, err := s.repo.EnsureOwner(ctx, caller.UserID, caller.Name+" Airlines")
	if err != nil {
		return err
	}
	detail.FlightOwnerID = owner.ID

	if err := s.repo.CreateDetail(ctx, detail); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"detail_id": detail.ID,
		"flight_id": detail.FlightID,
		"owner_id":  owner.ID,
	}).Info("flight detail created")
	return nil
}

func (s *OwnerService) UpdateDetail(ctx context.Context, caller domain.Identity, id int64, input domain.FlightDetail) (*domain.FlightDetail, error) {
	detail, err := s.editableDetail(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if input.FlightID != detail.FlightID {
		if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
			return nil, err
		}
	}

	input.ID = detail.ID
	input.FlightOwnerID = detail.FlightOwnerID
	input.CreatedAt = detail.CreatedAt
	if err := input.Normalize(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDetail(ctx, &input); err != nil {
		return nil, err
	}
	s.log.WithField("detail_id", id).Info("flight detail updated")
	return &input, nil
}

func (s *OwnerService) DeleteDetail(ctx context.Context, caller domain.Identity, id int64) error {
	if _, err := s.editableDetail(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.DeleteDetail(ctx, id); err != nil {
		return err
	}
	s.log.WithField("detail_id", id).Info("flight detail deleted")
	return nil
}

func (s *OwnerService) editableDetail(ctx context.Context, caller domain.Identity, id int64) (*domain.FlightDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return detail, nil
	}

	owner, err := s.repo.GetOwnerByUserID(ctx, caller.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if owner == nil || owner.ID != detail.FlightOwnerID {
		return nil, domain.Forbidden("You can only modify your own flight details.")
	}
	return detail, nil
}

var _ OwnerUseCase = (*OwnerService)(nil)
