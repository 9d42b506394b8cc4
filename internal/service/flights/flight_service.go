package flights

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, query domain.FlightSearch) ([]domain.Flight, error)
	Names(ctx context.Context) ([]domain.FlightName, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, id int64, input domain.Flight) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo           repository.FlightRepository
	cache          FlightCache
	defaultAirline string
	log            *logrus.Logger
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, defaultAirline string, log *logrus.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, defaultAirline: defaultAirline, log: log}
}

// List serves the catalog from cache when possible. Cache failures only cost
// a database read.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.WithError(err).Warn("flights cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.WithError(err).Warn("flights cache write failed")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Search(ctx context.Context, query domain.FlightSearch) ([]domain.Flight, error) {
	query.SortBy = domain.ParseFlightSort(string(query.SortBy))
	return s.repo.Search(ctx, query)
}

// Names reports the airline shown for every flight: the one recorded on its
// first booking, otherwise the default airline.
func (s *FlightService) Names(ctx context.Context) ([]domain.FlightName, error) {
	names, err := s.repo.BookedNames(ctx)
	if err != nil {
		return nil, err
	}
	for i := range names {
		if names[i].FlightName == "" {
			names[i].FlightName = s.defaultAirline
		}
	}
	return names, nil
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Normalize(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"flight_id": flight.ID, "origin": flight.Origin, "destination": flight.Destination}).Info("flight created")
	return nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input domain.Flight) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flight.Origin = input.Origin
	flight.Destination = input.Destination
	flight.Price = input.Price
	if err := flight.Normalize(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.WithField("flight_id", id).Info("flight updated")
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	booked, err := s.repo.HasBookings(ctx, id)
	if err != nil {
		return err
	}
	if booked {
		return domain.Conflict("Cannot delete flight with existing bookings")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.WithField("flight_id", id).Info("flight deleted")
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.WithError(err).Warn("flights cache invalidation failed")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
