package api

import (
	"context"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/booking"
	"github.com/Domenick1991/simplyfly/internal/service/identity"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) booking(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) details(args mock.Arguments) (*domain.BookingDetails, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, caller domain.Identity, input booking.CreateBookingInput) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, input))
}

func (m *MockBookingUseCase) ListMine(ctx context.Context, caller domain.Identity) ([]domain.BookingView, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) BookedSeats(ctx context.Context, flightID int64) ([]string, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingUseCase) GetDetails(ctx context.Context, caller domain.Identity, id int64) (*domain.BookingDetails, error) {
	return m.details(m.Called(ctx, caller, id))
}

func (m *MockBookingUseCase) GetAnyDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	return m.details(m.Called(ctx, id))
}

func (m *MockBookingUseCase) RequestCancel(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, id))
}

func (m *MockBookingUseCase) ApproveRefund(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, id))
}

func (m *MockBookingUseCase) RejectRefund(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, id))
}

func (m *MockBookingUseCase) SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, id, status))
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, query domain.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Names(ctx context.Context) ([]domain.FlightName, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightName), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightUseCase) Update(ctx context.Context, id int64, input domain.Flight) (*domain.Flight, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIdentityUseCase struct {
	mock.Mock
}

func (m *MockIdentityUseCase) result(args mock.Arguments) (*identity.AuthResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockIdentityUseCase) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityUseCase) Register(ctx context.Context, input identity.RegisterInput) (*identity.AuthResult, error) {
	return m.result(m.Called(ctx, input))
}

func (m *MockIdentityUseCase) Login(ctx context.Context, email, password string) (*identity.AuthResult, error) {
	return m.result(m.Called(ctx, email, password))
}

func (m *MockIdentityUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockIdentityUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockIdentityUseCase) UpdateUser(ctx context.Context, id int64, input identity.UpdateUserInput) (*domain.User, error) {
	return m.user(m.Called(ctx, id, input))
}

func (m *MockIdentityUseCase) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	return m.user(m.Called(ctx, id, role))
}

func (m *MockIdentityUseCase) DeleteUser(ctx context.Context, caller domain.Identity, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockPassengerUseCase struct {
	mock.Mock
}

func (m *MockPassengerUseCase) SaveDetails(ctx context.Context, caller domain.Identity, bookingID int64, passengers []domain.PassengerDetail) ([]domain.PassengerDetail, error) {
	args := m.Called(ctx, caller, bookingID, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PassengerDetail), args.Error(1)
}

func (m *MockPassengerUseCase) ListForBooking(ctx context.Context, caller domain.Identity, bookingID int64) ([]domain.PassengerDetail, error) {
	args := m.Called(ctx, caller, bookingID)
	return args.Get(0).([]domain.PassengerDetail), args.Error(1)
}

func (m *MockPassengerUseCase) DeleteForBooking(ctx context.Context, caller domain.Identity, bookingID int64) (int64, error) {
	args := m.Called(ctx, caller, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPassengerUseCase) DeletePassenger(ctx context.Context, caller domain.Identity, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockReviewUseCase struct {
	mock.Mock
}

func (m *MockReviewUseCase) List(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewUseCase) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewUseCase) ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewUseCase) Create(ctx context.Context, caller domain.Identity, review *domain.Review) error {
	args := m.Called(ctx, caller, review)
	return args.Error(0)
}

func (m *MockReviewUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOwnerUseCase struct {
	mock.Mock
}

func (m *MockOwnerUseCase) ListDetails(ctx context.Context, caller domain.Identity, userID int64) ([]domain.FlightDetailView, error) {
	args := m.Called(ctx, caller, userID)
	return args.Get(0).([]domain.FlightDetailView), args.Error(1)
}

func (m *MockOwnerUseCase) CreateDetail(ctx context.Context, caller domain.Identity, detail *domain.FlightDetail) error {
	args := m.Called(ctx, caller, detail)
	return args.Error(0)
}

func (m *MockOwnerUseCase) UpdateDetail(ctx context.Context, caller domain.Identity, id int64, input domain.FlightDetail) (*domain.FlightDetail, error) {
	args := m.Called(ctx, caller, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockOwnerUseCase) DeleteDetail(ctx context.Context, caller domain.Identity, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockOwnerUseCase) ListBookings(ctx context.Context, caller domain.Identity, userID int64) ([]domain.OwnerBooking, error) {
	args := m.Called(ctx, caller, userID)
	return args.Get(0).([]domain.OwnerBooking), args.Error(1)
}

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) Parse(raw string) (domain.Identity, error) {
	args := m.Called(raw)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
