package owners

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) GetOwnerByUserID(ctx context.Context, userID int64) (*domain.FlightOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightOwner), args.Error(1)
}

func (m *MockOwnerRepository) EnsureOwner(ctx context.Context, userID int64, airline string) (*domain.FlightOwner, error) {
	args := m.Called(ctx, userID, airline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightOwner), args.Error(1)
}

func (m *MockOwnerRepository) ListDetailsByOwner(ctx context.Context, ownerID int64) ([]domain.FlightDetailView, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.FlightDetailView), args.Error(1)
}

func (m *MockOwnerRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockOwnerRepository) CreateDetail(ctx context.Context, detail *domain.FlightDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockOwnerRepository) UpdateDetail(ctx context.Context, detail *domain.FlightDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockOwnerRepository) DeleteDetail(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnerRepository) OwnsFlight(ctx context.Context, userID, flightID int64) (bool, error) {
	args := m.Called(ctx, userID, flightID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOwnerRepository) ListBookingsForOwner(ctx context.Context, ownerID int64) ([]domain.OwnerBooking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.OwnerBooking), args.Error(1)
}

type MockFlightReader struct {
	mock.Mock
}

func (m *MockFlightReader) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

var (
	carol = domain.Identity{UserID: 7, Name: "Carol", Role: domain.RoleFlightowner}
	dave  = domain.Identity{UserID: 8, Name: "Dave", Role: domain.RoleFlightowner}
	admin = domain.Identity{UserID: 1, Name: "Root", Role: domain.RoleAdmin}
)

func newService() (*OwnerService, *MockOwnerRepository, *MockFlightReader) {
	repo := &MockOwnerRepository{}
	flights := &MockFlightReader{}
	return NewOwnerService(repo, flights, logger.Discard()), repo, flights
}

func schedule(flightID int64) domain.FlightDetail {
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	return domain.FlightDetail{
		FlightID:      flightID,
		FlightName:    "SF-101",
		BaggageInfo:   "23kg",
		NumberOfSeats: 180,
		DepartureTime: dep,
		ArrivalTime:   dep.Add(5 * time.Hour),
		Fare:          299.99,
	}
}

func TestOwnerService_ListDetails(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetOwnerByUserID", ctx, int64(7)).Return(&domain.FlightOwner{ID: 3, UserID: 7}, nil)
	repo.On("ListDetailsByOwner", ctx, int64(3)).Return([]domain.FlightDetailView{{FlightRoute: "NYC → LAX"}}, nil)

	details, err := service.ListDetails(ctx, carol, 7)
	require.NoError(t, err)
	assert.Len(t, details, 1)

	details, err = service.ListDetails(ctx, admin, 7)
	require.NoError(t, err)
	assert.Len(t, details, 1)

	_, err = service.ListDetails(ctx, dave, 7)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOwnerService_ListDetails_NoOwnerYet(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetOwnerByUserID", ctx, int64(8)).Return(nil, domain.NotFound("Flight owner not found"))

	details, err := service.ListDetails(ctx, dave, 8)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)

	bookings, err := service.ListBookings(ctx, dave, 8)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestOwnerService_CreateDetail(t *testing.T) {
	service, repo, flights := newService()
	ctx := context.Background()
	detail := schedule(4)

	flights.On("GetByID", ctx, int64(4)).Return(&domain.Flight{ID: 4}, nil).Once()
	repo.On("EnsureOwner", ctx, int64(7), "Carol Airlines").Return(&domain.FlightOwner{ID: 3, UserID: 7}, nil).Once()
	repo.On("CreateDetail", ctx, &detail).Return(nil).Once()

	require.NoError(t, service.CreateDetail(ctx, carol, &detail))
	assert.Equal(t, int64(3), detail.FlightOwnerID)
	repo.AssertExpectations(t)
}

func TestOwnerService_CreateDetail_Validation(t *testing.T) {
	service, repo, flights := newService()
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*domain.FlightDetail)
	}{
		{"no name", func(d *domain.FlightDetail) { d.FlightName = "" }},
		{"too many seats", func(d *domain.FlightDetail) { d.NumberOfSeats = 1001 }},
		{"no seats", func(d *domain.FlightDetail) { d.NumberOfSeats = 0 }},
		{"negative fare", func(d *domain.FlightDetail) { d.Fare = -1 }},
		{"arrives before departure", func(d *domain.FlightDetail) { d.ArrivalTime = d.DepartureTime.Add(-time.Minute) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			detail := schedule(4)
			tc.mutate(&detail)
			assert.ErrorIs(t, service.CreateDetail(ctx, carol, &detail), domain.ErrValidation)
		})
	}
	flights.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateDetail", mock.Anything, mock.Anything)
}

func TestOwnerService_CreateDetail_UnknownFlight(t *testing.T) {
	service, repo, flights := newService()
	ctx := context.Background()
	detail := schedule(99)

	flights.On("GetByID", ctx, int64(99)).Return(nil, domain.NotFound("Flight not found")).Once()

	assert.ErrorIs(t, service.CreateDetail(ctx, carol, &detail), domain.ErrNotFound)
	repo.AssertNotCalled(t, "EnsureOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwnerService_UpdateDetail(t *testing.T) {
	service, repo, flights := newService()
	ctx := context.Background()
	existing := schedule(4)
	existing.ID = 11
	existing.FlightOwnerID = 3

	repo.On("GetDetail", ctx, int64(11)).Return(&existing, nil)
	repo.On("GetOwnerByUserID", ctx, int64(7)).Return(&domain.FlightOwner{ID: 3}, nil)
	repo.On("GetOwnerByUserID", ctx, int64(8)).Return(&domain.FlightOwner{ID: 5}, nil)
	flights.On("GetByID", ctx, int64(6)).Return(&domain.Flight{ID: 6}, nil).Once()
	repo.On("UpdateDetail", ctx, mock.AnythingOfType("*domain.FlightDetail")).Return(nil).Once()

	input := schedule(6)
	input.FlightName = "SF-202"
	updated, err := service.UpdateDetail(ctx, carol, 11, input)
	require.NoError(t, err)
	assert.Equal(t, int64(11), updated.ID)
	assert.Equal(t, int64(3), updated.FlightOwnerID)
	assert.Equal(t, "SF-202", updated.FlightName)

	_, err = service.UpdateDetail(ctx, dave, 11, input)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNumberOfCalls(t, "UpdateDetail", 1)
}

func TestOwnerService_DeleteDetail(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()
	existing := schedule(4)
	existing.ID = 11
	existing.FlightOwnerID = 3

	repo.On("GetDetail", ctx, int64(11)).Return(&existing, nil)
	repo.On("GetOwnerByUserID", ctx, int64(8)).Return(nil, domain.NotFound("Flight owner not found"))
	repo.On("DeleteDetail", ctx, int64(11)).Return(nil).Once()

	assert.ErrorIs(t, service.DeleteDetail(ctx, dave, 11), domain.ErrForbidden)
	assert.NoError(t, service.DeleteDetail(ctx, admin, 11))
	repo.AssertExpectations(t)
}

func TestOwnerService_ListBookings(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetOwnerByUserID", ctx, int64(7)).Return(&domain.FlightOwner{ID: 3}, nil)
	repo.On("ListBookingsForOwner", ctx, int64(3)).Return([]domain.OwnerBooking{{BookingID: 5}}, nil)

	bookings, err := service.ListBookings(ctx, carol, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bookings[0].BookingID)

	_, err = service.ListBookings(ctx, dave, 7)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
