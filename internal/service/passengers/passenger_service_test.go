package passengers

import (
	"context"
	"testing"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) CreateBatch(ctx context.Context, passengers []domain.PassengerDetail) error {
	args := m.Called(ctx, passengers)
	return args.Error(0)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.PassengerDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PassengerDetail), args.Error(1)
}

func (m *MockPassengerRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.PassengerDetail, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.PassengerDetail), args.Error(1)
}

func (m *MockPassengerRepository) ListByBookingForUser(ctx context.Context, bookingID, userID int64) ([]domain.PassengerDetail, error) {
	args := m.Called(ctx, bookingID, userID)
	return args.Get(0).([]domain.PassengerDetail), args.Error(1)
}

func (m *MockPassengerRepository) DeleteByBookingForUser(ctx context.Context, bookingID, userID int64) (int64, error) {
	args := m.Called(ctx, bookingID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPassengerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

var (
	alice = domain.Identity{UserID: 1, Role: domain.RoleUser}
	bob   = domain.Identity{UserID: 2, Role: domain.RoleUser}
)

func newService() (*PassengerService, *MockPassengerRepository, *MockBookingReader) {
	repo := &MockPassengerRepository{}
	bookings := &MockBookingReader{}
	return &PassengerService{repo: repo, bookings: bookings, log: logger.Discard()}, repo, bookings
}

func roster() []domain.PassengerDetail {
	return []domain.PassengerDetail{
		{FirstName: "Ann", LastName: "Lee", Age: 30, Gender: "F", Nationality: "US", SeatNo: "7A"},
		{FirstName: "Tom", LastName: "Lee", Age: 8, Gender: "M", Nationality: "US"},
	}
}

func TestPassengerService_SaveDetails(t *testing.T) {
	service, repo, bookings := newService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(5)).Return(&domain.Booking{ID: 5, UserID: alice.UserID}, nil).Once()
	repo.On("CreateBatch", ctx, mock.MatchedBy(func(ps []domain.PassengerDetail) bool {
		return len(ps) == 2 && ps[0].BookingID == 5 && ps[1].UserID == alice.UserID
	})).Return(nil).Once()

	saved, err := service.SaveDetails(ctx, alice, 5, roster())

	require.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Equal(t, domain.DefaultSeatNo, saved[1].SeatNo)
	repo.AssertExpectations(t)
}

func TestPassengerService_SaveDetails_InvalidPassengerRejectsBatch(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	passengers := roster()
	passengers[1].FirstName = ""

	_, err := service.SaveDetails(ctx, alice, 5, passengers)

	var perr *domain.PassengerError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Position)
	assert.Equal(t, "Passenger 2: FirstName is required", err.Error())
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestPassengerService_SaveDetails_BookingChecks(t *testing.T) {
	service, repo, bookings := newService()
	ctx := context.Background()

	_, err := service.SaveDetails(ctx, alice, 0, roster())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Invalid BookingId.", err.Error())

	_, err = service.SaveDetails(ctx, alice, 5, nil)
	assert.Equal(t, "No passenger data provided.", err.Error())

	bookings.On("GetByID", ctx, int64(6)).Return(nil, domain.NotFound("Booking not found")).Once()
	_, err = service.SaveDetails(ctx, alice, 6, roster())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bookings.On("GetByID", ctx, int64(7)).Return(&domain.Booking{ID: 7, UserID: bob.UserID}, nil).Once()
	_, err = service.SaveDetails(ctx, alice, 7, roster())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestPassengerService_ListForBooking(t *testing.T) {
	service, repo, bookings := newService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(5)).Return(&domain.Booking{ID: 5, UserID: alice.UserID}, nil)
	repo.On("ListByBookingForUser", ctx, int64(5), alice.UserID).Return(roster(), nil).Once()

	list, err := service.ListForBooking(ctx, alice, 5)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = service.ListForBooking(ctx, bob, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPassengerService_DeleteForBooking(t *testing.T) {
	service, repo, bookings := newService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(5)).Return(&domain.Booking{ID: 5, UserID: alice.UserID}, nil)
	repo.On("DeleteByBookingForUser", ctx, int64(5), alice.UserID).Return(int64(2), nil).Once()

	removed, err := service.DeleteForBooking(ctx, alice, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestPassengerService_DeletePassenger(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(3)).Return(&domain.PassengerDetail{ID: 3, UserID: alice.UserID}, nil)
	repo.On("Delete", ctx, int64(3)).Return(nil).Once()

	assert.ErrorIs(t, service.DeletePassenger(ctx, bob, 3), domain.ErrForbidden)
	assert.NoError(t, service.DeletePassenger(ctx, alice, 3))
	repo.AssertExpectations(t)
}
