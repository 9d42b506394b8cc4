package booking

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/kafka"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, caller domain.Identity, input CreateBookingInput) (*domain.Booking, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]domain.BookingView, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
	BookedSeats(ctx context.Context, flightID int64) ([]string, error)
	GetDetails(ctx context.Context, caller domain.Identity, id int64) (*domain.BookingDetails, error)
	GetAnyDetails(ctx context.Context, id int64) (*domain.BookingDetails, error)
	RequestCancel(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error)
	ApproveRefund(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error)
	RejectRefund(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error)
	SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) (int64, error)
}

// SeatLocker holds individual seats for the few milliseconds a booking
// takes to commit, so competing requests fail fast.
type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seat, owner string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seat, owner string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PassengerLister interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.PassengerDetail, error)
}

type FlightOwnership interface {
	OwnsFlight(ctx context.Context, userID, flightID int64) (bool, error)
}

type CreateBookingInput struct {
	FlightID      int64
	Airline       string
	Route         string
	SelectedSeats string
	Passengers    int
	TotalAmount   float64
	TicketType    string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

type BookingService struct {
	bookings           repository.BookingRepository
	passengers         PassengerLister
	owners             FlightOwnership
	locker             SeatLocker
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
	defaultAirline     string
	scopeRefunds       bool
	log                *logrus.Logger
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithDefaultAirline(name string) BookingServiceOption {
	return func(s *BookingService) {
		s.defaultAirline = name
	}
}

// WithRefundScope makes refund approval require a schedule on the booked flight.
func WithRefundScope(enabled bool) BookingServiceOption {
	return func(s *BookingService) {
		s.scopeRefunds = enabled
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	passengers PassengerLister,
	owners FlightOwnership,
	locker SeatLocker,
	producer Producer,
	bookingTopic string,
	holdTTL time.Duration,
	log *logrus.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		passengers:   passengers,
		owners:       owners,
		locker:       locker,
		producer:     producer,
		bookingTopic: bookingTopic,
		holdTTL:      holdTTL,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, caller domain.Identity, input CreateBookingInput) (*domain.Booking, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	seats := domain.ParseSeats(input.SelectedSeats)
	release, err := s.holdSeats(ctx, input.FlightID, seats)
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.clock()
	booking := &domain.Booking{
		UserID:        caller.UserID,
		FlightID:      input.FlightID,
		FlightName:    firstNonEmpty(input.Airline, s.defaultAirline),
		Route:         strings.TrimSpace(input.Route),
		SelectedSeats: domain.JoinSeats(seats),
		Passengers:    input.Passengers,
		TotalAmount:   input.TotalAmount,
		TicketType:    firstNonEmpty(input.TicketType, domain.DefaultTicketType),
		BookedAt:      now,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Status:        domain.BookingStatusConfirmed,
	}

	var check domain.SeatCheck
	if len(seats) > 0 {
		check = domain.RequireFreeSeats(input.FlightID, seats)
	}
	if err := s.bookings.CreateWithSeatCheck(ctx, booking, check); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"flight_id":  booking.FlightID,
		"user_id":    booking.UserID,
		"seats":      booking.SelectedSeats,
	}).Info("booking created")
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func validateCreate(input CreateBookingInput) error {
	switch {
	case input.FlightID <= 0:
		return domain.Validation("FlightId is required")
	case strings.TrimSpace(input.Route) == "":
		return domain.Validation("Route is required")
	case input.Passengers < 1 || input.Passengers > domain.MaxPassengersPerBooking:
		return domain.Validation("Passengers must be between 1 and %d", domain.MaxPassengersPerBooking)
	case input.TotalAmount <= 0:
		return domain.Validation("TotalAmount must be greater than 0")
	case !input.DepartureTime.IsZero() && !input.ArrivalTime.IsZero() && input.ArrivalTime.Before(input.DepartureTime):
		return domain.Validation("ArrivalTime must be after DepartureTime")
	}
	return nil
}

// holdSeats takes a short-lived hold on every requested seat. Seats held by
// another request are reported as a seat conflict. When the locker itself
// fails, booking proceeds and relies on the database check alone.
func (s *BookingService) holdSeats(ctx context.Context, flightID int64, seats []string) (func(), error) {
	if s.locker == nil || len(seats) == 0 {
		return func() {}, nil
	}

	owner := uuid.NewString()
	held := make([]string, 0, len(seats))
	release := func() {
		for _, seat := range held {
			if err := s.locker.ReleaseSeatLock(context.WithoutCancel(ctx), flightID, seat, owner); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{"flight_id": flightID, "seat": seat}).Warn("seat hold release failed")
			}
		}
	}

	var busy []string
	for _, seat := range seats {
		ok, err := s.locker.AcquireSeatLock(ctx, flightID, seat, owner, s.holdTTL)
		if err != nil {
			s.log.WithError(err).WithField("flight_id", flightID).Warn("seat holds unavailable, relying on database check")
			return release, nil
		}
		if !ok {
			busy = append(busy, seat)
			continue
		}
		held = append(held, seat)
	}

	if len(busy) > 0 {
		release()
		return nil, &domain.SeatConflictError{FlightID: flightID, Seats: busy}
	}
	return release, nil
}

func (s *BookingService) ListMine(ctx context.Context, caller domain.Identity) ([]domain.BookingView, error) {
	return s.bookings.ListByUser(ctx, caller.UserID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) BookedSeats(ctx context.Context, flightID int64) ([]string, error) {
	return s.bookings.OccupiedSeats(ctx, flightID)
}

func (s *BookingService) GetDetails(ctx context.Context, caller domain.Identity, id int64) (*domain.BookingDetails, error) {
	view, err := s.bookings.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != caller.UserID {
		return nil, domain.NotFound("Booking not found or you don't have permission to view it.")
	}
	return s.withPassengers(ctx, view)
}

func (s *BookingService) GetAnyDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	view, err := s.bookings.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withPassengers(ctx, view)
}

func (s *BookingService) withPassengers(ctx context.Context, view *domain.BookingView) (*domain.BookingDetails, error) {
	passengers, err := s.passengers.ListByBooking(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	return &domain.BookingDetails{BookingView: *view, Passengers: passengers}, nil
}

// RequestCancel moves the caller's booking to RequestedToCancel. Admins may
// request cancellation of any booking.
func (s *BookingService) RequestCancel(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error) {
	var previous domain.BookingStatus
	booking, err := s.bookings.ChangeStatus(ctx, id, func(current *domain.Booking) (domain.BookingStatus, error) {
		if current.UserID != caller.UserID && !caller.IsAdmin() {
			return "", domain.Forbidden("You can only cancel your own bookings.")
		}
		if err := domain.Transition(current.Status, domain.BookingStatusRequestedToCancel); err != nil {
			return "", err
		}
		previous = current.Status
		return domain.BookingStatusRequestedToCancel, nil
	})
	if err != nil {
		return nil, err
	}

	s.logStatus(booking, caller).Info("cancellation requested")
	s.warnRevivedSeats(ctx, previous, booking)
	s.publish(ctx, kafka.EventBookingCancelRequested, booking)
	return booking, nil
}

func (s *BookingService) ApproveRefund(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error) {
	return s.resolveRefund(ctx, caller, id, domain.BookingStatusRefunded, kafka.EventBookingRefunded)
}

func (s *BookingService) RejectRefund(ctx context.Context, caller domain.Identity, id int64) (*domain.Booking, error) {
	return s.resolveRefund(ctx, caller, id, domain.BookingStatusConfirmed, kafka.EventBookingRefundRejected)
}

func (s *BookingService) resolveRefund(ctx context.Context, caller domain.Identity, id int64, target domain.BookingStatus, event string) (*domain.Booking, error) {
	if err := s.checkRefundScope(ctx, caller, id); err != nil {
		return nil, err
	}

	booking, err := s.bookings.ChangeStatus(ctx, id, func(current *domain.Booking) (domain.BookingStatus, error) {
		if err := domain.Transition(current.Status, target); err != nil {
			return "", err
		}
		return target, nil
	})
	if err != nil {
		return nil, err
	}

	s.logStatus(booking, caller).WithField("amount", booking.TotalAmount).Info("refund request resolved")
	s.publish(ctx, event, booking)
	return booking, nil
}

// checkRefundScope enforces that the owner operates the booked flight when
// scoping is on. Otherwise it only records cross-owner decisions.
func (s *BookingService) checkRefundScope(ctx context.Context, caller domain.Identity, id int64) error {
	if s.owners == nil {
		return nil
	}
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owns, err := s.owners.OwnsFlight(ctx, caller.UserID, booking.FlightID)
	if err != nil {
		return err
	}
	if owns {
		return nil
	}
	if s.scopeRefunds {
		return domain.Forbidden("You can only process refunds for bookings on your own flights.")
	}
	s.log.WithFields(logrus.Fields{
		"booking_id": id,
		"flight_id":  booking.FlightID,
		"owner_id":   caller.UserID,
	}).Warn("refund decided by an owner without a schedule on this flight")
	return nil
}

// SetStatus is the administrative override. Any allowed status may be set
// regardless of the current one.
func (s *BookingService) SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.AdminSettable() {
		names := make([]string, 0, 4)
		for _, st := range domain.AdminStatuses() {
			names = append(names, string(st))
		}
		return nil, domain.Validation("Invalid status. Valid statuses are: %s", strings.Join(names, ", "))
	}

	var previous domain.BookingStatus
	booking, err := s.bookings.ChangeStatus(ctx, id, func(current *domain.Booking) (domain.BookingStatus, error) {
		previous = current.Status
		return status, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"booking_id": id, "status": status}).Info("booking status overridden")
	s.warnRevivedSeats(ctx, previous, booking)
	s.publish(ctx, kafka.EventBookingStatusChanged, booking)
	return booking, nil
}

// warnRevivedSeats logs a warning when a booking that had released its seats
// holds them again while other bookings have taken some of them since. The
// status change itself is not undone.
func (s *BookingService) warnRevivedSeats(ctx context.Context, previous domain.BookingStatus, booking *domain.Booking) {
	if previous.HoldsSeats() || !booking.Status.HoldsSeats() {
		return
	}
	seats := booking.Seats()
	if len(seats) == 0 {
		return
	}

	occupied, err := s.bookings.OccupiedSeats(ctx, booking.FlightID)
	if err != nil {
		s.log.WithError(err).WithField("booking_id", booking.ID).Warn("seat check after revival failed")
		return
	}
	if conflicts := domain.SeatConflicts(seats, withoutOwn(occupied, seats)); len(conflicts) > 0 {
		s.log.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"flight_id":  booking.FlightID,
			"status":     booking.Status,
			"seats":      domain.JoinSeats(conflicts),
		}).Warn("revived booking overlaps occupied seats")
	}
}

// withoutOwn drops one occurrence of each of own from occupied.
func withoutOwn(occupied, own []string) []string {
	pending := make(map[string]int, len(own))
	for _, s := range own {
		pending[s]++
	}
	out := make([]string, 0, len(occupied))
	for _, s := range occupied {
		if pending[s] > 0 {
			pending[s]--
			continue
		}
		out = append(out, s)
	}
	return out
}

// DeleteBooking removes the booking together with its passengers and returns
// the number of passenger rows removed.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) (int64, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	removed, err := s.bookings.DeleteWithPassengers(ctx, id)
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"booking_id": id, "passengers": removed}).Info("booking deleted")
	s.publish(ctx, kafka.EventBookingDeleted, booking)
	return removed, nil
}

func (s *BookingService) logStatus(b *domain.Booking, caller domain.Identity) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"flight_id":  b.FlightID,
		"status":     b.Status,
		"by":         caller.UserID,
	})
}

// publish never fails the caller; the booking is already committed.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		ID:          uuid.New(),
		Type:        eventType,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		FlightID:    booking.FlightID,
		Seats:       booking.Seats(),
		Status:      string(booking.Status),
		TotalAmount: booking.TotalAmount,
		OccurredAt:  s.clock(),
	}

	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, event.Key(), event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"topic":      topic,
				"event":      eventType,
				"booking_id": booking.ID,
			}).Warn("failed to publish booking event")
		}
	}
}

func (s *BookingService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

var _ BookingUseCase = (*BookingService)(nil)
