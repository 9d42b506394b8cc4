package email

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notifications. Delivery is a log line for now.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.WithFields(logrus.Fields{
		"event":      event.Type,
		"event_id":   event.ID,
		"booking_id": event.BookingID,
		"user_id":    event.UserID,
		"flight_id":  event.FlightID,
		"status":     event.Status,
	}).Info(subject(event))
	return nil
}

func subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Your booking is confirmed"
	case kafka.EventBookingCancelRequested:
		return "We received your cancellation request"
	case kafka.EventBookingRefunded:
		return "Your refund was approved"
	case kafka.EventBookingRefundRejected:
		return "Your refund request was rejected"
	case kafka.EventBookingDeleted:
		return "Your booking was removed"
	}
	return "Your booking status changed to " + event.Status
}
