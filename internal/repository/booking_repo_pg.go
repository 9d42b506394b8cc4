package repository

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// CreateWithSeatCheck inserts the booking while holding the flight row
	// lock. check, when non-nil, sees the seats of every booking that still
	// holds them and may veto the insert.
	CreateWithSeatCheck(ctx context.Context, booking *domain.Booking, check domain.SeatCheck) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetView(ctx context.Context, id int64) (*domain.BookingView, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingView, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
	OccupiedSeats(ctx context.Context, flightID int64) ([]string, error)
	// ChangeStatus locks the booking row, asks change for the next status and
	// writes it in the same transaction.
	ChangeStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error)
	// DeleteWithPassengers removes the booking and its passenger rows
	// atomically and reports how many passenger rows went with it.
	DeleteWithPassengers(ctx context.Context, id int64) (int64, error)
	ExistsForUserFlight(ctx context.Context, userID, flightID int64) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.user_id, b.flight_id, b.flight_name, b.route, COALESCE(b.selected_seats, ''),
	b.passengers, b.total_amount, b.ticket_type, b.booked_at, b.departure_time, b.arrival_time,
	b.status, b.created_at, b.updated_at`

const bookingViewColumns = bookingColumns + `,
	u.id, u.name, u.email, f.id, f.origin, f.destination, f.price`

const bookingViewFrom = ` FROM bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN flights f ON f.id = b.flight_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func bookingDest(b *domain.Booking) []any {
	return []any{&b.ID, &b.UserID, &b.FlightID, &b.FlightName, &b.Route, &b.SelectedSeats,
		&b.Passengers, &b.TotalAmount, &b.TicketType, &b.BookedAt, &b.DepartureTime, &b.ArrivalTime,
		&b.Status, &b.CreatedAt, &b.UpdatedAt}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(bookingDest(&b)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookingView(row rowScanner) (*domain.BookingView, error) {
	var (
		v                   domain.BookingView
		userID, flightID    *int64
		userName, userEmail *string
		origin, destination *string
		price               *float64
	)
	dest := append(bookingDest(&v.Booking), &userID, &userName, &userEmail, &flightID, &origin, &destination, &price)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if userID != nil {
		v.User = &domain.UserSummary{ID: *userID, Name: deref(userName), Email: deref(userEmail)}
	}
	if flightID != nil {
		v.Flight = &domain.FlightSummary{ID: *flightID, Origin: deref(origin), Destination: deref(destination)}
		if price != nil {
			v.Flight.Price = *price
		}
	}
	return &v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *PGBookingRepository) CreateWithSeatCheck(ctx context.Context, booking *domain.Booking, check domain.SeatCheck) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var flightID int64
		if err := tx.QueryRow(ctx, `SELECT id FROM flights WHERE id=$1 FOR UPDATE`, booking.FlightID).Scan(&flightID); err != nil {
			if isNoRows(err) {
				return domain.NotFound("Flight not found.")
			}
			return err
		}

		if check != nil {
			occupied, err := occupiedSeats(ctx, tx, booking.FlightID)
			if err != nil {
				return err
			}
			if err := check(occupied); err != nil {
				return err
			}
		}

		return tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, flight_name, route, selected_seats,
				passengers, total_amount, ticket_type, booked_at, departure_time, arrival_time, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at`,
			booking.UserID, booking.FlightID, booking.FlightName, booking.Route, booking.SelectedSeats,
			booking.Passengers, booking.TotalAmount, booking.TicketType, booking.BookedAt,
			booking.DepartureTime, booking.ArrivalTime, booking.Status).
			Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	})
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1`, id))
	if isNoRows(err) {
		return nil, domain.NotFound("Booking not found")
	}
	return b, err
}

func (r *PGBookingRepository) GetView(ctx context.Context, id int64) (*domain.BookingView, error) {
	v, err := scanBookingView(r.db.QueryRow(ctx, `SELECT `+bookingViewColumns+bookingViewFrom+` WHERE b.id=$1`, id))
	if isNoRows(err) {
		return nil, domain.NotFound("Booking not found")
	}
	return v, err
}

func (r *PGBookingRepository) listViews(ctx context.Context, where string, args ...any) ([]domain.BookingView, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingViewColumns+bookingViewFrom+where+` ORDER BY b.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]domain.BookingView, 0)
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	return r.listViews(ctx, ` WHERE b.user_id=$1`, userID)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	return r.listViews(ctx, "")
}

func (r *PGBookingRepository) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	return occupiedSeats(ctx, r.db, flightID)
}

func occupiedSeats(ctx context.Context, q querier, flightID int64) ([]string, error) {
	released := make([]string, 0, 2)
	for _, s := range domain.ReleasedStatuses() {
		released = append(released, string(s))
	}

	rows, err := q.Query(ctx, `SELECT selected_seats FROM bookings
		WHERE flight_id=$1 AND selected_seats IS NOT NULL AND selected_seats <> ''
		  AND status <> ALL($2::text[])
		ORDER BY id`, flightID, released)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		lists = append(lists, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return domain.OccupiedSeats(lists), nil
}

func (r *PGBookingRepository) ChangeStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error) {
	var updated *domain.Booking
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		b, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1 FOR UPDATE`, id))
		if err != nil {
			if isNoRows(err) {
				return domain.NotFound("Booking not found")
			}
			return err
		}

		next, err := change(b)
		if err != nil {
			return err
		}

		if err := tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING updated_at`, next, id).
			Scan(&b.UpdatedAt); err != nil {
			return err
		}
		b.Status = next
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PGBookingRepository) DeleteWithPassengers(ctx context.Context, id int64) (int64, error) {
	var passengers int64
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `DELETE FROM passenger_details WHERE booking_id=$1`, id)
		if err != nil {
			return err
		}
		passengers = cmd.RowsAffected()

		cmd, err = tx.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.NotFound("Booking not found")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return passengers, nil
}

func (r *PGBookingRepository) ExistsForUserFlight(ctx context.Context, userID, flightID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id=$1 AND flight_id=$2)`, userID, flightID).Scan(&exists)
	return exists, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
