package repository

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OwnerRepository interface {
	GetOwnerByUserID(ctx context.Context, userID int64) (*domain.FlightOwner, error)
	// EnsureOwner returns the owner row of userID, creating it with airline
	// when the user has none yet.
	EnsureOwner(ctx context.Context, userID int64, airline string) (*domain.FlightOwner, error)
	ListDetailsByOwner(ctx context.Context, ownerID int64) ([]domain.FlightDetailView, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	CreateDetail(ctx context.Context, detail *domain.FlightDetail) error
	UpdateDetail(ctx context.Context, detail *domain.FlightDetail) error
	DeleteDetail(ctx context.Context, id int64) error
	OwnsFlight(ctx context.Context, userID, flightID int64) (bool, error)
	ListBookingsForOwner(ctx context.Context, ownerID int64) ([]domain.OwnerBooking, error)
}

type PGOwnerRepository struct {
	db *pgxpool.Pool
}

func NewOwnerRepository(db *pgxpool.Pool) OwnerRepository {
	return &PGOwnerRepository{db: db}
}

const detailColumns = `d.id, d.flight_id, d.flight_owner_id, d.flight_name, COALESCE(d.baggage_info, ''),
	d.number_of_seats, d.departure_time, d.arrival_time, d.fare, d.created_at`

func detailDest(d *domain.FlightDetail) []any {
	return []any{&d.ID, &d.FlightID, &d.FlightOwnerID, &d.FlightName, &d.BaggageInfo,
		&d.NumberOfSeats, &d.DepartureTime, &d.ArrivalTime, &d.Fare, &d.CreatedAt}
}

func (r *PGOwnerRepository) GetOwnerByUserID(ctx context.Context, userID int64) (*domain.FlightOwner, error) {
	var o domain.FlightOwner
	err := r.db.QueryRow(ctx, `SELECT id, user_id, airline_name, created_at FROM flight_owners WHERE user_id=$1`, userID).
		Scan(&o.ID, &o.UserID, &o.AirlineName, &o.CreatedAt)
	if isNoRows(err) {
		return nil, domain.NotFound("Flight owner not found")
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGOwnerRepository) EnsureOwner(ctx context.Context, userID int64, airline string) (*domain.FlightOwner, error) {
	var o domain.FlightOwner
	// The no-op update makes RETURNING yield the existing row on conflict.
	err := r.db.QueryRow(ctx, `INSERT INTO flight_owners (user_id, airline_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, airline_name, created_at`, userID, airline).
		Scan(&o.ID, &o.UserID, &o.AirlineName, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGOwnerRepository) ListDetailsByOwner(ctx context.Context, ownerID int64) ([]domain.FlightDetailView, error) {
	rows, err := r.db.Query(ctx, `SELECT `+detailColumns+`, f.origin || ' → ' || f.destination, f.price
		FROM flight_details d
		JOIN flights f ON f.id = d.flight_id
		WHERE d.flight_owner_id=$1
		ORDER BY d.id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]domain.FlightDetailView, 0)
	for rows.Next() {
		var v domain.FlightDetailView
		if err := rows.Scan(append(detailDest(&v.FlightDetail), &v.FlightRoute, &v.FlightPrice)...); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PGOwnerRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	var d domain.FlightDetail
	err := r.db.QueryRow(ctx, `SELECT `+detailColumns+` FROM flight_details d WHERE d.id=$1`, id).Scan(detailDest(&d)...)
	if isNoRows(err) {
		return nil, domain.NotFound("Flight detail not found")
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGOwnerRepository) CreateDetail(ctx context.Context, d *domain.FlightDetail) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flight_details (flight_id, flight_owner_id, flight_name, baggage_info,
			number_of_seats, departure_time, arrival_time, fare)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		d.FlightID, d.FlightOwnerID, d.FlightName, d.BaggageInfo, d.NumberOfSeats, d.DepartureTime, d.ArrivalTime, d.Fare).
		Scan(&d.ID, &d.CreatedAt)
	if hasPGCode(err, pgForeignKeyViolation) {
		return domain.NotFound("Flight not found")
	}
	return err
}

func (r *PGOwnerRepository) UpdateDetail(ctx context.Context, d *domain.FlightDetail) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flight_details
		SET flight_id=$1, flight_name=$2, baggage_info=$3, number_of_seats=$4, departure_time=$5, arrival_time=$6, fare=$7
		WHERE id=$8`,
		d.FlightID, d.FlightName, d.BaggageInfo, d.NumberOfSeats, d.DepartureTime, d.ArrivalTime, d.Fare, d.ID)
	if hasPGCode(err, pgForeignKeyViolation) {
		return domain.NotFound("Flight not found")
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Flight detail not found")
	}
	return nil
}

func (r *PGOwnerRepository) DeleteDetail(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flight_details WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Flight detail not found")
	}
	return nil
}

func (r *PGOwnerRepository) OwnsFlight(ctx context.Context, userID, flightID int64) (bool, error) {
	var owns bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(
		SELECT 1 FROM flight_details d
		JOIN flight_owners o ON o.id = d.flight_owner_id
		WHERE o.user_id=$1 AND d.flight_id=$2)`, userID, flightID).Scan(&owns)
	return owns, err
}

func (r *PGOwnerRepository) ListBookingsForOwner(ctx context.Context, ownerID int64) ([]domain.OwnerBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''), b.flight_id,
			COALESCE((SELECT d.flight_name FROM flight_details d
				WHERE d.flight_id = b.flight_id AND d.flight_owner_id = $1
				ORDER BY d.id LIMIT 1), b.flight_name),
			b.booked_at, b.passengers, b.total_amount, b.route, COALESCE(b.selected_seats, ''),
			b.ticket_type, b.status
		FROM bookings b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.flight_id IN (SELECT flight_id FROM flight_details WHERE flight_owner_id=$1)
		ORDER BY b.booked_at DESC, b.id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.OwnerBooking, 0)
	for rows.Next() {
		var b domain.OwnerBooking
		if err := rows.Scan(&b.BookingID, &b.UserID, &b.UserName, &b.UserEmail, &b.FlightID,
			&b.FlightName, &b.BookingDate, &b.PassengerCount, &b.TotalAmount, &b.Route, &b.SelectedSeats,
			&b.TicketType, &b.Status); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ OwnerRepository = (*PGOwnerRepository)(nil)
