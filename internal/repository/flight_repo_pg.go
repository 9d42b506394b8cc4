package repository

import (
	"context"
	"strings"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, q domain.FlightSearch) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	HasBookings(ctx context.Context, id int64) (bool, error)
	BookedNames(ctx context.Context) ([]domain.FlightName, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, origin, destination, price, created_at, updated_at`

var flightOrder = map[domain.FlightSort]string{
	domain.SortByPrice:       "price, id",
	domain.SortByOrigin:      "origin, id",
	domain.SortByDestination: "destination, id",
	domain.SortByID:          "id",
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Origin, &f.Destination, &f.Price, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Origin, &f.Destination, &f.Price, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("Flight not found")
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, q domain.FlightSearch) ([]domain.Flight, error) {
	order, ok := flightOrder[q.SortBy]
	if !ok {
		order = flightOrder[domain.SortByPrice]
	}
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE ($1 = '' OR origin ILIKE '%' || $1 || '%' ESCAPE '\')
		  AND ($2 = '' OR destination ILIKE '%' || $2 || '%' ESCAPE '\')
		ORDER BY `+order, likeEscape(q.Origin), likeEscape(q.Destination))
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape makes s match literally inside an ILIKE pattern.
func likeEscape(s string) string {
	return likeEscaper.Replace(s)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (origin, destination, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, flight.Origin, flight.Destination, flight.Price).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `UPDATE flights SET origin=$1, destination=$2, price=$3, updated_at=now()
		WHERE id=$4
		RETURNING created_at, updated_at`, flight.Origin, flight.Destination, flight.Price, flight.ID).
		Scan(&flight.CreatedAt, &flight.UpdatedAt)
	if isNoRows(err) {
		return domain.NotFound("Flight not found")
	}
	return err
}

// Delete removes the flight with its owner schedules and reviews. Bookings
// are never cascaded; a referencing booking makes the delete fail.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM flight_details WHERE flight_id=$1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE flight_id=$1`, id); err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.NotFound("Flight not found")
		}
		return nil
	})
	if hasPGCode(err, pgForeignKeyViolation) {
		return domain.Conflict("Cannot delete flight with existing bookings")
	}
	return err
}

func (r *PGFlightRepository) HasBookings(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE flight_id=$1)`, id).Scan(&exists)
	return exists, err
}

// BookedNames returns, per flight, the airline name of its earliest booking
// or an empty string when nobody has booked it yet.
func (r *PGFlightRepository) BookedNames(ctx context.Context) ([]domain.FlightName, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id,
			COALESCE((SELECT b.flight_name FROM bookings b
				WHERE b.flight_id = f.id AND b.flight_name <> ''
				ORDER BY b.id LIMIT 1), '')
		FROM flights f ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]domain.FlightName, 0)
	for rows.Next() {
		var n domain.FlightName
		if err := rows.Scan(&n.FlightID, &n.FlightName); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
