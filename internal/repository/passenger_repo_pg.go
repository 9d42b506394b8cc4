package repository

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	// CreateBatch inserts every passenger or none of them.
	CreateBatch(ctx context.Context, passengers []domain.PassengerDetail) error
	GetByID(ctx context.Context, id int64) (*domain.PassengerDetail, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.PassengerDetail, error)
	ListByBookingForUser(ctx context.Context, bookingID, userID int64) ([]domain.PassengerDetail, error)
	DeleteByBookingForUser(ctx context.Context, bookingID, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, user_id, booking_id, COALESCE(seat_no, ''), first_name, last_name, age, gender,
	COALESCE(passport_number, ''), nationality, created_at`

func scanPassengers(rows pgx.Rows) ([]domain.PassengerDetail, error) {
	defer rows.Close()

	passengers := make([]domain.PassengerDetail, 0)
	for rows.Next() {
		var p domain.PassengerDetail
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookingID, &p.SeatNo, &p.FirstName, &p.LastName, &p.Age,
			&p.Gender, &p.PassportNumber, &p.Nationality, &p.CreatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) CreateBatch(ctx context.Context, passengers []domain.PassengerDetail) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range passengers {
			p := &passengers[i]
			batch.Queue(`INSERT INTO passenger_details (user_id, booking_id, seat_no, first_name, last_name, age,
					gender, passport_number, nationality)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id, created_at`,
				p.UserID, p.BookingID, p.SeatNo, p.FirstName, p.LastName, p.Age, p.Gender, p.PassportNumber, p.Nationality).
				QueryRow(func(row pgx.Row) error {
					return row.Scan(&p.ID, &p.CreatedAt)
				})
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.PassengerDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passenger_details WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	passengers, err := scanPassengers(rows)
	if err != nil {
		return nil, err
	}
	if len(passengers) == 0 {
		return nil, domain.NotFound("Passenger not found")
	}
	return &passengers[0], nil
}

func (r *PGPassengerRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.PassengerDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passenger_details WHERE booking_id=$1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	return scanPassengers(rows)
}

func (r *PGPassengerRepository) ListByBookingForUser(ctx context.Context, bookingID, userID int64) ([]domain.PassengerDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passenger_details
		WHERE booking_id=$1 AND user_id=$2 ORDER BY id`, bookingID, userID)
	if err != nil {
		return nil, err
	}
	return scanPassengers(rows)
}

func (r *PGPassengerRepository) DeleteByBookingForUser(ctx context.Context, bookingID, userID int64) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passenger_details WHERE booking_id=$1 AND user_id=$2`, bookingID, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passenger_details WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Passenger not found")
	}
	return nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
