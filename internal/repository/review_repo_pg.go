package repository

import (
	"context"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

const reviewSelect = `SELECT r.id, r.user_id, r.flight_id, r.rating, COALESCE(r.comment, ''), r.submitted_at, COALESCE(u.name, '')
	FROM reviews r
	LEFT JOIN users u ON u.id = r.user_id`

func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.FlightID, &rv.Rating, &rv.Comment, &rv.SubmittedAt, &rv.Reviewer); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRow(ctx, `INSERT INTO reviews (user_id, flight_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at`, review.UserID, review.FlightID, review.Rating, review.Comment).
		Scan(&review.ID, &review.SubmittedAt)
	if hasPGCode(err, pgForeignKeyViolation) {
		return domain.NotFound("Flight not found")
	}
	return err
}

func (r *PGReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	rows, err := r.db.Query(ctx, reviewSelect+` WHERE r.id=$1`, id)
	if err != nil {
		return nil, err
	}
	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, domain.NotFound("Review not found")
	}
	return &reviews[0], nil
}

func (r *PGReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, reviewSelect+` ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	return scanReviews(rows)
}

func (r *PGReviewRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, reviewSelect+` WHERE r.flight_id=$1 ORDER BY r.submitted_at DESC`, flightID)
	if err != nil {
		return nil, err
	}
	return scanReviews(rows)
}

func (r *PGReviewRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Review not found")
	}
	return nil
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
