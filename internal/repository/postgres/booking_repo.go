package postgres

import (
	"context"
	"database/sql"

	"devevents/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Create inserts the booking. The referenced event is not checked here: bookings.event_id
// carries no foreign key and the existence check belongs to the caller.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).
		Scan(&b.ID)
	return translateError(err)
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if !isUUID(eventID) {
		return 0, nil
	}
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
