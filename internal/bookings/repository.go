package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Repository handles booking data access
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `id, user_id, service_type, trip_type, car_category, car_option_id,
	pickup_address, dropoff_address, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
	pickup_at, return_at, number_of_hours, number_of_days,
	fare, distance_km, estimated_time_minutes, rule_kind, fare_breakdown,
	status, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, b *Booking) error {
	breakdown, err := json.Marshal(b.FareBreakdown)
	if err != nil {
		return fmt.Errorf("failed to encode fare breakdown: %w", err)
	}

	query := `
		INSERT INTO bookings (
			id, user_id, service_type, trip_type, car_category, car_option_id,
			pickup_address, dropoff_address, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
			pickup_at, return_at, number_of_hours, number_of_days,
			fare, distance_km, estimated_time_minutes, rule_kind, fare_breakdown, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		b.ID, b.UserID, b.ServiceType, b.TripType, b.CarCategory, b.CarOptionID,
		b.PickupAddress, b.DropoffAddress, b.PickupLat, b.PickupLng, b.DropoffLat, b.DropoffLng,
		b.PickupAt, b.ReturnAt, b.NumberOfHours, b.NumberOfDays,
		b.Fare, b.DistanceKm, b.EstimatedTimeMinutes, b.RuleKind, breakdown, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Booking, int64, error) {
	where := ""
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM bookings WHERE 1=1` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE 1=1%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var breakdown []byte
	err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceType, &b.TripType, &b.CarCategory, &b.CarOptionID,
		&b.PickupAddress, &b.DropoffAddress, &b.PickupLat, &b.PickupLng, &b.DropoffLat, &b.DropoffLng,
		&b.PickupAt, &b.ReturnAt, &b.NumberOfHours, &b.NumberOfDays,
		&b.Fare, &b.DistanceKm, &b.EstimatedTimeMinutes, &b.RuleKind, &breakdown,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &b.FareBreakdown); err != nil {
			return nil, fmt.Errorf("failed to decode fare breakdown: %w", err)
		}
	}
	return &b, nil
}
