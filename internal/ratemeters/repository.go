package ratemeters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Repository handles database operations for rate meters
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new rate meters repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new rate meter
func (r *Repository) Create(ctx context.Context, rm *RateMeter) error {
	query := `
		INSERT INTO rate_meters (
			service_type, car_category, trip_type,
			base_fare, per_km_rate, per_minute_rate, per_hour_rate,
			extra_km_rate, min_km, base_km_per_day, driver_charges, night_charges,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rm.ServiceType, rm.CarCategory, rm.TripType,
		rm.BaseFare, rm.PerKmRate, rm.PerMinuteRate, rm.PerHourRate,
		rm.ExtraKmRate, rm.MinKm, rm.BaseKmPerDay, rm.DriverCharges, rm.NightCharges,
		rm.IsActive,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rate meter: %w", err)
	}
	return nil
}

// GetByID retrieves a rate meter by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*RateMeter, error) {
	query := `
		SELECT id, service_type, car_category, trip_type,
		       base_fare, per_km_rate, per_minute_rate, per_hour_rate,
		       extra_km_rate, min_km, base_km_per_day, driver_charges, night_charges,
		       is_active, created_at, updated_at
		FROM rate_meters WHERE id = $1
	`
	rm := &RateMeter{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.ServiceType, &rm.CarCategory, &rm.TripType,
		&rm.BaseFare, &rm.PerKmRate, &rm.PerMinuteRate, &rm.PerHourRate,
		&rm.ExtraKmRate, &rm.MinKm, &rm.BaseKmPerDay, &rm.DriverCharges, &rm.NightCharges,
		&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate meter %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rate meter: %w", err)
	}
	return rm, nil
}

// List lists rate meters with filtering and pagination
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*RateMeter, int64, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if !filter.IncludeInactive {
		where += " AND is_active = true"
	}
	if filter.ServiceType != "" {
		where += fmt.Sprintf(" AND service_type = $%d", argPos)
		args = append(args, filter.ServiceType)
		argPos++
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM rate_meters %s", where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rate meters: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, service_type, car_category, trip_type,
		       base_fare, per_km_rate, per_minute_rate, per_hour_rate,
		       extra_km_rate, min_km, base_km_per_day, driver_charges, night_charges,
		       is_active, created_at, updated_at
		FROM rate_meters %s
		ORDER BY service_type, car_category, id
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rate meters: %w", err)
	}
	defer rows.Close()

	items := make([]*RateMeter, 0)
	for rows.Next() {
		rm := &RateMeter{}
		err := rows.Scan(
			&rm.ID, &rm.ServiceType, &rm.CarCategory, &rm.TripType,
			&rm.BaseFare, &rm.PerKmRate, &rm.PerMinuteRate, &rm.PerHourRate,
			&rm.ExtraKmRate, &rm.MinKm, &rm.BaseKmPerDay, &rm.DriverCharges, &rm.NightCharges,
			&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan rate meter: %w", err)
		}
		items = append(items, rm)
	}
	return items, total, nil
}

// Update updates a rate meter
func (r *Repository) Update(ctx context.Context, rm *RateMeter) error {
	query := `
		UPDATE rate_meters SET
			service_type = $2, car_category = $3, trip_type = $4,
			base_fare = $5, per_km_rate = $6, per_minute_rate = $7, per_hour_rate = $8,
			extra_km_rate = $9, min_km = $10, base_km_per_day = $11,
			driver_charges = $12, night_charges = $13,
			is_active = $14, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rm.ID, rm.ServiceType, rm.CarCategory, rm.TripType,
		rm.BaseFare, rm.PerKmRate, rm.PerMinuteRate, rm.PerHourRate,
		rm.ExtraKmRate, rm.MinKm, rm.BaseKmPerDay, rm.DriverCharges, rm.NightCharges,
		rm.IsActive,
	).Scan(&rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("rate meter %d: %w", rm.ID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to update rate meter: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a rate meter
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rate_meters SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate rate meter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rate meter %d: %w", id, common.ErrNotFound)
	}
	return nil
}
