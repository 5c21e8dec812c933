package fares

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Repository reads pricing rules from the rate_meters and cab_types tables
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new fares repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const rateMeterColumns = `
	id, service_type, car_category, trip_type,
	base_fare, per_km_rate, per_minute_rate, per_hour_rate,
	extra_km_rate, min_km, base_km_per_day, driver_charges, night_charges,
	is_active, created_at, updated_at
`

// GetRateMeter returns the rate meter matching service type and car category
// exactly. For outstation the trip type must match as well; for other
// service types only rows without a trip type qualify.
func (r *Repository) GetRateMeter(ctx context.Context, serviceType ServiceType, carCategory string, tripType *TripType) (*RateMeterRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rate_meters
		WHERE service_type = $1
		  AND LOWER(car_category) = LOWER($2)
		  AND (
		    ($3::text IS NULL AND trip_type IS NULL)
		    OR trip_type = $3
		  )
		  AND is_active = true
		ORDER BY id
		LIMIT 1
	`, rateMeterColumns)

	rule, err := r.scanRateMeter(r.db.QueryRow(ctx, query, serviceType, carCategory, tripType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate meter for %s/%s: %w", serviceType, carCategory, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rate meter: %w", err)
	}
	return rule, nil
}

// GetGenericRateMeter returns any active rate meter for the service type,
// ignoring car category and trip type. First by primary key so the pick is
// stable across calls.
func (r *Repository) GetGenericRateMeter(ctx context.Context, serviceType ServiceType) (*RateMeterRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rate_meters
		WHERE service_type = $1
		  AND is_active = true
		ORDER BY id
		LIMIT 1
	`, rateMeterColumns)

	rule, err := r.scanRateMeter(r.db.QueryRow(ctx, query, serviceType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate meter for %s: %w", serviceType, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get generic rate meter: %w", err)
	}
	return rule, nil
}

const cabTypeColumns = `
	id, name, base_fare, per_km_rate, per_minute_rate, per_hour_rate,
	is_active, created_at, updated_at
`

// GetCabTypeByID returns an active legacy cab type by primary key
func (r *Repository) GetCabTypeByID(ctx context.Context, id int64) (*LegacyCabTypeRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cab_types
		WHERE id = $1 AND is_active = true
	`, cabTypeColumns)

	cabType, err := r.scanCabType(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cab type %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cab type: %w", err)
	}
	return cabType, nil
}

// GetCabTypeByName returns an active legacy cab type by case-insensitive name
func (r *Repository) GetCabTypeByName(ctx context.Context, name string) (*LegacyCabTypeRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cab_types
		WHERE LOWER(name) = LOWER($1) AND is_active = true
		ORDER BY id
		LIMIT 1
	`, cabTypeColumns)

	cabType, err := r.scanCabType(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cab type %q: %w", name, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cab type by name: %w", err)
	}
	return cabType, nil
}

// GetFirstActiveCabType returns the active legacy cab type with the lowest
// primary key. Last resort of the legacy fallback chain.
func (r *Repository) GetFirstActiveCabType(ctx context.Context) (*LegacyCabTypeRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cab_types
		WHERE is_active = true
		ORDER BY id
		LIMIT 1
	`, cabTypeColumns)

	cabType, err := r.scanCabType(r.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("active cab types: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get first active cab type: %w", err)
	}
	return cabType, nil
}

func (r *Repository) scanRateMeter(row pgx.Row) (*RateMeterRule, error) {
	rule := &RateMeterRule{}
	err := row.Scan(
		&rule.ID, &rule.ServiceType, &rule.CarCategory, &rule.TripType,
		&rule.BaseFare, &rule.PerKmRate, &rule.PerMinuteRate, &rule.PerHourRate,
		&rule.ExtraKmRate, &rule.MinKm, &rule.BaseKmPerDay, &rule.DriverCharges, &rule.NightCharges,
		&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *Repository) scanCabType(row pgx.Row) (*LegacyCabTypeRule, error) {
	cabType := &LegacyCabTypeRule{}
	err := row.Scan(
		&cabType.ID, &cabType.Name, &cabType.BaseFare, &cabType.PerKmRate,
		&cabType.PerMinuteRate, &cabType.PerHourRate,
		&cabType.IsActive, &cabType.CreatedAt, &cabType.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cabType, nil
}
