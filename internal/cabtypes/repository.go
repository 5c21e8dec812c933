package cabtypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Repository handles database operations for cab types and car options
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new cab types repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateCabType inserts a new cab type
func (r *Repository) CreateCabType(ctx context.Context, ct *CabType) error {
	query := `
		INSERT INTO cab_types (name, base_fare, per_km_rate, per_minute_rate, per_hour_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		ct.Name, ct.BaseFare, ct.PerKmRate, ct.PerMinuteRate, ct.PerHourRate, ct.IsActive,
	).Scan(&ct.ID, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create cab type: %w", err)
	}
	return nil
}

// GetCabTypeByID retrieves a cab type by id
func (r *Repository) GetCabTypeByID(ctx context.Context, id int64) (*CabType, error) {
	query := `
		SELECT id, name, base_fare, per_km_rate, per_minute_rate, per_hour_rate,
		       is_active, created_at, updated_at
		FROM cab_types WHERE id = $1
	`
	ct := &CabType{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ct.ID, &ct.Name, &ct.BaseFare, &ct.PerKmRate, &ct.PerMinuteRate, &ct.PerHourRate,
		&ct.IsActive, &ct.CreatedAt, &ct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cab type %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cab type: %w", err)
	}
	return ct, nil
}

// ListCabTypes lists cab types with pagination
func (r *Repository) ListCabTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*CabType, int64, error) {
	whereClause := ""
	if !includeInactive {
		whereClause = "WHERE is_active = true"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM cab_types %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cab types: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, base_fare, per_km_rate, per_minute_rate, per_hour_rate,
		       is_active, created_at, updated_at
		FROM cab_types %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cab types: %w", err)
	}
	defer rows.Close()

	items := make([]*CabType, 0)
	for rows.Next() {
		ct := &CabType{}
		err := rows.Scan(
			&ct.ID, &ct.Name, &ct.BaseFare, &ct.PerKmRate, &ct.PerMinuteRate, &ct.PerHourRate,
			&ct.IsActive, &ct.CreatedAt, &ct.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cab type: %w", err)
		}
		items = append(items, ct)
	}
	return items, total, nil
}

// UpdateCabType updates a cab type
func (r *Repository) UpdateCabType(ctx context.Context, ct *CabType) error {
	query := `
		UPDATE cab_types SET
			name = $2, base_fare = $3, per_km_rate = $4, per_minute_rate = $5,
			per_hour_rate = $6, is_active = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		ct.ID, ct.Name, ct.BaseFare, ct.PerKmRate, ct.PerMinuteRate, ct.PerHourRate, ct.IsActive,
	).Scan(&ct.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("cab type %d: %w", ct.ID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to update cab type: %w", err)
	}
	return nil
}

// DeactivateCabType soft-deletes a cab type
func (r *Repository) DeactivateCabType(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cab_types SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate cab type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cab type %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// CreateCarOption inserts a new car option
func (r *Repository) CreateCarOption(ctx context.Context, co *CarOption) error {
	query := `
		INSERT INTO car_options (name, description, seats, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		co.Name, co.Description, co.Seats, co.ImageURL, co.IsActive,
	).Scan(&co.ID, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create car option: %w", err)
	}
	return nil
}

// GetCarOptionByID retrieves a car option by id
func (r *Repository) GetCarOptionByID(ctx context.Context, id int64) (*CarOption, error) {
	query := `
		SELECT id, name, description, seats, image_url, is_active, created_at, updated_at
		FROM car_options WHERE id = $1
	`
	co := &CarOption{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&co.ID, &co.Name, &co.Description, &co.Seats, &co.ImageURL,
		&co.IsActive, &co.CreatedAt, &co.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("car option %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get car option: %w", err)
	}
	return co, nil
}

// ListCarOptions lists car options with pagination
func (r *Repository) ListCarOptions(ctx context.Context, limit, offset int, includeInactive bool) ([]*CarOption, int64, error) {
	whereClause := ""
	if !includeInactive {
		whereClause = "WHERE is_active = true"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM car_options %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count car options: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, seats, image_url, is_active, created_at, updated_at
		FROM car_options %s
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list car options: %w", err)
	}
	defer rows.Close()

	items := make([]*CarOption, 0)
	for rows.Next() {
		co := &CarOption{}
		err := rows.Scan(
			&co.ID, &co.Name, &co.Description, &co.Seats, &co.ImageURL,
			&co.IsActive, &co.CreatedAt, &co.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan car option: %w", err)
		}
		items = append(items, co)
	}
	return items, total, nil
}

// UpdateCarOption updates a car option
func (r *Repository) UpdateCarOption(ctx context.Context, co *CarOption) error {
	query := `
		UPDATE car_options SET
			name = $2, description = $3, seats = $4, image_url = $5,
			is_active = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		co.ID, co.Name, co.Description, co.Seats, co.ImageURL, co.IsActive,
	).Scan(&co.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("car option %d: %w", co.ID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to update car option: %w", err)
	}
	return nil
}

// DeactivateCarOption soft-deletes a car option
func (r *Repository) DeactivateCarOption(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE car_options SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate car option: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("car option %d: %w", id, common.ErrNotFound)
	}
	return nil
}
