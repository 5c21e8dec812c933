package cabtypes

import "time"

// CabType is the legacy pricing table kept for backward compatibility.
// The rate resolver falls back to it when no rate meter matches.
type CabType struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	BaseFare      float64   `json:"base_fare" db:"base_fare"`
	PerKmRate     float64   `json:"per_km_rate" db:"per_km_rate"`
	PerMinuteRate float64   `json:"per_minute_rate" db:"per_minute_rate"`
	PerHourRate   float64   `json:"per_hour_rate" db:"per_hour_rate"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CarOption is a bookable vehicle offering. Its coarse category, derived
// from name and description, is what rate meters are keyed on.
type CarOption struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Seats       int       `json:"seats" db:"seats"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCabTypeRequest is the request body for creating a cab type
type CreateCabTypeRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=100"`
	BaseFare      float64 `json:"base_fare" binding:"required,gte=0"`
	PerKmRate     float64 `json:"per_km_rate" binding:"gte=0"`
	PerMinuteRate float64 `json:"per_minute_rate" binding:"gte=0"`
	PerHourRate   float64 `json:"per_hour_rate" binding:"gte=0"`
	IsActive      bool    `json:"is_active"`
}

// UpdateCabTypeRequest is the request body for updating a cab type
type UpdateCabTypeRequest = CreateCabTypeRequest

// CreateCarOptionRequest is the request body for creating a car option
type CreateCarOptionRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Seats       int     `json:"seats" binding:"required,gte=1,lte=30"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// UpdateCarOptionRequest is the request body for updating a car option
type UpdateCarOptionRequest = CreateCarOptionRequest
