package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/garudacabs/cab-booking/pkg/common"
)

var (
	// Validate is the global validator instance
	Validate *validator.Validate

	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`) // E.164 format
)

func init() {
	Validate = validator.New()

	// Register custom validators
	_ = Validate.RegisterValidation("latitude", validateLatitude)
	_ = Validate.RegisterValidation("longitude", validateLongitude)
	_ = Validate.RegisterValidation("phone", validatePhone)
	_ = Validate.RegisterValidation("service_type", validateServiceType)
	_ = Validate.RegisterValidation("trip_type", validateTripType)
	_ = Validate.RegisterValidation("car_category", validateCarCategory)
	_ = Validate.RegisterValidation("booking_status", validateBookingStatus)
}

// ValidateStruct validates a struct and returns an AppError if validation fails
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("field %q failed on the %q rule", fe.Field(), fe.Tag()))
			}
			return common.NewValidationError(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// validateLatitude checks if latitude is within valid range (-90 to 90)
func validateLatitude(fl validator.FieldLevel) bool {
	latitude := fl.Field().Float()
	return latitude >= -90.0 && latitude <= 90.0
}

// validateLongitude checks if longitude is within valid range (-180 to 180)
func validateLongitude(fl validator.FieldLevel) bool {
	longitude := fl.Field().Float()
	return longitude >= -180.0 && longitude <= 180.0
}

// validatePhone checks if phone number is in E.164 format
func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	return phoneRegex.MatchString(phone)
}

// validateServiceType checks if the booking service type is one we price
func validateServiceType(fl validator.FieldLevel) bool {
	serviceType := fl.Field().String()
	valid := []string{"local", "airport", "outstation"}
	return contains(valid, serviceType)
}

// validateTripType checks if the outstation trip type is valid.
// "multiple_stops" is accepted as a legacy alias for "multiple_way".
func validateTripType(fl validator.FieldLevel) bool {
	tripType := fl.Field().String()
	valid := []string{"one_way", "round_trip", "multiple_way", "multiple_stops"}
	return contains(valid, tripType)
}

// validateCarCategory checks if the car category is a known fleet category
func validateCarCategory(fl validator.FieldLevel) bool {
	category := fl.Field().String()
	valid := []string{"Sedan", "SUV", "Innova", "Innova Crysta", "Tempo", "Urbenia", "Minibus"}
	return contains(valid, category)
}

// validateBookingStatus checks if booking status is valid
func validateBookingStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	valid := []string{"pending", "confirmed", "ongoing", "completed", "cancelled"}
	return contains(valid, status)
}

// contains checks if a string slice contains a specific string
func contains(slice []string, item string) bool {
	item = strings.ToLower(strings.TrimSpace(item))
	for _, s := range slice {
		if strings.ToLower(strings.TrimSpace(s)) == item {
			return true
		}
	}
	return false
}

// ValidatePhoneNumber validates phone number format
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	return phoneRegex.MatchString(phone)
}

// ValidateCoordinates validates latitude and longitude
func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90.0 || latitude > 90.0 {
		return fmt.Errorf("latitude must be between -90 and 90, got: %f", latitude)
	}
	if longitude < -180.0 || longitude > 180.0 {
		return fmt.Errorf("longitude must be between -180 and 180, got: %f", longitude)
	}
	return nil
}

// ValidateDistance validates a trip distance in kilometres
func ValidateDistance(distance float64) error {
	if distance < 0 {
		return fmt.Errorf("distance cannot be negative: %f", distance)
	}
	if distance > 10000 {
		return fmt.Errorf("distance exceeds maximum allowed: %f", distance)
	}
	return nil
}
