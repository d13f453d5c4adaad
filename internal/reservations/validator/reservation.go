package validator

import (
	"errors"
	"fmt"
	"strings"

	"aquavalle/pkg/logger"
	"aquavalle/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	return &ReservationValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateCreate checks the public submission: struct tags plus the
// cross-field rules that depend on the reservation type.
func (v *ReservationValidator) ValidateCreate(req *model.ReservationCreate) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if req.CheckInDate.IsZero() {
		return ValidationErrors{
			ValidationError{Field: "CheckInDate", Message: "check_in_date is required"},
		}
	}

	switch req.Type {
	case model.TypeLodging:
		if req.CheckOutDate == nil || req.CheckOutDate.IsZero() {
			return ValidationErrors{
				ValidationError{Field: "CheckOutDate", Message: "check_out_date is required for lodging reservations"},
			}
		}
		if !req.CheckOutDate.After(req.CheckInDate) {
			return ValidationErrors{
				ValidationError{Field: "CheckOutDate", Message: "check_out_date must be after check_in_date"},
			}
		}
		if len(req.RoomIDs) == 0 {
			return ValidationErrors{
				ValidationError{Field: "RoomIDs", Message: "at least one room is required for lodging reservations"},
			}
		}
		if hasDuplicates(req.RoomIDs) {
			return ValidationErrors{
				ValidationError{Field: "RoomIDs", Message: "room_ids must not contain duplicates"},
			}
		}

	case model.TypeFullday:
		// A day pass may spell out its same-day check-out; any other date
		// is a contradiction.
		if req.CheckOutDate != nil && !req.CheckOutDate.IsZero() && !req.CheckOutDate.Equal(req.CheckInDate) {
			return ValidationErrors{
				ValidationError{Field: "CheckOutDate", Message: "check_out_date must equal check_in_date for fullday reservations"},
			}
		}
		if len(req.RoomIDs) > 0 {
			return ValidationErrors{
				ValidationError{Field: "RoomIDs", Message: "room_ids are not allowed for fullday reservations"},
			}
		}
	}

	return nil
}

// ValidateUpdate checks the admin's partial edit.
func (v *ReservationValidator) ValidateUpdate(update *model.ReservationUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.CheckInDate != nil && update.CheckOutDate != nil {
		if !update.CheckOutDate.After(*update.CheckInDate) {
			return ValidationErrors{
				ValidationError{
					Field:   "CheckOutDate",
					Message: "check_out_date must be after check_in_date",
				},
			}
		}
	}

	return nil
}

// ValidateShape checks the cross-field rules on a full record, after a
// partial edit has been merged in. A one-sided date patch can invert the
// stay interval even when the patch itself looks fine.
func (v *ReservationValidator) ValidateShape(reservation *model.Reservation) error {
	switch reservation.Type {
	case model.TypeLodging:
		if reservation.CheckOutDate == nil || reservation.CheckOutDate.IsZero() {
			return ValidationErrors{
				ValidationError{Field: "CheckOutDate", Message: "check_out_date is required for lodging reservations"},
			}
		}
		if !reservation.CheckOutDate.After(reservation.CheckInDate) {
			return ValidationErrors{
				ValidationError{Field: "CheckOutDate", Message: "check_out_date must be after check_in_date"},
			}
		}

	case model.TypeFullday:
		if reservation.CheckOutDate != nil && !reservation.CheckOutDate.IsZero() {
			return ValidationErrors{
				ValidationError{Field: "CheckOutDate", Message: "check_out_date must equal check_in_date for fullday reservations"},
			}
		}
	}

	return nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
