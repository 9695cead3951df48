package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateRequest is the POST /api/bookings payload.
type CreateRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Service   string `json:"service" validate:"required,max=100"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
	FlightID  string `json:"flightId" validate:"omitempty,max=100"`
	SeatClass string `json:"seatClass" validate:"omitempty,oneof=economy premium business first"`
}

// UpdateRequest is the PUT /api/bookings/{id} payload. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=200"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time      *string `json:"time" validate:"omitempty,datetime=15:04"`
	Service   *string `json:"service" validate:"omitempty,max=100"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
	FlightID  *string `json:"flightId" validate:"omitempty,max=100"`
	SeatClass *string `json:"seatClass" validate:"omitempty,oneof=economy premium business first"`
	Status    *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

type ValidationError []FieldError

func (e ValidationError) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator checks booking payloads and reports per-field messages keyed by
// the JSON field names the client sent.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	out := make(ValidationError, 0, len(invalid))
	for _, fe := range invalid {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must match format " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
