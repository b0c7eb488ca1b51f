package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/andyle182810/storefront/money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Validator struct {
	Validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// New returns a validator that reports fields by their JSON names and treats
// decimal.Decimal and money.Amount as numbers, so tags like gt=0 work on prices and amounts.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const maxSplits = 2
		name := strings.SplitN(fld.Tag.Get("json"), ",", maxSplits)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch val := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := val.Float64()

			return f
		case money.Amount:
			f, _ := val.Float64()

			return f
		default:
			return nil
		}
	}, decimal.Decimal{}, money.Amount{})

	return &Validator{Validator: v}
}

// Validate checks structs, pointers to structs and slices of them. Values of
// any other shape carry no tags and pass unchecked.
func (v *Validator) Validate(i any) error {
	rv := reflect.ValueOf(i)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Struct:
		return v.validateStruct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for idx := range rv.Len() {
			if err := v.Validate(rv.Index(idx).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", idx, err)
			}
		}

		return nil
	default:
		return nil
	}
}

func (v *Validator) validateStruct(s any) error {
	if err := v.Validator.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.formatValidationErrors(validationErrs)
		}

		return err
	}

	return nil
}

func (v *Validator) formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrs := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if field == "" {
			field = err.StructField()
		}

		validationErrs = append(validationErrs, ValidationError{
			Field:   field,
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: messageFor(field, err),
		})
	}

	return validationErrs
}

func messageFor(field string, err validator.FieldError) string {
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email"
	case "url":
		return field + " must be a valid URL"
	case "uuid":
		return field + " must be a valid UUID"
	case "min":
		if err.Kind() == reflect.Slice || err.Kind() == reflect.String {
			return fmt.Sprintf("%s must contain at least %s", field, param)
		}

		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}
