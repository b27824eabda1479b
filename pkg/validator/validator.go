package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CinemaBirthday is the earliest accepted film release date.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Register installs the custom tags on gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("releasedate", validateReleaseDate); err != nil {
		return err
	}
	if err := v.RegisterValidation("notfuture", validateNotFuture); err != nil {
		return err
	}
	return v.RegisterValidation("nospaces", validateNoSpaces)
}

var timeType = reflect.TypeOf(time.Time{})

// fieldTime accepts time.Time and any type convertible to it.
func fieldTime(fl validator.FieldLevel) (time.Time, bool) {
	field := fl.Field()
	if !field.Type().ConvertibleTo(timeType) {
		return time.Time{}, false
	}
	return field.Convert(timeType).Interface().(time.Time), true
}

func validateReleaseDate(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	if !ok {
		return false
	}
	return !t.Before(CinemaBirthday)
}

func validateNotFuture(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	if !ok {
		return false
	}
	return !t.After(time.Now())
}

func validateNoSpaces(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), " \t\n")
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "releasedate":
		return fmt.Sprintf("%s must not be before %s", field, CinemaBirthday.Format("2006-01-02"))
	case "notfuture":
		return fmt.Sprintf("%s must not be in the future", field)
	case "nospaces":
		return fmt.Sprintf("%s must not contain spaces", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"ReleaseDate": "Release date",
		"MpaRef":      "MPA rating",
		"IsPositive":  "Polarity",
		"FilmID":      "Film id",
		"UserID":      "User id",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
