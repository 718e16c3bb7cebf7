package submission

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and renders the first failures as one message.
func validateStruct(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return types.ValidationError("invalid form: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be an ISO-8601 timestamp", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return types.ValidationError("%s", strings.Join(msgs, "; "))
}

// requireNumber checks a required numeric field that must not be negative.
func requireNumber(field string, v any) error {
	if v == nil || strings.TrimSpace(normalize.ToString(v)) == "" {
		return types.ValidationError("%s is required", field)
	}
	return optionalNumber(field, v)
}

// optionalNumber checks that a numeric field, when given, coerces and is not negative.
func optionalNumber(field string, v any) error {
	if v == nil || strings.TrimSpace(normalize.ToString(v)) == "" {
		return nil
	}
	n := normalize.ToNumber(v)
	if n == nil {
		return types.ValidationError("%s must be a number", field)
	}
	if *n < 0 {
		return types.ValidationError("%s must not be negative", field)
	}
	return nil
}

// ValidateProperty checks a property form before any upload happens.
func ValidateProperty(form *PropertyForm) error {
	if err := validateStruct(form); err != nil {
		return err
	}
	if err := requireNumber("monthlyRent", form.MonthlyRent); err != nil {
		return err
	}
	for field, v := range map[string]any{
		"securityDeposit": form.SecurityDeposit,
		"price":           form.Price,
		"maushiCost":      form.MaushiCost,
		"doors":           form.Doors,
		"windows":         form.Windows,
	} {
		if err := optionalNumber(field, v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateHelper checks a helper form before any upload happens.
func ValidateHelper(form *HelperForm) error {
	if err := validateStruct(form); err != nil {
		return err
	}
	for field, v := range map[string]any{
		"age":             form.Age,
		"experienceYears": form.ExperienceYears,
		"salaryMin":       form.SalaryMin,
		"salaryMax":       form.SalaryMax,
	} {
		if err := optionalNumber(field, v); err != nil {
			return err
		}
	}
	return nil
}
