package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/village"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
var colorName = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)

// GetValidator returns the shared validator with the game's custom tags
func GetValidator() *Validator {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("color", validateColor)
		_ = v.RegisterValidation("slot", validateSlot)
		_ = v.RegisterValidation("building", validateBuilding)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing field to a readable message
// without leaking Go struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ValidationMsgFormat
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required", "required_with", "required_without_all":
			errs[field] = ValidationMsgRequired
		case "max":
			errs[field] = fmt.Sprintf(ValidationMsgMax, e.Param())
		case "min":
			errs[field] = fmt.Sprintf(ValidationMsgMin, e.Param())
		case "color":
			errs[field] = ValidationMsgColor
		case "slot":
			errs[field] = ValidationMsgSlot
		case "building":
			errs[field] = ValidationMsgBuilding
		default:
			errs[field] = ValidationMsgInvalid
		}
	}
	return errs
}

// validateColor accepts #rrggbb or a plain color name. Empty is left to "required".
func validateColor(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	return c == "" || hexColor.MatchString(c) || colorName.MatchString(c)
}

func validateSlot(fl validator.FieldLevel) bool {
	_, ok := domain.ParseItemType(fl.Field().String())
	return ok
}

func validateBuilding(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return true
	}
	_, ok := village.LookupBuilding(domain.BuildingID(id))
	return ok
}
