package validator

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"rapporteur_backend/internal/models"
)

// registerCustomRules wires the domain validation tags into the
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// notblank rejects strings that are empty after trimming. Unlike
	// "required" it fires on whitespace-only values too.
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// reportcategory accepts only members of the fixed category set.
	mustRegister("reportcategory", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})

	// eventdate accepts date-only (2006-01-02) or RFC3339 strings.
	mustRegister("eventdate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseEventDate(fl.Field().String())
		return err == nil
	})
}
