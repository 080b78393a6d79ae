package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"safetyconnect_backend/internal/catalog"
	"safetyconnect_backend/internal/models"
)

// registerCustomRules wires the vocabulary and status rules into the
// validator instance. Registration failures abort startup.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Closed vocabularies from the catalog package.
	mustRegister("training_type", validateTrainingType)
	mustRegister("training_group", validateTrainingGroup)
	mustRegister("capability", validateCapability)
	mustRegister("province", validateProvince)

	// Status enums.
	mustRegister("partner_decision", validatePartnerDecision)
	mustRegister("is-user-role", validateUserRole)
}

// Empty values pass; 'required' owns presence checks.

func validateTrainingType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return catalog.IsTrainingType(value)
}

func validateTrainingGroup(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return catalog.IsTrainingGroup(value)
}

func validateCapability(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return catalog.IsCapability(value)
}

func validateProvince(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return catalog.IsProvince(value)
}

// validatePartnerDecision accepts only the two terminal review outcomes;
// a partner can never be moved back to pending through the API.
func validatePartnerDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PartnerStatus(value) {
	case models.PartnerStatusApproved, models.PartnerStatusRejected:
		return true
	default:
		return false
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleClient, models.UserRolePartner, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}
