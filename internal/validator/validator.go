// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finmentor/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
// Field errors report the JSON (or query) name of the field.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("goal_category", validateGoalCategory)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

func validateGoalCategory(fl validator.FieldLevel) bool {
	return models.GoalCategory(fl.Field().String()).Valid()
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	return models.GoalPriority(fl.Field().String()).Valid()
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	return models.GoalStatus(fl.Field().String()).Valid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}
