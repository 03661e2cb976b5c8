package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EnumError reports a value outside a closed enumeration.
type EnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// GoalCategory is the closed set of savings goal categories.
type GoalCategory string

const (
	GoalCategoryVehicle    GoalCategory = "vehicle"
	GoalCategoryHome       GoalCategory = "home"
	GoalCategoryTravel     GoalCategory = "travel"
	GoalCategoryEducation  GoalCategory = "education"
	GoalCategoryHealth     GoalCategory = "health"
	GoalCategoryTechnology GoalCategory = "technology"
	GoalCategoryLuxury     GoalCategory = "luxury"
	GoalCategoryHobby      GoalCategory = "hobby"
	GoalCategoryBusiness   GoalCategory = "business"
	GoalCategoryEmergency  GoalCategory = "emergency"
)

// GoalCategories lists every valid goal category.
var GoalCategories = []GoalCategory{
	GoalCategoryVehicle, GoalCategoryHome, GoalCategoryTravel, GoalCategoryEducation,
	GoalCategoryHealth, GoalCategoryTechnology, GoalCategoryLuxury, GoalCategoryHobby,
	GoalCategoryBusiness, GoalCategoryEmergency,
}

// Valid reports whether c is one of the enumerated categories.
func (c GoalCategory) Valid() bool {
	for _, v := range GoalCategories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseGoalCategory converts s into a GoalCategory.
func ParseGoalCategory(s string) (GoalCategory, error) {
	c := GoalCategory(s)
	if !c.Valid() {
		return "", &EnumError{Field: "category", Value: s, Allowed: enumStrings(GoalCategories)}
	}
	return c, nil
}

// UnmarshalJSON rejects values outside the enumeration.
func (c *GoalCategory) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, c, ParseGoalCategory)
}

// GoalPriority is the closed set of goal priorities.
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// GoalPriorities lists every valid goal priority.
var GoalPriorities = []GoalPriority{GoalPriorityLow, GoalPriorityMedium, GoalPriorityHigh}

// Valid reports whether p is one of the enumerated priorities.
func (p GoalPriority) Valid() bool {
	return p == GoalPriorityLow || p == GoalPriorityMedium || p == GoalPriorityHigh
}

// ParseGoalPriority converts s into a GoalPriority.
func ParseGoalPriority(s string) (GoalPriority, error) {
	p := GoalPriority(s)
	if !p.Valid() {
		return "", &EnumError{Field: "priority", Value: s, Allowed: enumStrings(GoalPriorities)}
	}
	return p, nil
}

// UnmarshalJSON rejects values outside the enumeration.
func (p *GoalPriority) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, p, ParseGoalPriority)
}

// GoalStatus is the closed set of goal lifecycle states.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// GoalStatuses lists every valid goal status.
var GoalStatuses = []GoalStatus{GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled}

// Valid reports whether s is one of the enumerated statuses.
func (s GoalStatus) Valid() bool {
	return s == GoalStatusActive || s == GoalStatusCompleted || s == GoalStatusCancelled
}

// ParseGoalStatus converts s into a GoalStatus.
func ParseGoalStatus(s string) (GoalStatus, error) {
	st := GoalStatus(s)
	if !st.Valid() {
		return "", &EnumError{Field: "status", Value: s, Allowed: enumStrings(GoalStatuses)}
	}
	return st, nil
}

// UnmarshalJSON rejects values outside the enumeration.
func (s *GoalStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, ParseGoalStatus)
}

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType converts s into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", &EnumError{Field: "type", Value: s, Allowed: []string{"income", "expense"}}
	}
	return t, nil
}

// UnmarshalJSON rejects values outside the enumeration.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, t, ParseTransactionType)
}

func unmarshalEnum[T ~string](data []byte, dst *T, parse func(string) (T, error)) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
