package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finmentor/internal/config"
	apperrors "finmentor/internal/errors"
	"finmentor/internal/models"
	"finmentor/internal/uuid"
)

// profileService stores per-user financial profiles and falls back to a
// configured default for users without one.
type profileService struct {
	db       *gorm.DB
	defaults config.DefaultProfile
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB, defaults config.DefaultProfile) ProfileServicer {
	return &profileService{db: db, defaults: defaults}
}

// GetProfile returns the stored profile, or the default marked IsDefault.
func (s *profileService) GetProfile(userID string) (*models.FinancialProfile, error) {
	var profile models.FinancialProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		if profile.Loans == nil {
			profile.Loans = []models.Loan{}
		}
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	def := s.defaults.ToModel(userID)
	def.IsDefault = true
	return def, nil
}

func validateLoans(loans []models.Loan) []apperrors.FieldError {
	var fields []apperrors.FieldError
	for i, l := range loans {
		prefix := fmt.Sprintf("loans[%d].", i)
		if strings.TrimSpace(l.Name) == "" {
			fields = append(fields, apperrors.Field(prefix+"name", "is required"))
		}
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"principal", l.Principal},
			{"remainingBalance", l.RemainingBalance},
			{"emiAmount", l.EMIAmount},
			{"interestRate", l.InterestRate},
			{"tenure", float64(l.Tenure)},
			{"remainingTenure", float64(l.RemainingTenure)},
		} {
			if fe := validateAmount(prefix+f.name, f.value); fe != nil {
				fields = append(fields, *fe)
			}
		}
	}
	return fields
}

// UpsertProfile replaces the user's income and loans.
func (s *profileService) UpsertProfile(userID string, monthlyIncome float64, loans []models.Loan) (*models.FinancialProfile, error) {
	var fields []apperrors.FieldError
	if fe := validateAmount("monthlyIncome", monthlyIncome); fe != nil {
		fields = append(fields, *fe)
	}
	fields = append(fields, validateLoans(loans)...)
	if len(fields) > 0 {
		return nil, apperrors.Invalid(fields...)
	}

	if !uuid.IsValid(userID) {
		return nil, apperrors.ErrUserNotFound
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	if loans == nil {
		loans = []models.Loan{}
	}
	for i := range loans {
		loans[i].Name = strings.TrimSpace(loans[i].Name)
	}

	profile := &models.FinancialProfile{UserID: userID, MonthlyIncome: monthlyIncome, Loans: loans}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_income", "loans", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetProfile(userID)
}
