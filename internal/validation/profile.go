// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/helferherz/karmalama/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// RegistrationInput is the full signup payload subject to field validation.
type RegistrationInput struct {
	Email          string
	Password       string
	Name           string
	Surname        string
	Phone          string
	Birthday       string
	Postal         string
	Area           string
	Interests      []string
	Skillset       []string
	LanguageSkills []string
	EducationLevel models.EducationLevel
	WorkLevel      models.WorkLevel
}

// ValidateRegistration runs every field check and collects all failures so
// the caller gets complete feedback in one round trip.
func ValidateRegistration(in RegistrationInput) []models.FieldError {
	var errs []models.FieldError
	add := func(field, message string) {
		errs = append(errs, models.FieldError{Field: field, Message: message})
	}

	if err := ValidateEmail(in.Email); err != nil {
		add("email", err.Error())
	}
	if err := ValidatePassword(in.Password); err != nil {
		add("password", err.Error())
	}

	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"surname", in.Surname},
		{"phone", in.Phone},
		{"birthday", in.Birthday},
		{"postal", in.Postal},
		{"area", in.Area},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			add(f.field, "is required")
		}
	}

	if in.Birthday != "" {
		if _, err := time.Parse("2006-01-02", in.Birthday); err != nil {
			add("birthday", "must be a date in YYYY-MM-DD format")
		}
	}

	if !in.EducationLevel.Valid() {
		add("education_level", "must be one of no_education, high_school, college, university, post_graduate")
	}
	if !in.WorkLevel.Valid() {
		add("work_level", "must be one of unemployed, part_time, full_time, self_employed, entrepreneur")
	}

	return errs
}

// ValidateListing collects all field failures for a listing create/update.
func ValidateListing(name, description string, price float64, category models.ListingCategory) []models.FieldError {
	var errs []models.FieldError
	add := func(field, message string) {
		errs = append(errs, models.FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(name) == "" {
		add("name", "is required")
	} else if len(name) > 120 {
		add("name", "must not exceed 120 characters")
	}
	if strings.TrimSpace(description) == "" {
		add("description", "is required")
	}
	if price < 0 {
		add("price", "must be greater than or equal to 0")
	}
	if !category.Valid() {
		add("category", "is not a known category")
	}

	return errs
}
