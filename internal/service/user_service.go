package service

import (
	"context"
	"strings"

	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/repository"
	"github.com/helferherz/karmalama/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name           *string
	Surname        *string
	Phone          *string
	Postal         *string
	Area           *string
	AboutMe        *string
	Interests      []string
	Skillset       []string
	LanguageSkills []string
	EducationLevel *models.EducationLevel
	WorkLevel      *models.WorkLevel
}

// Register validates the registration input, hashes the password and creates
// the account with fresh progress counters. Every failed field constraint is
// reported, not just the first one.
func (s *UserService) Register(ctx context.Context, input validation.RegistrationInput) (*models.User, error) {
	if errs := validation.ValidateRegistration(input); len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewFieldValidationError([]models.FieldError{
			{Field: "email", Message: "Email is already registered"},
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:          email,
		Password:       string(hashed),
		Name:           strings.TrimSpace(input.Name),
		Surname:        strings.TrimSpace(input.Surname),
		Phone:          strings.TrimSpace(input.Phone),
		Birthday:       input.Birthday,
		Postal:         strings.TrimSpace(input.Postal),
		Area:           strings.TrimSpace(input.Area),
		Interests:      input.Interests,
		Skillset:       input.Skillset,
		LanguageSkills: input.LanguageSkills,
		EducationLevel: input.EducationLevel,
		WorkLevel:      input.WorkLevel,
		Points:         0,
		Level:          1,
		HoursWorked:    0,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the matching user. The
// same unauthorized error is returned for an unknown email and a wrong
// password so the response does not leak which one failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetProfile returns the user by ID.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the provided field updates to the user's profile.
// Progress counters and credentials are not touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var errs []models.FieldError
	setRequired := func(field string, dst *string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if v == "" {
			errs = append(errs, models.FieldError{Field: field, Message: field + " cannot be empty"})
			return
		}
		*dst = v
	}

	setRequired("name", &user.Name, update.Name)
	setRequired("surname", &user.Surname, update.Surname)
	setRequired("phone", &user.Phone, update.Phone)
	setRequired("postal", &user.Postal, update.Postal)
	setRequired("area", &user.Area, update.Area)

	if update.AboutMe != nil {
		user.AboutMe = strings.TrimSpace(*update.AboutMe)
	}
	if update.Interests != nil {
		user.Interests = update.Interests
	}
	if update.Skillset != nil {
		user.Skillset = update.Skillset
	}
	if update.LanguageSkills != nil {
		user.LanguageSkills = update.LanguageSkills
	}
	if update.EducationLevel != nil {
		if !update.EducationLevel.Valid() {
			errs = append(errs, models.FieldError{Field: "education_level", Message: "Unknown education level"})
		} else {
			user.EducationLevel = *update.EducationLevel
		}
	}
	if update.WorkLevel != nil {
		if !update.WorkLevel.Valid() {
			errs = append(errs, models.FieldError{Field: "work_level", Message: "Unknown work level"})
		} else {
			user.WorkLevel = *update.WorkLevel
		}
	}

	if len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewFieldValidationError([]models.FieldError{
			{Field: "password", Message: err.Error()},
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user together with their listings and bookings.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
