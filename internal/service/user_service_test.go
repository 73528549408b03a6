package service

import (
	"context"
	"errors"
	"testing"

	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

func validSignup() validation.RegistrationInput {
	return validation.RegistrationInput{
		Email:    "mara@example.com",
		Password: "Sunflower2024x!",
		Name:     "Mara",
		Surname:  "Olsen",
		Phone:    "+4520304050",
		Birthday: "1991-04-12",
		Postal:   "2100",
		Area:     "Østerbro",
	}
}

func TestRegister(t *testing.T) {
	var created *models.User
	users := noopUserRepo()
	users.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}

	svc := NewUserService(users)
	in := validSignup()
	in.Email = "  Mara@Example.COM "

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected the user to be persisted")
	}
	if user.Email != "mara@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Password == in.Password {
		t.Fatal("password must be hashed before storage")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		t.Fatal("stored hash does not match the password")
	}
	if user.Points != 0 || user.Level != 1 || user.HoursWorked != 0 {
		t.Fatalf("fresh account should start at 0/1/0, got %d/%d/%d", user.Points, user.Level, user.HoursWorked)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1, Email: "mara@example.com"}, nil
	}

	svc := NewUserService(users)
	_, err := svc.Register(context.Background(), validSignup())
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR for a duplicate email, got %v", err)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0].Field != "email" {
		t.Fatalf("expected the email field flagged, got %+v", appErr.Fields)
	}
}

func TestRegisterReportsAllFailures(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	in := validSignup()
	in.Name = ""
	in.Password = "weak"
	in.Birthday = "12.04.1991"

	_, err := svc.Register(context.Background(), in)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(appErr.Fields) < 3 {
		t.Fatalf("expected every failed field reported, got %+v", appErr.Fields)
	}
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Sunflower2024x!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "mara@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hashed)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(users)

	user, err := svc.Authenticate(context.Background(), "Mara@Example.com", "Sunflower2024x!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user 1, got %d", user.ID)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Authenticate(context.Background(), "ghost@example.com", "Sunflower2024x!")
	_, wrongErr := svc.Authenticate(context.Background(), "mara@example.com", "WrongPassword1!")

	var appErr *models.AppError
	for _, err := range []error{unknownErr, wrongErr} {
		if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("credential failures must not leak which part failed: %q vs %q", unknownErr, wrongErr)
	}
}

func TestUpdateProfile(t *testing.T) {
	stored := &models.User{
		ID: 1, Name: "Mara", Surname: "Olsen", Phone: "123",
		Postal: "2100", Area: "Østerbro", AboutMe: "old",
	}
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) { return stored, nil }
	updated := false
	users.updateFn = func(context.Context, *models.User) error {
		updated = true
		return nil
	}
	svc := NewUserService(users)

	newArea := "Vesterbro"
	newAbout := "likes gardening"
	user, err := svc.UpdateProfile(context.Background(), 1, ProfileUpdate{
		Area:    &newArea,
		AboutMe: &newAbout,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatal("expected the profile to be saved")
	}
	if user.Area != "Vesterbro" || user.AboutMe != "likes gardening" {
		t.Fatalf("updates not applied: %+v", user)
	}
	if user.Name != "Mara" {
		t.Fatalf("untouched fields must survive, got %q", user.Name)
	}

	// Required fields cannot be blanked, and bad enums are rejected.
	empty := "   "
	badEducation := models.EducationLevel("phd")
	_, err = svc.UpdateProfile(context.Background(), 1, ProfileUpdate{
		Name:           &empty,
		EducationLevel: &badEducation,
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(appErr.Fields) != 2 {
		t.Fatalf("expected both failures reported, got %+v", appErr.Fields)
	}
}

func TestChangePassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Sunflower2024x!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	stored := &models.User{ID: 1, Password: string(hashed)}

	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) { return stored, nil }
	users.updateFn = func(_ context.Context, u *models.User) error {
		stored = u
		return nil
	}
	svc := NewUserService(users)

	err = svc.ChangePassword(context.Background(), 1, "WrongPassword1!", "NewSunflower25!x")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED for a wrong current password, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), 1, "Sunflower2024x!", "weak")
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR for a weak new password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), 1, "Sunflower2024x!", "NewSunflower25!x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("NewSunflower25!x")) != nil {
		t.Fatal("expected the new password hash to be stored")
	}
}
